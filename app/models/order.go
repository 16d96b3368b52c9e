package models

import "gorm.io/gorm"

// Status is an order's delivery state. Values are stored exactly as written.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusOutForDelivery Status = "Out for delivery"
	StatusDelivered      Status = "Delivered"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusOutForDelivery, StatusDelivered}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order links a customer to a product.
type Order struct {
	gorm.Model
	CustomerID uint      `gorm:"not null;index"                                  json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"   json:"customer,omitempty"`
	ProductID  uint      `gorm:"not null;index"                                  json:"product_id"`
	Product    *Product  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"   json:"product,omitempty"`
	Status     Status    `gorm:"size:200;not null"                               json:"status"`
	Note       string    `gorm:"size:1000"                                       json:"note"`
}
