package models

import "gorm.io/gorm"

// Customer is the profile linked to at most one user.
type Customer struct {
	gorm.Model
	UserID     *uint   `gorm:"uniqueIndex"                   json:"user_id"`
	User       *User   `gorm:"constraint:OnDelete:SET NULL;" json:"-"`
	Name       string  `gorm:"size:200"                      json:"name"`
	Phone      string  `gorm:"size:200"                      json:"phone"`
	Email      string  `gorm:"size:200"                      json:"email"`
	ProfilePic string  `gorm:"size:255"                      json:"profile_pic"` // storage key
	Orders     []Order `json:"orders,omitempty"`
}
