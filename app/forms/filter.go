package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/orderdesk/app/models"
)

// OrderFilter is the customer-page filter: exact product id and exact status.
// Empty values do not filter.
type OrderFilter struct {
	Product string `json:"product"`
	Status  string `json:"status"`
	Errors  Errors `json:"errors,omitempty"`
}

// ParseOrderFilter reads the filter from a query string.
func ParseOrderFilter(q url.Values) OrderFilter {
	return OrderFilter{
		Product: strings.TrimSpace(q.Get("product")),
		Status:  strings.TrimSpace(q.Get("status")),
	}
}

// Validate records shape errors on f and reports whether f is valid.
// Whether the product exists is checked by the caller through Reject.
func (f *OrderFilter) Validate() bool {
	f.Errors = Errors{}
	if f.Product != "" {
		if n, err := strconv.ParseUint(f.Product, 10, 64); err != nil || n == 0 {
			f.Reject("product", "Select a valid choice. That choice is not one of the available choices.")
		}
	}
	if f.Status != "" && !models.Status(f.Status).Valid() {
		f.Reject("status", "Select a valid choice. "+f.Status+" is not one of the available choices.")
	}
	return f.Valid()
}

// Reject marks field invalid.
func (f *OrderFilter) Reject(field, msg string) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}
	f.Errors[field] = msg
}

// Valid reports whether no field was rejected.
func (f *OrderFilter) Valid() bool { return len(f.Errors) == 0 }

// ProductID returns the parsed product filter, or nil.
func (f *OrderFilter) ProductID() *uint {
	if f.Product == "" {
		return nil
	}
	n, err := strconv.ParseUint(f.Product, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(n)
	return &id
}

// StatusValue returns the status filter, or nil.
func (f *OrderFilter) StatusValue() *models.Status {
	if f.Status == "" {
		return nil
	}
	s := models.Status(f.Status)
	return &s
}
