package services

import (
	"errors"

	"github.com/shashiranjanraj/orderdesk/app/forms"
)

var (
	// ErrValidation marks input that failed form rules. Field detail is in a
	// wrapped *ValidationError or *forms.FormSetErrors.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials is the single answer to any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUsernameTaken is returned by CreateAdmin for an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError carries per-field messages.
type ValidationError struct {
	Fields forms.Errors
}

func invalid(fields forms.Errors) error {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Event names fired by the services.
const (
	EventOrderCreated       = "order.created"
	EventOrderUpdated       = "order.updated"
	EventOrderDeleted       = "order.deleted"
	EventCustomerRegistered = "customer.registered"
	EventLoginFailed        = "auth.login_failed"
)
