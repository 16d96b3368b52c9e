// Package forms declares the inputs each page accepts and the rules they
// must satisfy. Rules that need the database (product existence, unique
// usernames) are applied by the services.
package forms

import (
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// Errors maps a field to its message.
type Errors = validate.Errors

// Choice is a select option.
type Choice struct {
	Value interface{} `json:"value"`
	Label string      `json:"label"`
}

// StatusChoices lists the order statuses as options.
func StatusChoices() []Choice {
	out := make([]Choice, len(models.Statuses))
	for i, s := range models.Statuses {
		out[i] = Choice{Value: s, Label: string(s)}
	}
	return out
}

// ProductChoices lists products as options.
func ProductChoices(products []models.Product) []Choice {
	out := make([]Choice, len(products))
	for i, p := range products {
		out[i] = Choice{Value: p.ID, Label: p.Name}
	}
	return out
}

// RegisterForm is the sign-up form.
type RegisterForm struct {
	Username  string `form:"username"  json:"username"  validate:"required|alpha_dash|between=3,150"`
	Email     string `form:"email"     json:"email"     validate:"nullable|email|max=254"`
	Password1 string `form:"password1" json:"password1" validate:"required|min=8|max_bytes=72"`
	Password2 string `form:"password2" json:"password2" validate:"required|same=password1"`
}

// Redacted returns the form without passwords, for re-rendering.
func (f RegisterForm) Redacted() RegisterForm {
	f.Password1, f.Password2 = "", ""
	return f
}

// LoginForm is the credentials form.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

// ProfileForm holds the self-editable customer fields. The picture arrives
// as a separate multipart part named profile_pic.
type ProfileForm struct {
	Name  string `form:"name"  json:"name"  validate:"nullable|max=200"`
	Phone string `form:"phone" json:"phone" validate:"nullable|max=200"`
	Email string `form:"email" json:"email" validate:"nullable|email|max=200"`
}
