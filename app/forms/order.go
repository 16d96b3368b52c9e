package forms

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// MaxOrderRows caps the order formset.
const MaxOrderRows = 5

// OrderForm is one order row: a product and a status. Values are kept as
// submitted so an invalid row can be re-rendered verbatim.
type OrderForm struct {
	Product string `form:"product" json:"product"`
	Status  string `form:"status"  json:"status"`
}

type orderRules struct {
	Product string `form:"product" validate:"required|integer|gt=0"`
	Status  string `form:"status"`
}

// Blank reports whether every field is empty.
func (f OrderForm) Blank() bool {
	return strings.TrimSpace(f.Product) == "" && strings.TrimSpace(f.Status) == ""
}

// Validate checks the row's shape. Product existence is the service's job.
func (f OrderForm) Validate() Errors {
	errs := validate.Struct(orderRules{Product: f.Product, Status: f.Status})
	if msg := validateStatus(f.Status); msg != "" {
		errs["status"] = msg
	}
	if _, bad := errs["product"]; bad && strings.TrimSpace(f.Product) != "" {
		errs["product"] = "Select a valid choice. That choice is not one of the available choices."
	}
	return errs
}

func validateStatus(s string) string {
	type statusOnly struct {
		Status string `form:"status" validate:"required"`
	}
	if e := validate.Struct(statusOnly{Status: s}); validate.HasErrors(e) {
		return e["status"]
	}
	if !models.Status(s).Valid() {
		return fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", s)
	}
	return ""
}

// ProductID returns the parsed product id. Call after Validate.
func (f OrderForm) ProductID() uint {
	n, _ := strconv.ParseUint(strings.TrimSpace(f.Product), 10, 64)
	return uint(n)
}

// OrderFormSet is the bulk order form: up to MaxOrderRows rows, all bound to
// one customer.
type OrderFormSet struct {
	Forms []OrderForm `json:"forms"`
}

// BlankOrderFormSet returns the empty GET formset.
func BlankOrderFormSet() OrderFormSet {
	return OrderFormSet{Forms: make([]OrderForm, MaxOrderRows)}
}

// ParseOrderFormSet reads rows from management-form fields:
// form-TOTAL_FORMS, form-N-product, form-N-status. A missing or unreadable
// TOTAL_FORMS reads every row slot; values outside 1..MaxOrderRows are
// clamped.
func ParseOrderFormSet(vals url.Values) OrderFormSet {
	total := MaxOrderRows
	if raw := vals.Get("form-TOTAL_FORMS"); raw != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			total = n
		}
	}
	total = clamp(total)

	set := OrderFormSet{Forms: make([]OrderForm, total)}
	for i := 0; i < total; i++ {
		set.Forms[i] = OrderForm{
			Product: strings.TrimSpace(vals.Get(fmt.Sprintf("form-%d-product", i))),
			Status:  strings.TrimSpace(vals.Get(fmt.Sprintf("form-%d-status", i))),
		}
	}
	return set
}

// UnmarshalJSON accepts {"forms":[{"product":1,"status":"Pending"}]}.
// Rows past MaxOrderRows are dropped.
func (s *OrderFormSet) UnmarshalJSON(b []byte) error {
	var raw struct {
		Forms []OrderForm `json:"forms"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Forms) > MaxOrderRows {
		raw.Forms = raw.Forms[:MaxOrderRows]
	}
	s.Forms = raw.Forms
	return nil
}

// UnmarshalJSON accepts product as a number or a string.
func (f *OrderForm) UnmarshalJSON(b []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	f.Product = scalar(raw["product"])
	f.Status = scalar(raw["status"])
	return nil
}

// Filled returns the indexes of rows that are not blank.
func (s OrderFormSet) Filled() []int {
	var out []int
	for i, f := range s.Forms {
		if !f.Blank() {
			out = append(out, i)
		}
	}
	return out
}

// FormSetErrors carries per-row errors aligned with OrderFormSet.Forms.
type FormSetErrors struct {
	Forms    []Errors `json:"forms"`
	NonField []string `json:"non_field_errors,omitempty"`
}

// NewFormSetErrors sizes the row slice to n.
func NewFormSetErrors(n int) *FormSetErrors {
	rows := make([]Errors, n)
	for i := range rows {
		rows[i] = Errors{}
	}
	return &FormSetErrors{Forms: rows}
}

// Any reports whether any row or the set itself failed.
func (e *FormSetErrors) Any() bool {
	if e == nil {
		return false
	}
	if len(e.NonField) > 0 {
		return true
	}
	for _, row := range e.Forms {
		if len(row) > 0 {
			return true
		}
	}
	return false
}

func (e *FormSetErrors) Error() string { return "order formset is invalid" }

func clamp(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxOrderRows {
		return MaxOrderRows
	}
	return n
}

func scalar(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
