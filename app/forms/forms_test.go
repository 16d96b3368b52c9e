package forms_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

func TestParseOrderFormSetManagementForm(t *testing.T) {
	set := forms.ParseOrderFormSet(url.Values{
		"form-TOTAL_FORMS": {"2"},
		"form-0-product":   {"3"},
		"form-0-status":    {"Pending"},
		"form-2-product":   {"9"},
	})
	require.Len(t, set.Forms, 2, "rows past TOTAL_FORMS are ignored")
	assert.Equal(t, forms.OrderForm{Product: "3", Status: "Pending"}, set.Forms[0])
	assert.True(t, set.Forms[1].Blank())
	assert.Equal(t, []int{0}, set.Filled())

	assert.Len(t, forms.ParseOrderFormSet(url.Values{"form-TOTAL_FORMS": {"50"}}).Forms, forms.MaxOrderRows)
	assert.Len(t, forms.ParseOrderFormSet(url.Values{"form-TOTAL_FORMS": {"0"}}).Forms, 1)
	assert.Len(t, forms.ParseOrderFormSet(url.Values{}).Forms, forms.MaxOrderRows)
}

func TestOrderFormSetJSON(t *testing.T) {
	var set forms.OrderFormSet
	require.NoError(t, json.Unmarshal([]byte(`{"forms":[{"product":1,"status":"Pending"},{"product":"2","status":"Delivered"},{}]}`), &set))
	require.Len(t, set.Forms, 3)
	assert.Equal(t, "1", set.Forms[0].Product)
	assert.Equal(t, "2", set.Forms[1].Product)
	assert.Equal(t, []int{0, 1}, set.Filled())
}

func TestOrderFormValidate(t *testing.T) {
	assert.Empty(t, forms.OrderForm{Product: "4", Status: "Out for delivery"}.Validate())

	errs := forms.OrderForm{Product: "abc", Status: "Lost"}.Validate()
	assert.Contains(t, errs["product"], "Select a valid choice")
	assert.Contains(t, errs["status"], "Lost is not one of the available choices")

	errs = forms.OrderForm{Status: "Pending"}.Validate()
	assert.Equal(t, "The product field is required.", errs["product"])

	assert.Equal(t, uint(4), forms.OrderForm{Product: " 4 "}.ProductID())
}

func TestOrderFilter(t *testing.T) {
	f := forms.ParseOrderFilter(url.Values{"status": {"Delivered"}, "product": {""}})
	require.True(t, f.Validate())
	assert.Nil(t, f.ProductID())
	require.NotNil(t, f.StatusValue())
	assert.Equal(t, models.StatusDelivered, *f.StatusValue())

	bad := forms.ParseOrderFilter(url.Values{"status": {"delivered"}, "product": {"x"}})
	assert.False(t, bad.Validate(), "status match is exact")
	assert.Contains(t, bad.Errors, "status")
	assert.Contains(t, bad.Errors, "product")
}

func TestRegisterFormRules(t *testing.T) {
	ok := forms.RegisterForm{Username: "jane_doe-1", Password1: "longenough", Password2: "longenough"}
	assert.Empty(t, validate.Struct(ok))

	errs := validate.Struct(forms.RegisterForm{Username: "jd", Email: "x@", Password1: "longenough", Password2: "different"})
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Equal(t, "The password2 and password1 must match.", errs["password2"])

	assert.Empty(t, ok.Redacted().Password1)
}

func TestChoices(t *testing.T) {
	assert.Len(t, forms.StatusChoices(), len(models.Statuses))
	got := forms.ProductChoices([]models.Product{{Name: "Widget"}})
	assert.Equal(t, "Widget", got[0].Label)
}
