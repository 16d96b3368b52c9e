package resources_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

func TestProductAndOrder(t *testing.T) {
	p := models.Product{Name: "Widget", Price: decimal.RequireFromString("3.5"), Tags: []models.Tag{{Name: "Kitchen"}}}
	got := resources.Product(p)
	assert.Equal(t, "3.50", got["price"])
	assert.Equal(t, []string{"Kitchen"}, got["tags"])

	o := resources.Order(models.Order{Status: models.StatusPending, Product: &p})
	assert.Equal(t, "Widget", o["product"].(map[string]interface{})["name"])
	assert.NotContains(t, o, "customer")
}

func TestCustomerPictureURL(t *testing.T) {
	c := models.Customer{Name: "alice", ProfilePic: "profiles/a.png"}
	assert.Equal(t, "", resources.Customer(c)["profile_pic"])
	withURL := resources.CustomerWith(func(k string) string { return "/media/" + k })
	assert.Equal(t, "/media/profiles/a.png", withURL(c)["profile_pic"])
}

func TestOrderFormSetCarriesRowErrors(t *testing.T) {
	set := forms.BlankOrderFormSet()
	errs := forms.NewFormSetErrors(len(set.Forms))
	errs.Forms[1]["status"] = "bad"
	out := resources.OrderFormSet(set, errs)
	assert.Equal(t, forms.MaxOrderRows, out["total_forms"])
	rows := out["forms"].([]map[string]interface{})
	assert.Empty(t, rows[0]["errors"])
	assert.Equal(t, forms.Errors{"status": "bad"}, rows[1]["errors"])
}

func TestStatsKeys(t *testing.T) {
	got := resources.Stats(services.OrderStats{Total: 3, Delivered: 1, Pending: 2})
	assert.Equal(t, resource.Map{"total_orders": int64(3), "total_delivered": int64(1), "total_pending": int64(2)}, got)
}
