package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

type CustomerController struct {
	customers *services.CustomerService
	account   *services.AccountService
}

func NewCustomerController(customers *services.CustomerService, account *services.AccountService) *CustomerController {
	return &CustomerController{customers: customers, account: account}
}

// Show is the customer page with its order filter.
func (h *CustomerController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound()
		return
	}
	d, err := h.customers.Detail(c.Context(), id, forms.ParseOrderFilter(c.R.URL.Query()))
	if err != nil {
		fail(c, err)
		return
	}
	c.Render(http.StatusOK, "accounts/customer", resource.Map{
		"customer":     resource.Item(resources.CustomerWith(h.account.PictureURL), d.Customer),
		"orders":       resource.Collection(resources.Order, d.Orders),
		"orders_count": d.OrdersCount,
		"filter":       resources.Filter(d.Filter),
	})
}
