package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

type DashboardController struct {
	dashboard *services.DashboardService
	account   *services.AccountService
}

func NewDashboardController(dashboard *services.DashboardService, account *services.AccountService) *DashboardController {
	return &DashboardController{dashboard: dashboard, account: account}
}

// Home is the admin dashboard.
func (h *DashboardController) Home(c *ctx.Context) {
	d, err := h.dashboard.Summary(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	data := resources.Stats(d.OrderStats)
	data["total_customers"] = d.TotalCustomers
	data["orders"] = resource.Collection(resources.Order, d.Orders)
	data["customers"] = resource.Collection(resources.CustomerWith(h.account.PictureURL), d.Customers)
	c.Render(http.StatusOK, "accounts/dashboard", data)
}
