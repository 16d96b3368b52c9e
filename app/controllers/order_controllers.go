package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/bind"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

const (
	orderFormView   = "accounts/order_form"
	orderDeleteView = "accounts/delete"
)

type OrderController struct {
	orders    *services.OrderService
	customers *services.CustomerService
	products  *services.ProductService
}

func NewOrderController(orders *services.OrderService, customers *services.CustomerService, products *services.ProductService) *OrderController {
	return &OrderController{orders: orders, customers: customers, products: products}
}

// choices returns the select options shared by the order forms.
func (h *OrderController) choices(c *ctx.Context) (resource.Map, error) {
	products, err := h.products.All(c.Context())
	if err != nil {
		return nil, err
	}
	return resource.Map{
		"product_choices": forms.ProductChoices(products),
		"status_choices":  forms.StatusChoices(),
	}, nil
}

// Create shows and accepts the bulk order formset for one customer.
func (h *OrderController) Create(c *ctx.Context) {
	id, ok := c.ParamUint("customer_id")
	if !ok {
		c.NotFound()
		return
	}
	customer, err := h.customers.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	data, err := h.choices(c)
	if err != nil {
		fail(c, err)
		return
	}
	data["customer"] = resources.Customer(customer)

	if !c.IsPost() {
		data["formset"] = resources.OrderFormSet(forms.BlankOrderFormSet(), nil)
		c.Render(http.StatusOK, orderFormView, data)
		return
	}

	var set forms.OrderFormSet
	if bind.IsJSON(c.R) {
		if err := bind.DecodeJSON(c.R, &set); err != nil {
			c.BadRequest(err)
			return
		}
	} else {
		vals, err := bind.Values(c.R)
		if err != nil {
			c.BadRequest(err)
			return
		}
		set = forms.ParseOrderFormSet(vals)
	}

	_, err = h.orders.BulkCreate(c.Context(), customer.ID, set)
	var fsErr *forms.FormSetErrors
	if errors.As(err, &fsErr) {
		data["formset"] = resources.OrderFormSet(set, fsErr)
		c.Invalid(orderFormView, data, fsErr)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(rbac.HomeURL)
}

// Update edits one order's product and status.
func (h *OrderController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("order_id")
	if !ok {
		c.NotFound()
		return
	}
	order, err := h.orders.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	data, err := h.choices(c)
	if err != nil {
		fail(c, err)
		return
	}
	data["order"] = resources.Order(order)

	if !c.IsPost() {
		data["form"] = forms.OrderForm{Product: formatID(order.ProductID), Status: string(order.Status)}
		c.Render(http.StatusOK, orderFormView, data)
		return
	}

	var in forms.OrderForm
	if _, ok := c.Bind(&in); !ok {
		return
	}
	_, err = h.orders.Update(c.Context(), id, in)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		data["form"] = in
		c.Invalid(orderFormView, data, verr.Fields)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Redirect(rbac.HomeURL)
}

// Delete confirms on GET and removes the order on POST.
func (h *OrderController) Delete(c *ctx.Context) {
	id, ok := c.ParamUint("order_id")
	if !ok {
		c.NotFound()
		return
	}
	order, err := h.orders.Find(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	if !c.IsPost() {
		c.Render(http.StatusOK, orderDeleteView, resource.Map{"item": resources.Order(order)})
		return
	}
	if err := h.orders.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(rbac.HomeURL)
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
