package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (h *ProductController) Index(c *ctx.Context) {
	products, err := h.products.All(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Render(http.StatusOK, "accounts/products", resource.Map{
		"products": resource.Collection(resources.Product, products),
	})
}
