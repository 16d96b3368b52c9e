// Package routes declares every page and the guard in front of it.
package routes

import (
	"github.com/shashiranjanraj/orderdesk/app/controllers"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/middleware"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
	"github.com/shashiranjanraj/orderdesk/pkg/router"
)

// Controllers is everything the web routes dispatch to.
type Controllers struct {
	Dashboard *controllers.DashboardController
	Products  *controllers.ProductController
	Customers *controllers.CustomerController
	Orders    *controllers.OrderController
	Auth      *controllers.AuthController
	Account   *controllers.AccountController
	GraphQL   *controllers.GraphQLController
}

// RegisterWeb mounts the pages on r. limiter throttles the credential
// endpoints; nil disables throttling.
func RegisterWeb(r *router.Router, h Controllers, limiter *middleware.RateLimiter) {
	throttle := func(mws ...router.Middleware) []router.Middleware {
		if limiter != nil {
			mws = append(mws, limiter.Middleware)
		}
		return mws
	}

	r.Get("/", "dashboard", ctx.Wrap(h.Dashboard.Home), rbac.AdminOnly)

	guest := r.Group("", rbac.Unauthenticated)
	guest.Match("/register/", "register", ctx.Wrap(h.Auth.Register), throttle()...)
	guest.Match("/login/", "login", ctx.Wrap(h.Auth.Login), throttle()...)

	r.Post("/api/token", "api.token", ctx.Wrap(h.Auth.Token), throttle()...)

	staff := r.Group("", rbac.LoginRequired)
	staff.Get("/logout/", "logout", ctx.Wrap(h.Auth.Logout))
	staff.Get("/products/", "products", ctx.Wrap(h.Products.Index))
	staff.Get("/customer/{id}/", "customer", ctx.Wrap(h.Customers.Show))
	staff.Match("/create_order/{customer_id}/", "create_order", ctx.Wrap(h.Orders.Create))
	staff.Match("/update_order/{order_id}/", "update_order", ctx.Wrap(h.Orders.Update))
	staff.Match("/delete_order/{order_id}/", "delete_order", ctx.Wrap(h.Orders.Delete))

	self := r.Group("", rbac.AllowedRoles(auth.RoleCustomer))
	self.Match("/settings/", "account", ctx.Wrap(h.Account.Settings))
	self.Get("/user/", "user-page", ctx.Wrap(h.Account.Orders))

	r.Post("/graphql", "graphql", h.GraphQL.ServeHTTP, rbac.AllowedRoles(auth.RoleAdmin))
}
