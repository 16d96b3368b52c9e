// Package rbac provides the view guards. Each guard reads the Principal that
// auth.Authenticate placed in the request context.
//
//	r.Get("/user/", "user-page", h, rbac.AllowedRoles(auth.RoleCustomer))
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
)

// Redirect targets.
const (
	LoginURL    = "/login/"
	HomeURL     = "/"
	CustomerURL = "/user/"
)

// LoginRequired sends anonymous callers to the login page.
func LoginRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFrom(r.Context()); !ok {
			response.Redirect(w, r, LoginURL)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Unauthenticated keeps logged-in callers away from login and registration.
func Unauthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.PrincipalFrom(r.Context()); ok {
			response.Redirect(w, r, HomeURL)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AllowedRoles admits only principals holding one of roles. Anonymous
// callers are sent to login; everyone else gets 403.
func AllowedRoles(roles ...auth.Role) func(http.Handler) http.Handler {
	allowed := make(map[auth.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.PrincipalFrom(r.Context())
			if !ok {
				response.Redirect(w, r, LoginURL)
				return
			}
			if !allowed[p.Role] {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly guards the dashboard: customers are redirected to their own
// page, admins pass, principals without a role are refused.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.PrincipalFrom(r.Context())
		switch {
		case !ok:
			response.Redirect(w, r, LoginURL)
		case p.Role == auth.RoleCustomer:
			response.Redirect(w, r, CustomerURL)
		case p.Role == auth.RoleAdmin:
			next.ServeHTTP(w, r)
		default:
			response.Forbidden(w)
		}
	})
}

// HomeFor returns where a principal lands after login.
func HomeFor(role auth.Role) string {
	switch role {
	case auth.RoleAdmin:
		return HomeURL
	case auth.RoleCustomer:
		return CustomerURL
	}
	return "/products/"
}
