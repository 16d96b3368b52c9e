// Package auth resolves who is making a request. A Principal comes either
// from the session (user_id) or from a bearer token, and is stored in the
// request context for the rbac guards and controllers.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/session"
)

// Role is the closed set of roles a principal may hold.
type Role string

const (
	RoleNone     Role = ""
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// Roles lists every assignable role.
var Roles = []Role{RoleCustomer, RoleAdmin}

// Valid reports whether r is an assignable role.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// SessionUserKey is the session key holding the logged-in user's ID.
const SessionUserKey = "user_id"

// Principal is an authenticated identity.
type Principal struct {
	UserID   uint
	Username string
	Role     Role
}

// Resolver loads the current state of a user. It returns a nil Principal for
// an unknown ID.
type Resolver interface {
	ResolvePrincipal(ctx context.Context, userID uint) (*Principal, error)
}

type principalKey struct{}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal in ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Authenticate attaches a Principal to the request when the session carries
// a user_id or the request presents a valid bearer token. Anonymous requests
// pass through untouched; the rbac guards decide what they may reach.
func Authenticate(users Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, fromSession := session.FromCtx(r).GetUint(SessionUserKey)
			if !fromSession {
				id = bearerUserID(r)
			}
			if id == 0 {
				next.ServeHTTP(w, r)
				return
			}

			p, err := users.ResolvePrincipal(r.Context(), id)
			if err != nil {
				logger.WithCtx(r.Context()).Error("auth: resolve principal", "user_id", id, "error", err)
			}
			if p == nil {
				if fromSession {
					// The account behind this session is gone.
					session.FromCtx(r).Delete(SessionUserKey)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
		})
	}
}

func bearerUserID(r *http.Request) uint {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return 0
	}
	claims, err := ValidateToken(strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return 0
	}
	return claims.UserID
}
