package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("secret"))
})

func run(h http.Handler, p *auth.Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if p != nil {
		req = req.WithContext(auth.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var (
	admin    = &auth.Principal{UserID: 1, Role: auth.RoleAdmin}
	customer = &auth.Principal{UserID: 2, Role: auth.RoleCustomer}
	norole   = &auth.Principal{UserID: 3}
)

func TestLoginRequired(t *testing.T) {
	rec := run(rbac.LoginRequired(ok), nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "secret")

	assert.Equal(t, http.StatusOK, run(rbac.LoginRequired(ok), norole).Code)
}

func TestUnauthenticated(t *testing.T) {
	assert.Equal(t, http.StatusOK, run(rbac.Unauthenticated(ok), nil).Code)

	rec := run(rbac.Unauthenticated(ok), customer)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestAllowedRoles(t *testing.T) {
	h := rbac.AllowedRoles(auth.RoleCustomer)(ok)

	assert.Equal(t, http.StatusOK, run(h, customer).Code)

	rec := run(h, admin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized to view this page")

	rec = run(h, nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))
}

func TestAdminOnly(t *testing.T) {
	h := rbac.AdminOnly(ok)

	assert.Equal(t, http.StatusOK, run(h, admin).Code)

	rec := run(h, customer)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/user/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusForbidden, run(h, norole).Code)
	assert.Equal(t, "/login/", run(h, nil).Header().Get("Location"))
}

func TestHomeFor(t *testing.T) {
	assert.Equal(t, "/", rbac.HomeFor(auth.RoleAdmin))
	assert.Equal(t, "/user/", rbac.HomeFor(auth.RoleCustomer))
	assert.Equal(t, "/products/", rbac.HomeFor(auth.RoleNone))
}
