package ctx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
	"github.com/shashiranjanraj/orderdesk/pkg/session"
)

func init() { logger.Discard() }

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	var got uint
	var ok bool
	r.Get("/customer/{id}/", appctx.Wrap(func(c *appctx.Context) {
		got, ok = c.ParamUint("id")
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customer/12/", nil))
	assert.True(t, ok)
	assert.Equal(t, uint(12), got)

	for _, bad := range []string{"abc", "0", "-1"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/customer/"+bad+"/", nil))
		assert.False(t, ok, bad)
	}
}

func TestRenderDrainsFlashes(t *testing.T) {
	mgr := session.NewManager(session.NewMemoryStore(), session.DefaultOptions())
	rec := httptest.NewRecorder()
	h := mgr.Middleware()(appctx.Wrap(func(c *appctx.Context) {
		c.Flash("Account was created for ada")
		c.Render(http.StatusOK, "accounts/login", map[string]any{"form": nil})
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	env := decode(t, rec)
	assert.Equal(t, "accounts/login", env.View)
	assert.Equal(t, []string{"Account was created for ada"}, env.Messages)
}

func TestBindInvalid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(url.Values{"name": {""}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	appctx.Wrap(func(c *appctx.Context) {
		var in struct {
			Name string `form:"name" validate:"required"`
		}
		errs, ok := c.Bind(&in)
		require.True(t, ok)
		require.NotEmpty(t, errs)
		c.Invalid("accounts/settings", in, errs)
	})(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "accounts/settings", env.View)
	assert.NotNil(t, env.Errors)
}

func TestBindMalformedWrites400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(func(c *appctx.Context) {
		var in struct{}
		_, ok := c.Bind(&in)
		assert.False(t, ok)
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRedirectAndErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.Redirect("/login/") })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login/", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.NotFound() })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.ServerError(errors.New("db down")) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
