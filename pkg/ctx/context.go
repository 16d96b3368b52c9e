// Package ctx provides a request context for orderdesk handlers.
//
// Instead of (http.ResponseWriter, *http.Request), a handler receives a
// single *Context with helpers for params, sessions, binding and rendering:
//
//	func (h *CustomerController) Show(c *ctx.Context) {
//	    id, ok := c.ParamUint("id")
//	    if !ok {
//	        c.NotFound()
//	        return
//	    }
//	    c.Render(http.StatusOK, "accounts/customer", data)
//	}
//
//	router.Get("/customer/{id}/", "customer", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/bind"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/response"
	"github.com/shashiranjanraj/orderdesk/pkg/session"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W http.ResponseWriter
	R *http.Request
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter. Non-numeric and zero IDs
// report false.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// IsPost reports whether this is a form submission.
func (c *Context) IsPost() bool { return c.R.Method == http.MethodPost }

// Context returns the request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Logger returns the request-scoped logger.
func (c *Context) Logger() *slog.Logger { return logger.WithCtx(c.R.Context()) }

// Session returns the request session.
func (c *Context) Session() *session.Session { return session.FromCtx(c.R) }

// Principal returns the authenticated caller, if any.
func (c *Context) Principal() (*auth.Principal, bool) {
	return auth.PrincipalFrom(c.R.Context())
}

// Flash queues a notice for the next rendered page.
func (c *Context) Flash(msg string) { c.Session().Flash(msg) }

// ─── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes the body (form, multipart or JSON) into dest and validates it.
// On a malformed or oversized body it writes 400/413 and returns ok=false.
// Validation failures are returned for the caller to render with its view.
//
//	var in forms.LoginForm
//	errs, ok := c.Bind(&in)
//	if !ok {
//	    return
//	}
func (c *Context) Bind(dest any) (validate.Errors, bool) {
	errs, err := bind.Request(c.R, dest)
	if err != nil {
		c.BadRequest(err)
		return nil, false
	}
	return errs, true
}

// BadRequest answers a body decoding failure.
func (c *Context) BadRequest(err error) {
	if errors.Is(err, bind.ErrTooLarge) {
		c.Error(http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	c.Error(http.StatusBadRequest, err.Error())
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Render sends a page envelope and drains pending flash messages into it.
func (c *Context) Render(status int, view string, data any) {
	response.Render(c.W, status, view, data, c.Session().Flashes())
}

// Invalid re-renders view with field errors and a 422.
func (c *Context) Invalid(view string, data any, errs any) {
	response.Write(c.W, http.StatusUnprocessableEntity, response.Envelope{
		View:     view,
		Message:  "Validation failed",
		Data:     data,
		Errors:   errs,
		Messages: c.Session().Flashes(),
	})
}

// JSON writes a bare envelope with data.
func (c *Context) JSON(status int, data any) {
	response.Write(c.W, status, response.Envelope{Data: data})
}

// Error sends an error envelope.
func (c *Context) Error(status int, message string) {
	response.Error(c.W, status, message)
}

// Redirect sends a 302.
func (c *Context) Redirect(url string) {
	response.Redirect(c.W, c.R, url)
}

// NotFound sends a 404.
func (c *Context) NotFound() { response.NotFound(c.W) }

// Forbidden sends a 403.
func (c *Context) Forbidden() { response.Forbidden(c.W) }

// ServerError logs err against the request and sends a 500.
func (c *Context) ServerError(err error) {
	c.Logger().Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
	c.Error(http.StatusInternalServerError, "Internal server error")
}
