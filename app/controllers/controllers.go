// Package controllers holds the page handlers. Each handler decodes its
// input, calls one service and renders a view envelope or redirects.
package controllers

import (
	"errors"

	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
)

// fail maps a service error to a response.
func fail(c *ctx.Context, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		c.NotFound()
		return
	}
	c.ServerError(err)
}
