package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/bind"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/rbac"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

const (
	registerView = "accounts/register"
	loginView    = "accounts/login"

	badCredentials = "Username OR password is incorrect"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register signs up a new customer.
func (h *AuthController) Register(c *ctx.Context) {
	if !c.IsPost() {
		c.Render(http.StatusOK, registerView, resource.Map{"form": forms.RegisterForm{}})
		return
	}

	var in forms.RegisterForm
	errs, ok := c.Bind(&in)
	if !ok {
		return
	}
	if validate.HasErrors(errs) {
		c.Invalid(registerView, resource.Map{"form": in.Redacted()}, errs)
		return
	}

	user, err := h.service.Register(c.Context(), in)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.Invalid(registerView, resource.Map{"form": in.Redacted()}, verr.Fields)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Flash("Account was created for " + user.Username)
	c.Redirect(rbac.LoginURL)
}

// Login starts a session.
func (h *AuthController) Login(c *ctx.Context) {
	if !c.IsPost() {
		c.Render(http.StatusOK, loginView, resource.Map{"form": resource.Map{"username": ""}})
		return
	}

	var in forms.LoginForm
	if _, ok := c.Bind(&in); !ok {
		return
	}
	user, err := h.service.Authenticate(c.Context(), in.Username, in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Flash(badCredentials)
		c.Render(http.StatusUnauthorized, loginView, resource.Map{"form": resource.Map{"username": in.Username}})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	sess := c.Session()
	sess.Regenerate()
	sess.Set(auth.SessionUserKey, user.ID)
	c.Redirect(rbac.HomeFor(user.Role()))
}

// Logout ends the session.
func (h *AuthController) Logout(c *ctx.Context) {
	c.Session().Destroy()
	c.Redirect(rbac.LoginURL)
}

// Token exchanges credentials for a bearer token.
func (h *AuthController) Token(c *ctx.Context) {
	var in forms.LoginForm
	var err error
	if bind.IsJSON(c.R) {
		err = bind.DecodeJSON(c.R, &in)
	} else {
		_, err = bind.Form(c.R, &in)
	}
	if err != nil {
		c.BadRequest(err)
		return
	}

	token, user, err := h.service.IssueToken(c.Context(), in.Username, in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		c.Error(http.StatusUnauthorized, badCredentials)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resource.Map{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(auth.TokenTTL.Seconds()),
		"role":       user.Role(),
	})
}
