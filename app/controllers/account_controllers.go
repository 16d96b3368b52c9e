package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/resources"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/bind"
	"github.com/shashiranjanraj/orderdesk/pkg/ctx"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
	"github.com/shashiranjanraj/orderdesk/pkg/validate"
)

const settingsView = "accounts/account_settings"

// AccountController serves the signed-in customer's own pages. The
// customer always comes from the principal.
type AccountController struct {
	account *services.AccountService
}

func NewAccountController(account *services.AccountService) *AccountController {
	return &AccountController{account: account}
}

func (h *AccountController) Settings(c *ctx.Context) {
	p, ok := c.Principal()
	if !ok {
		c.Forbidden()
		return
	}
	customer, err := h.account.Profile(c.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	show := resources.CustomerWith(h.account.PictureURL)

	if !c.IsPost() {
		c.Render(http.StatusOK, settingsView, resource.Map{"customer": show(customer)})
		return
	}

	var in forms.ProfileForm
	errs, ok := c.Bind(&in)
	if !ok {
		return
	}
	if validate.HasErrors(errs) {
		c.Invalid(settingsView, resource.Map{"customer": show(customer), "form": in}, errs)
		return
	}

	var pic *services.Upload
	if !bind.IsJSON(c.R) {
		file, header, err := bind.File(c.R, "profile_pic")
		switch {
		case err == nil:
			defer file.Close()
			pic = &services.Upload{Filename: header.Filename, Size: header.Size, Body: file}
		case !errors.Is(err, http.ErrMissingFile):
			c.BadRequest(err)
			return
		}
	}

	updated, err := h.account.UpdateProfile(c.Context(), p.UserID, in, pic)
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		c.Invalid(settingsView, resource.Map{"customer": show(customer), "form": in}, verr.Fields)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.Render(http.StatusOK, settingsView, resource.Map{"customer": show(updated)})
}

// Orders is the customer's own order summary.
func (h *AccountController) Orders(c *ctx.Context) {
	p, ok := c.Principal()
	if !ok {
		c.Forbidden()
		return
	}
	mine, err := h.account.Orders(c.Context(), p.UserID)
	if err != nil {
		fail(c, err)
		return
	}
	data := resources.Stats(mine.OrderStats)
	data["customer"] = resources.CustomerWith(h.account.PictureURL)(mine.Customer)
	data["orders"] = resource.Collection(resources.Order, mine.Orders)
	c.Render(http.StatusOK, "accounts/user", data)
}
