// Package resources holds the response shape of each model.
package resources

import (
	"time"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/collection"
	"github.com/shashiranjanraj/orderdesk/pkg/resource"
)

// Product renders a catalogue item with its price fixed to two decimals.
func Product(p models.Product) resource.Map {
	return resource.Map{
		"id":           p.ID,
		"name":         p.Name,
		"price":        p.Price.StringFixed(2),
		"category":     p.Category,
		"description":  p.Description,
		"tags":         collection.Map(p.Tags, func(t models.Tag) string { return t.Name }),
		"date_created": p.CreatedAt.Format(time.RFC3339),
	}
}

// CustomerWith returns a customer transformer that resolves profile picture
// keys through pictureURL.
func CustomerWith(pictureURL func(string) string) resource.Transformer[models.Customer] {
	return func(c models.Customer) resource.Map {
		pic := ""
		if c.ProfilePic != "" && pictureURL != nil {
			pic = pictureURL(c.ProfilePic)
		}
		return resource.Map{
			"id":           c.ID,
			"name":         c.Name,
			"phone":        c.Phone,
			"email":        c.Email,
			"profile_pic":  pic,
			"date_created": c.CreatedAt.Format(time.RFC3339),
		}
	}
}

// Customer renders a customer without a picture URL.
var Customer = CustomerWith(nil)

// Order renders an order with short product and customer references when
// they were preloaded.
func Order(o models.Order) resource.Map {
	out := resource.Map{
		"id":           o.ID,
		"customer_id":  o.CustomerID,
		"product_id":   o.ProductID,
		"status":       o.Status,
		"note":         o.Note,
		"date_created": o.CreatedAt.Format(time.RFC3339),
	}
	if o.Product != nil {
		out["product"] = resource.Map{"id": o.Product.ID, "name": o.Product.Name, "price": o.Product.Price.StringFixed(2)}
	}
	if o.Customer != nil {
		out["customer"] = resource.Map{"id": o.Customer.ID, "name": o.Customer.Name}
	}
	return out
}

// Stats renders order totals under their dashboard keys.
func Stats(s services.OrderStats) resource.Map {
	return resource.Map{
		"total_orders":    s.Total,
		"total_delivered": s.Delivered,
		"total_pending":   s.Pending,
	}
}

// OrderFormSet renders formset rows with their errors, if any.
func OrderFormSet(set forms.OrderFormSet, errs *forms.FormSetErrors) resource.Map {
	rows := make([]resource.Map, len(set.Forms))
	for i, f := range set.Forms {
		row := resource.Map{"product": f.Product, "status": f.Status, "errors": forms.Errors{}}
		if errs != nil && i < len(errs.Forms) && errs.Forms[i] != nil {
			row["errors"] = errs.Forms[i]
		}
		rows[i] = row
	}
	out := resource.Map{"total_forms": len(set.Forms), "forms": rows}
	if errs != nil && len(errs.NonField) > 0 {
		out["non_field_errors"] = errs.NonField
	}
	return out
}

// Filter echoes the submitted filter and its errors.
func Filter(f forms.OrderFilter) resource.Map {
	errs := f.Errors
	if errs == nil {
		errs = forms.Errors{}
	}
	return resource.Map{"product": f.Product, "status": f.Status, "errors": errs}
}
