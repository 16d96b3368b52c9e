package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
)

const invalidProductMsg = "Select a valid choice. That choice is not one of the available choices."

type OrderService struct {
	db        *gorm.DB
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	events    *event.Dispatcher
}

func NewOrderService(db *gorm.DB, customers *repositories.CustomerRepository, products *repositories.ProductRepository, orders *repositories.OrderRepository, events *event.Dispatcher) *OrderService {
	return &OrderService{db: db, customers: customers, products: products, orders: orders, events: events}
}

// Find returns repositories.ErrNotFound for an unknown id.
func (s *OrderService) Find(ctx context.Context, id uint) (models.Order, error) {
	return s.orders.FindByID(ctx, id)
}

// List returns every order, optionally narrowed to one status.
func (s *OrderService) List(ctx context.Context, status *models.Status) ([]models.Order, error) {
	return s.orders.Find(ctx, repositories.OrderQuery{Status: status})
}

// BulkCreate validates every filled row of set and, if all pass, inserts
// them for customerID in one transaction. Blank rows are skipped. On a
// validation failure the returned error wraps ErrValidation and a
// *forms.FormSetErrors and nothing is written.
func (s *OrderService) BulkCreate(ctx context.Context, customerID uint, set forms.OrderFormSet) ([]models.Order, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	errs := forms.NewFormSetErrors(len(set.Forms))
	filled := set.Filled()
	var ids []uint
	for _, i := range filled {
		if e := set.Forms[i].Validate(); len(e) > 0 {
			errs.Forms[i] = e
			continue
		}
		ids = append(ids, set.Forms[i].ProductID())
	}

	found, err := s.products.Existing(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("create orders: %w", err)
	}
	for _, i := range filled {
		if len(errs.Forms[i]) == 0 && !found[set.Forms[i].ProductID()] {
			errs.Forms[i]["product"] = invalidProductMsg
		}
	}
	if errs.Any() {
		return nil, fmt.Errorf("%w: %w", ErrValidation, errs)
	}

	orders := make([]models.Order, 0, len(filled))
	for _, i := range filled {
		orders = append(orders, models.Order{
			CustomerID: customer.ID,
			ProductID:  set.Forms[i].ProductID(),
			Status:     models.Status(set.Forms[i].Status),
		})
	}
	if len(orders) == 0 {
		return orders, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.orders.WithTx(tx).CreateBatch(ctx, orders)
	})
	if err != nil {
		return nil, fmt.Errorf("create orders: %w", err)
	}

	for _, o := range orders {
		s.events.Fire(ctx, EventOrderCreated, o)
	}
	return orders, nil
}

// Update rewrites product and status of order id.
func (s *OrderService) Update(ctx context.Context, id uint, f forms.OrderForm) (models.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	if e := f.Validate(); len(e) > 0 {
		return o, invalid(e)
	}
	pid := f.ProductID()
	found, err := s.products.Existing(ctx, []uint{pid})
	if err != nil {
		return o, fmt.Errorf("update order: %w", err)
	}
	if !found[pid] {
		return o, invalid(forms.Errors{"product": invalidProductMsg})
	}

	o.ProductID = pid
	o.Status = models.Status(f.Status)
	o.Product = nil
	if err := s.orders.Update(ctx, &o); err != nil {
		return o, fmt.Errorf("update order: %w", err)
	}

	s.events.Fire(ctx, EventOrderUpdated, o)
	return o, nil
}

// Delete removes order id permanently.
func (s *OrderService) Delete(ctx context.Context, id uint) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Fire(ctx, EventOrderDeleted, id)
	return nil
}
