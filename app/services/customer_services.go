package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/orderdesk/app/forms"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
)

// CustomerDetail is one customer with a filtered order list.
// OrdersCount counts every order of the customer regardless of the filter.
type CustomerDetail struct {
	Customer    models.Customer
	Orders      []models.Order
	OrdersCount int64
	Filter      forms.OrderFilter
}

type CustomerService struct {
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
}

func NewCustomerService(customers *repositories.CustomerRepository, products *repositories.ProductRepository, orders *repositories.OrderRepository) *CustomerService {
	return &CustomerService{customers: customers, products: products, orders: orders}
}

func (s *CustomerService) All(ctx context.Context) ([]models.Customer, error) {
	return s.customers.All(ctx)
}

// Find returns repositories.ErrNotFound for an unknown id.
func (s *CustomerService) Find(ctx context.Context, id uint) (models.Customer, error) {
	return s.customers.FindByID(ctx, id)
}

// Detail loads customer id with its orders narrowed by f. An invalid filter
// yields no orders and keeps the field errors on the returned Filter.
func (s *CustomerService) Detail(ctx context.Context, id uint, f forms.OrderFilter) (CustomerDetail, error) {
	c, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return CustomerDetail{}, err
	}

	if f.Validate() {
		if pid := f.ProductID(); pid != nil {
			found, err := s.products.Existing(ctx, []uint{*pid})
			if err != nil {
				return CustomerDetail{}, fmt.Errorf("customer detail: %w", err)
			}
			if !found[*pid] {
				f.Reject("product", "Select a valid choice. That choice is not one of the available choices.")
			}
		}
	}

	orders := []models.Order{}
	if f.Valid() {
		orders, err = s.orders.Find(ctx, repositories.OrderQuery{
			CustomerID: &c.ID,
			ProductID:  f.ProductID(),
			Status:     f.StatusValue(),
		})
		if err != nil {
			return CustomerDetail{}, fmt.Errorf("customer detail: %w", err)
		}
	}

	total, err := s.orders.Count(ctx, repositories.OrderQuery{CustomerID: &c.ID})
	if err != nil {
		return CustomerDetail{}, fmt.Errorf("customer detail: %w", err)
	}
	return CustomerDetail{Customer: c, Orders: orders, OrdersCount: total, Filter: f}, nil
}
