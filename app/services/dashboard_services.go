package services

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/repositories"
)

// OrderStats are the headline counts shown on the dashboards.
type OrderStats struct {
	Total     int64 `json:"total_orders"`
	Delivered int64 `json:"total_delivered"`
	Pending   int64 `json:"total_pending"`
}

func orderStats(ctx context.Context, orders *repositories.OrderRepository, q repositories.OrderQuery) (OrderStats, error) {
	byStatus, err := orders.CountByStatus(ctx, q)
	if err != nil {
		return OrderStats{}, err
	}
	var st OrderStats
	for _, n := range byStatus {
		st.Total += n
	}
	st.Delivered = byStatus[models.StatusDelivered]
	st.Pending = byStatus[models.StatusPending]
	return st, nil
}

// Dashboard is the admin home page.
type Dashboard struct {
	OrderStats
	TotalCustomers int64
	Orders         []models.Order
	Customers      []models.Customer
}

type DashboardService struct {
	customers *repositories.CustomerRepository
	orders    *repositories.OrderRepository
}

func NewDashboardService(customers *repositories.CustomerRepository, orders *repositories.OrderRepository) *DashboardService {
	return &DashboardService{customers: customers, orders: orders}
}

// Stats returns the store-wide order counts.
func (s *DashboardService) Stats(ctx context.Context) (OrderStats, error) {
	st, err := orderStats(ctx, s.orders, repositories.OrderQuery{})
	if err != nil {
		return OrderStats{}, fmt.Errorf("dashboard stats: %w", err)
	}
	return st, nil
}

func (s *DashboardService) Summary(ctx context.Context) (Dashboard, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	orders, err := s.orders.Find(ctx, repositories.OrderQuery{})
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard orders: %w", err)
	}
	customers, err := s.customers.All(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("dashboard customers: %w", err)
	}
	return Dashboard{
		OrderStats:     st,
		TotalCustomers: int64(len(customers)),
		Orders:         orders,
		Customers:      customers,
	}, nil
}
