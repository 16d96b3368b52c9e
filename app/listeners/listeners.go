// Package listeners subscribes the domain event handlers: metrics counters
// and an audit log line per change.
package listeners

import (
	"context"

	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

// Register attaches every listener to d.
func Register(d *event.Dispatcher) {
	d.Listen(services.EventOrderCreated, func(ctx context.Context, p any) {
		metrics.OrdersCreated.Inc()
		if o, ok := p.(models.Order); ok {
			logger.WithCtx(ctx).Info("order created", "order_id", o.ID, "customer_id", o.CustomerID, "status", o.Status)
		}
	})
	d.Listen(services.EventOrderUpdated, func(ctx context.Context, p any) {
		metrics.OrdersUpdated.Inc()
		if o, ok := p.(models.Order); ok {
			logger.WithCtx(ctx).Info("order updated", "order_id", o.ID, "status", o.Status)
		}
	})
	d.Listen(services.EventOrderDeleted, func(ctx context.Context, p any) {
		metrics.OrdersDeleted.Inc()
		logger.WithCtx(ctx).Info("order deleted", "order_id", p)
	})
	d.Listen(services.EventCustomerRegistered, func(ctx context.Context, p any) {
		metrics.Registrations.Inc()
		if u, ok := p.(models.User); ok {
			logger.WithCtx(ctx).Info("customer registered", "user_id", u.ID, "username", u.Username)
		}
	})
	d.Listen(services.EventLoginFailed, func(ctx context.Context, p any) {
		metrics.LoginFailures.Inc()
		logger.WithCtx(ctx).Warn("login failed", "username", p)
	})
}
