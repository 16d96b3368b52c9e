package listeners_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/orderdesk/app/listeners"
	"github.com/shashiranjanraj/orderdesk/app/models"
	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/pkg/event"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

func TestListenersFeedCounters(t *testing.T) {
	logger.Discard()
	d := event.New()
	listeners.Register(d)
	ctx := context.Background()

	before := map[string]float64{
		"created":  testutil.ToFloat64(metrics.OrdersCreated),
		"updated":  testutil.ToFloat64(metrics.OrdersUpdated),
		"deleted":  testutil.ToFloat64(metrics.OrdersDeleted),
		"register": testutil.ToFloat64(metrics.Registrations),
		"failed":   testutil.ToFloat64(metrics.LoginFailures),
	}

	d.Fire(ctx, services.EventOrderCreated, models.Order{Status: models.StatusPending})
	d.Fire(ctx, services.EventOrderCreated, models.Order{Status: models.StatusPending})
	d.Fire(ctx, services.EventOrderUpdated, models.Order{})
	d.Fire(ctx, services.EventOrderDeleted, uint(7))
	d.Fire(ctx, services.EventCustomerRegistered, models.User{Username: "alice"})
	d.Fire(ctx, services.EventLoginFailed, "mallory")

	assert.Equal(t, before["created"]+2, testutil.ToFloat64(metrics.OrdersCreated))
	assert.Equal(t, before["updated"]+1, testutil.ToFloat64(metrics.OrdersUpdated))
	assert.Equal(t, before["deleted"]+1, testutil.ToFloat64(metrics.OrdersDeleted))
	assert.Equal(t, before["register"]+1, testutil.ToFloat64(metrics.Registrations))
	assert.Equal(t, before["failed"]+1, testutil.ToFloat64(metrics.LoginFailures))
}
