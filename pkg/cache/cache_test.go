package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/metrics"
)

func TestDisabledCacheIsEmpty(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*cache.Cache{nil, cache.New(nil)} {
		assert.False(t, c.Enabled())
		require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
		var out int
		assert.False(t, c.Get(ctx, "k", &out))
		assert.NoError(t, c.Del(ctx, "k"))
		assert.Nil(t, c.Client())
	}
}

func TestRememberCallsLoaderOnMiss(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil)
	before := testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("remember-test"))

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"Widget"}, nil
	}
	v, err := cache.Remember(ctx, c, "remember-test", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Widget"}, v)

	_, _ = cache.Remember(ctx, c, "remember-test", time.Minute, load)
	assert.Equal(t, 2, calls, "a disabled cache never hits")
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.CacheMisses.WithLabelValues("remember-test")))
}

func TestRememberPropagatesLoaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := cache.Remember(context.Background(), cache.New(nil), "err", time.Minute, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}
