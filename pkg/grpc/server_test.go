package grpc_test

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	orderdeskgrpc "github.com/shashiranjanraj/orderdesk/pkg/grpc"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func init() { logger.Discard() }

func healthClient(t *testing.T, check orderdeskgrpc.Checker) grpc_health_v1.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := orderdeskgrpc.NewServer(check)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return grpc_health_v1.NewHealthClient(conn)
}

func TestHealthFollowsChecker(t *testing.T) {
	healthy := true
	c := healthClient(t, func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("db down")
	})
	ctx := context.Background()

	resp, err := c.Check(ctx, &grpc_health_v1.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_SERVING, resp.GetStatus())

	healthy = false
	resp, err = c.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: "orderdesk"})
	require.NoError(t, err)
	assert.Equal(t, grpc_health_v1.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHealthUnknownService(t *testing.T) {
	c := healthClient(t, nil)
	_, err := c.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: "billing"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
