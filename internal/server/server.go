// Package server owns the process lifecycle of `orderdesk serve`: it opens
// the backing services, starts the HTTP and gRPC listeners and drains them
// on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	grpclib "google.golang.org/grpc"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/internal/kernel"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/grpc"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/storage"
)

const shutdownTimeout = 15 * time.Second

// Start runs until the process is signalled or a listener fails.
func Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx)
}

// Run serves until ctx is cancelled.
func Run(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogs := teeMongoLogs(ctx)
	defer closeLogs()

	db, err := database.Connect()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	c, err := cache.Connect(ctx)
	if err != nil {
		logger.Warn("redis unavailable, running without cache", "error", err)
	}
	defer func() {
		if rdb := c.Client(); rdb != nil {
			_ = rdb.Close()
		}
	}()

	disks, err := storage.FromConfig(ctx)
	if err != nil {
		return err
	}

	k, err := kernel.NewHTTPKernel(kernel.DepsFromConfig(db, c, disks))
	if err != nil {
		return fmt.Errorf("server: build kernel: %w", err)
	}

	var grpcSrv *grpclib.Server
	if port := config.GRPCPort(); port != "" {
		grpcSrv, err = grpc.Start(port, pinger(db))
		if err != nil {
			return err
		}
		defer grpc.Stop(grpcSrv)
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("orderdesk listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

func pinger(db *gorm.DB) grpc.Checker {
	return func(ctx context.Context) error { return database.Ping(ctx, db) }
}

// teeMongoLogs adds the Mongo sink next to stdout when LOG_MONGO_URI is set.
// The returned func flushes and disconnects it.
func teeMongoLogs(ctx context.Context) func() {
	uri := config.Get("LOG_MONGO_URI", "")
	if uri == "" {
		return func() {}
	}
	base := logger.L.Handler()
	h, err := logger.NewMongoHandler(ctx, uri, config.Get("LOG_MONGO_DB", "orderdesk"), config.Get("LOG_MONGO_COLLECTION", "logs"))
	if err != nil {
		logger.Warn("mongo log sink disabled", "error", err)
		return func() {}
	}
	logger.Use(logger.Tee{base, h})
	return func() {
		logger.Use(base)
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Close(closeCtx)
	}
}
