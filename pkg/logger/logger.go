// Package logger provides the structured, levelled logger used across
// orderdesk. It is a thin layer over log/slog.
//
// The request-scoped logger is the one to use inside handlers and services:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("order created", "order_id", o.ID)
//	// → time=... level=INFO msg="order created" request_id=3f0c... order_id=12
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/shashiranjanraj/orderdesk/config"
)

var L *slog.Logger

func init() {
	L = slog.New(newHandler(os.Stdout))
	slog.SetDefault(L)
}

// newHandler picks JSON output for production and text for everything else.
func newHandler(w io.Writer) slog.Handler {
	if config.IsProduction() {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
}

// Use replaces the base logger. Loggers already handed out by WithCtx keep
// their old handler until the next request.
func Use(h slog.Handler) {
	L = slog.New(h)
	slog.SetDefault(L)
}

// Discard silences all output; tests call it to keep `go test -v` readable.
func Discard() {
	Use(slog.NewTextHandler(io.Discard, nil))
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

type ctxKey struct{}

// WithCtx returns the request logger stored by the Logger middleware, or the
// base logger when ctx carries none.
func WithCtx(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return L
	}
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores log into ctx. Called by middleware.Logger.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
