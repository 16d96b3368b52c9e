package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWithCtxFallsBackToBase(t *testing.T) {
	assert.Same(t, L, WithCtx(context.Background()))

	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := InjectLogger(context.Background(), custom)
	assert.Same(t, custom, WithCtx(ctx))
}

func TestTeeWritesToEveryHandler(t *testing.T) {
	var a, b bytes.Buffer
	log := slog.New(Tee{
		slog.NewTextHandler(&a, nil),
		slog.NewJSONHandler(&b, nil),
	}).With("request_id", "r1")

	log.Info("order created", "order_id", 7)

	assert.Contains(t, a.String(), "order_id=7")
	assert.Contains(t, a.String(), "request_id=r1")
	assert.Contains(t, b.String(), `"order_id":7`)
}

func TestMongoDocumentLiftsRequestID(t *testing.T) {
	h := &MongoHandler{}
	h2 := h.WithAttrs([]slog.Attr{slog.String("request_id", "abc")}).WithGroup("http").(*MongoHandler)

	r := slog.NewRecord(time.Now(), slog.LevelWarn, "slow request", 0)
	r.AddAttrs(slog.Int("status", 500))

	doc := h2.document(r)
	assert.Equal(t, "abc", doc.RequestID)
	assert.Equal(t, "WARN", doc.Level)
	assert.Equal(t, "slow request", doc.Msg)
	assert.EqualValues(t, 500, doc.Attrs["http.status"])
	_, leaked := doc.Attrs["request_id"]
	assert.False(t, leaked)
}
