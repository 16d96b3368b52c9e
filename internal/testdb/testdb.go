// Package testdb gives tests a fresh, fully migrated in-memory SQLite
// database.
package testdb

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	_ "github.com/shashiranjanraj/orderdesk/database/migrations" // registers the schema
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

var seq atomic.Int64

// New opens a private database for t, runs every migration and closes it
// when t finishes.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	logger.Discard()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	db, err := database.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("testdb: open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if _, err := migration.New(db).Run(context.Background()); err != nil {
		t.Fatalf("testdb: migrate: %v", err)
	}
	return db
}
