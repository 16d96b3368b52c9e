// Package seeders provides a registry of database seed functions.
//
//	func init() {
//	    seeders.Register("groups", seedGroups)
//	}
//
// Run via CLI: orderdesk seed. Every seeder must be idempotent.
package seeders

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, db *gorm.DB) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order, stopping on
// the first error. It returns the names that completed.
func RunAll(ctx context.Context, db *gorm.DB) ([]string, error) {
	mu.Lock()
	current := append([]seederEntry(nil), entries...)
	mu.Unlock()

	var done []string
	for _, e := range current {
		logger.Info("seeder: running", "name", e.name)
		if err := e.fn(ctx, db.WithContext(ctx)); err != nil {
			return done, fmt.Errorf("seeder %q: %w", e.name, err)
		}
		done = append(done, e.name)
	}
	return done, nil
}
