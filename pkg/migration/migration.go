// Package migration runs versioned schema changes and records them in the
// orderdesk_migrations table.
//
//	func init() {
//	    migration.Register("20240101000001_create_groups_table", createGroups{})
//	}
//
//	orderdesk migrate             // run all pending
//	orderdesk migrate:rollback    // roll back the last batch
package migration

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

// Migration is implemented by every schema change.
type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "orderdesk_migrations" }

type entry struct {
	name string
	m    Migration
}

var registry []entry

// Register adds a migration to the global registry. Names are
// timestamp-prefixed so lexical order is chronological.
func Register(name string, m Migration) {
	for _, e := range registry {
		if e.name == name {
			panic("migration: duplicate name " + name)
		}
	}
	registry = append(registry, entry{name: name, m: m})
	sort.Slice(registry, func(i, j int) bool { return registry[i].name < registry[j].name })
}

// Status is one row of migrate:status.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&migrationRecord{}); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}
	return nil
}

func (r *Runner) ran(ctx context.Context) (map[string]migrationRecord, error) {
	var rows []migrationRecord
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("migration: load history: %w", err)
	}
	out := make(map[string]migrationRecord, len(rows))
	for _, rec := range rows {
		out[rec.Name] = rec
	}
	return out, nil
}

// Run executes every pending migration as one batch and returns the names
// applied. Each migration and its history row commit together.
func (r *Runner) Run(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}

	batch := r.lastBatch(ctx) + 1
	var applied []string
	for _, e := range registry {
		if _, ok := done[e.name]; ok {
			continue
		}
		logger.Info("migration: running", "name", e.name, "batch", batch)
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := e.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&migrationRecord{Name: e.name, Batch: batch}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("migration: %s up: %w", e.name, err)
		}
		applied = append(applied, e.name)
	}
	return applied, nil
}

// Rollback reverses the most recent batch, newest first, and returns the
// names reverted.
func (r *Runner) Rollback(ctx context.Context) ([]string, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	last := r.lastBatch(ctx)
	if last == 0 {
		return nil, nil
	}

	var records []migrationRecord
	if err := r.db.WithContext(ctx).Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("migration: load batch %d: %w", last, err)
	}

	known := make(map[string]Migration, len(registry))
	for _, e := range registry {
		known[e.name] = e.m
	}

	var reverted []string
	for _, rec := range records {
		m, ok := known[rec.Name]
		if !ok {
			return reverted, fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}
		logger.Info("migration: rolling back", "name", rec.Name)
		rec := rec
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&rec).Error
		})
		if err != nil {
			return reverted, fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
		reverted = append(reverted, rec.Name)
	}
	return reverted, nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status(ctx context.Context) ([]Status, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	done, err := r.ran(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(registry))
	for _, e := range registry {
		rec, ok := done[e.name]
		out = append(out, Status{Name: e.name, Ran: ok, Batch: rec.Batch})
	}
	return out, nil
}

func (r *Runner) lastBatch(ctx context.Context) int {
	var row struct{ Max int }
	r.db.WithContext(ctx).Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&row)
	return row.Max
}
