package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/orderdesk/app/services"
	"github.com/shashiranjanraj/orderdesk/config"
	"github.com/shashiranjanraj/orderdesk/database/seeders"
	"github.com/shashiranjanraj/orderdesk/pkg/cache"
	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	return database.Connect()
}

func withDB(fn func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}
		defer database.Close(db) //nolint:errcheck
		return fn(cmd.Context(), cmd, db)
	}
}

// orderdesk migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		ran, err := migration.New(db).Run(ctx)
		for _, name := range ran {
			fmt.Fprintln(cmd.OutOrStdout(), "Migrated:", name)
		}
		if err == nil && len(ran) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to migrate.")
		}
		return err
	}),
}

// orderdesk migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		undone, err := migration.New(db).Rollback(ctx)
		for _, name := range undone {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolled back:", name)
		}
		if err == nil && len(undone) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to roll back.")
		}
		return err
	}),
}

// orderdesk migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		rows, err := migration.New(db).Status(ctx)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, s := range rows {
			state := "Pending"
			if s.Ran {
				state = fmt.Sprintf("Ran (batch %d)", s.Batch)
			}
			fmt.Fprintf(out, "%-40s %s\n", s.Name, state)
		}
		return nil
	}),
}

// orderdesk seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run all database seeders",
	RunE: withDB(func(ctx context.Context, cmd *cobra.Command, db *gorm.DB) error {
		ran, err := seeders.RunAll(ctx, db)
		for _, name := range ran {
			fmt.Fprintln(cmd.OutOrStdout(), "Seeded:", name)
		}
		if err != nil {
			return err
		}
		// The product listing may be cached from before the seed.
		if c, cerr := cache.Connect(ctx); cerr == nil {
			defer c.Client().Close()
			_ = services.NewProductService(nil, c).Invalidate(ctx)
		}
		return nil
	}),
}
