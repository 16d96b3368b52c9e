package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/database"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func init() { logger.Discard() }

func TestOpenSQLiteMemory(t *testing.T) {
	db, err := database.Open("sqlite", "file:dbtest?mode=memory&cache=shared&_foreign_keys=1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	assert.NoError(t, database.Ping(context.Background(), db))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := database.Open("oracle", "x")
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
