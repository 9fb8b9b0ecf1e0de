// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/budget/internal/database"
)

// MemoryDSN is a private in-memory SQLite database with foreign keys enforced.
const MemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// New returns a fresh, migrated SQLite database closed at test cleanup.
func New(t testing.TB) *database.DB {
	t.Helper()

	db, err := database.New(database.SQLite, MemoryDSN)
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate(context.Background()))

	return db
}
