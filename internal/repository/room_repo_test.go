package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newDryRunDB opens a gorm session through the postgres dialector without
// connecting: statements are built but never executed, so the generated SQL
// can be inspected.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=dryrun",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db
}

// The capacity check is a check-then-act sequence; it is only safe because
// the room read locks the row for the rest of the transaction. Pin the
// locking clause in the generated SQL so an unlocked read cannot slip back
// in unnoticed.
func TestFindByIDForUpdate_EmitsRowLock(t *testing.T) {
	db := newDryRunDB(t)

	var captured string
	err := db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	repo := NewRoomRepository(db)
	_, _ = repo.FindByIDForUpdate(context.Background(), db, 1)

	assert.Contains(t, captured, "FOR UPDATE")
	assert.Contains(t, captured, `FROM "rooms"`)
}
