package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/db"
	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway sqlite database with the real migrations applied.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	err = db.RunMigrations(conn.DB, "sqlite")
	require.NoError(t, err)

	return conn
}

func createTestUser(t *testing.T, conn *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	err := NewUserRepository(conn).Create(user)
	require.NoError(t, err)

	return user
}
