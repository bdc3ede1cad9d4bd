package repository

import (
	"testing"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreateAndLookup(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUserRepository(conn)

	hash := "$2a$10$fakehash"
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        "golfer@example.com",
		PasswordHash: &hash,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(user))

	byID, err := repo.ByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "golfer@example.com", byID.Email)
	assert.True(t, byID.HasPassword())
	assert.False(t, byID.Disabled())

	byEmail, err := repo.ByEmail("golfer@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUserRepository(conn)

	createTestUser(t, conn, "golfer@example.com")

	err := repo.Create(&model.User{
		ID:        uuid.New().String(),
		Email:     "golfer@example.com",
		CreatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserLookup_NotFound(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUserRepository(conn)

	_, err := repo.ByID("missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.ByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserAll(t *testing.T) {
	conn := newTestDB(t)
	repo := NewUserRepository(conn)

	createTestUser(t, conn, "a@example.com")
	createTestUser(t, conn, "b@example.com")

	users, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
