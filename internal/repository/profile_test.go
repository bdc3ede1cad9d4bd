package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileUpsert_CreatesWhenMissing(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewProfileRepository(conn)

	name := "Jordan"
	err := repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{Name: &name})
	require.NoError(t, err)

	profile, err := repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", profile.Name)
	assert.Nil(t, profile.Handicap)
	assert.False(t, profile.HasCompletedTutorial)
}

// A patch only touches the fields it carries; everything else keeps its value.
func TestProfileUpsert_MergesPatch(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewProfileRepository(conn)

	name := "Jordan"
	require.NoError(t, repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{Name: &name}))

	handicap := 14.2
	require.NoError(t, repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{Handicap: &handicap}))

	profile, err := repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", profile.Name)
	require.NotNil(t, profile.Handicap)
	assert.Equal(t, 14.2, *profile.Handicap)

	done := true
	require.NoError(t, repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{HasCompletedTutorial: &done}))

	profile, err = repo.ByUserID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan", profile.Name)
	assert.Equal(t, 14.2, *profile.Handicap)
	assert.True(t, profile.HasCompletedTutorial)
}

// Upserting twice keeps a single row per user.
func TestProfileUpsert_SingleRow(t *testing.T) {
	conn := newTestDB(t)
	user := createTestUser(t, conn, "golfer@example.com")
	repo := NewProfileRepository(conn)

	name := "Jordan"
	require.NoError(t, repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{Name: &name}))
	require.NoError(t, repo.Upsert(user.ID, uuid.New().String(), ProfilePatch{Name: &name}))

	var count int
	require.NoError(t, conn.Get(&count, `SELECT COUNT(*) FROM profiles WHERE user_id = $1`, user.ID))
	assert.Equal(t, 1, count)
}

func TestProfileByUserID_NotFound(t *testing.T) {
	conn := newTestDB(t)

	_, err := NewProfileRepository(conn).ByUserID("missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
