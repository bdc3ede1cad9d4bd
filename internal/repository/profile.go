package repository

import (
	"database/sql"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

// ProfilePatch carries the fields a profile update may change. Nil fields are
// left untouched, so an absent value never overwrites existing data.
type ProfilePatch struct {
	Name                 *string
	Handicap             *float64
	HasCompletedTutorial *bool
}

type ProfileRepository interface {
	Create(profile *model.Profile) error
	ByUserID(userID string) (*model.Profile, error)
	Upsert(userID, id string, patch ProfilePatch) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(profile *model.Profile) error {
	query := `INSERT INTO profiles (id, user_id, name, handicap, has_completed_tutorial, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(query,
		profile.ID,
		profile.UserID,
		profile.Name,
		profile.Handicap,
		profile.HasCompletedTutorial,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	return err
}

func (r *profileRepository) ByUserID(userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	query := `SELECT * FROM profiles WHERE user_id = $1`

	err := r.db.Get(profile, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrProfileNotFound
	}

	return profile, err
}

// Upsert creates the profile if absent, seeding created_at, otherwise merges
// only the supplied patch fields. The merge happens in a single conditional
// write, so there is no read-then-write window.
func (r *profileRepository) Upsert(userID, id string, patch ProfilePatch) error {
	now := time.Now()
	query := `INSERT INTO profiles (id, user_id, name, handicap, has_completed_tutorial, created_at, updated_at)
	          VALUES ($1, $2, COALESCE($3, ''), $4, COALESCE($5, FALSE), $6, $6)
	          ON CONFLICT (user_id) DO UPDATE SET
	              name = COALESCE($3, profiles.name),
	              handicap = COALESCE($4, profiles.handicap),
	              has_completed_tutorial = COALESCE($5, profiles.has_completed_tutorial),
	              updated_at = $6`

	_, err := r.db.Exec(query, id, userID, patch.Name, patch.Handicap, patch.HasCompletedTutorial, now)
	return err
}
