package repository

import (
	"errors"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

// GoalRepository is append-only: goals have no edit or delete path.
type GoalRepository interface {
	Create(goal *model.Goal) error
	Goals(userID string) ([]*model.Goal, error)
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, category, current_value, target_value, target_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Category,
		goal.CurrentValue,
		goal.TargetValue,
		goal.TargetDate,
		goal.CreatedAt,
	)

	return err
}

func (r *goalRepository) Goals(userID string) ([]*model.Goal, error) {
	var goals []*model.Goal
	query := `SELECT * FROM goals WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}
