package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrPlanNotFound = errors.New("practice plan not found")
)

// PracticePlanRepository is append-only: plans are read-only after creation.
type PracticePlanRepository interface {
	Create(plan *model.PracticePlan) error
	ByID(userID, planID string) (*model.PracticePlan, error)
	Plans(userID string) ([]*model.PracticePlan, error)
}

type practicePlanRepository struct {
	db *sqlx.DB
}

func NewPracticePlanRepository(db *sqlx.DB) PracticePlanRepository {
	return &practicePlanRepository{db: db}
}

// planRow carries the raw sessions JSON alongside the plan columns.
type planRow struct {
	model.PracticePlan
	SessionsJSON string `db:"sessions"`
}

func (row *planRow) decode() (*model.PracticePlan, error) {
	plan := row.PracticePlan
	err := json.Unmarshal([]byte(row.SessionsJSON), &plan.Sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan sessions: %w", err)
	}
	return &plan, nil
}

func (r *practicePlanRepository) Create(plan *model.PracticePlan) error {
	sessions := plan.Sessions
	if sessions == nil {
		sessions = []model.PlanSession{}
	}
	sessionsJSON, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to encode plan sessions: %w", err)
	}

	query := `INSERT INTO practice_plans (id, user_id, title, description, sessions, time_per_session, ai_generated, start_date, end_date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.db.Exec(query,
		plan.ID,
		plan.UserID,
		plan.Title,
		plan.Description,
		string(sessionsJSON),
		plan.TimePerSession,
		plan.AIGenerated,
		plan.StartDate,
		plan.EndDate,
		plan.CreatedAt,
	)

	return err
}

func (r *practicePlanRepository) ByID(userID, planID string) (*model.PracticePlan, error) {
	row := &planRow{}
	query := `SELECT * FROM practice_plans WHERE id = $1 AND user_id = $2`

	err := r.db.Get(row, query, planID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.decode()
}

func (r *practicePlanRepository) Plans(userID string) ([]*model.PracticePlan, error) {
	var rows []*planRow
	query := `SELECT * FROM practice_plans WHERE user_id = $1 ORDER BY created_at DESC`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	plans := make([]*model.PracticePlan, 0, len(rows))
	for _, row := range rows {
		plan, err := row.decode()
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}
