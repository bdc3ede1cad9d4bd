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
	ErrRecapNotFound = errors.New("monthly recap not found")
)

type RecapRepository interface {
	Upsert(recap *model.MonthlyRecap) error
	ByMonth(userID, month string) (*model.MonthlyRecap, error)
	Recaps(userID string, limit int) ([]*model.MonthlyRecap, error)
	UpdateSuggestedScores(userID, month string, scores model.EffortScores) error
}

type recapRepository struct {
	db *sqlx.DB
}

func NewRecapRepository(db *sqlx.DB) RecapRepository {
	return &recapRepository{db: db}
}

type recapRow struct {
	model.MonthlyRecap
	EffortJSON    string  `db:"effort_scores"`
	SuggestedJSON *string `db:"auto_suggested_scores"`
}

func (row *recapRow) decode() (*model.MonthlyRecap, error) {
	recap := row.MonthlyRecap
	err := json.Unmarshal([]byte(row.EffortJSON), &recap.EffortScores)
	if err != nil {
		return nil, fmt.Errorf("failed to decode effort scores: %w", err)
	}
	if row.SuggestedJSON != nil {
		scores := model.EffortScores{}
		err = json.Unmarshal([]byte(*row.SuggestedJSON), &scores)
		if err != nil {
			return nil, fmt.Errorf("failed to decode suggested scores: %w", err)
		}
		recap.AutoSuggestedScores = &scores
	}
	return &recap, nil
}

// Upsert writes the recap for (user, month) as a single conditional write.
// The UNIQUE(user_id, month) constraint makes one-recap-per-month a database
// invariant instead of a check-then-act race: concurrent writers for the same
// month converge on one row. Empty notes and absent suggested scores never
// overwrite existing values.
func (r *recapRepository) Upsert(recap *model.MonthlyRecap) error {
	effortJSON, err := json.Marshal(recap.EffortScores)
	if err != nil {
		return fmt.Errorf("failed to encode effort scores: %w", err)
	}

	var suggestedJSON *string
	if recap.AutoSuggestedScores != nil {
		b, err := json.Marshal(recap.AutoSuggestedScores)
		if err != nil {
			return fmt.Errorf("failed to encode suggested scores: %w", err)
		}
		s := string(b)
		suggestedJSON = &s
	}

	query := `INSERT INTO monthly_recaps (id, user_id, month, effort_scores, auto_suggested_scores, handicap_start, handicap_end, notes, auto_generated, user_reviewed, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (user_id, month) DO UPDATE SET
	              effort_scores = excluded.effort_scores,
	              auto_suggested_scores = COALESCE(excluded.auto_suggested_scores, monthly_recaps.auto_suggested_scores),
	              handicap_start = excluded.handicap_start,
	              handicap_end = excluded.handicap_end,
	              notes = CASE WHEN excluded.notes != '' THEN excluded.notes ELSE monthly_recaps.notes END,
	              auto_generated = excluded.auto_generated,
	              user_reviewed = excluded.user_reviewed`

	_, err = r.db.Exec(query,
		recap.ID,
		recap.UserID,
		recap.Month,
		string(effortJSON),
		suggestedJSON,
		recap.HandicapStart,
		recap.HandicapEnd,
		recap.Notes,
		recap.AutoGenerated,
		recap.UserReviewed,
		recap.CreatedAt,
	)

	return err
}

func (r *recapRepository) ByMonth(userID, month string) (*model.MonthlyRecap, error) {
	row := &recapRow{}
	query := `SELECT * FROM monthly_recaps WHERE user_id = $1 AND month = $2`

	err := r.db.Get(row, query, userID, month)
	if err == sql.ErrNoRows {
		return nil, ErrRecapNotFound
	}
	if err != nil {
		return nil, err
	}

	return row.decode()
}

func (r *recapRepository) Recaps(userID string, limit int) ([]*model.MonthlyRecap, error) {
	var rows []*recapRow
	query := `SELECT * FROM monthly_recaps WHERE user_id = $1 ORDER BY month DESC, created_at DESC LIMIT $2`

	err := r.db.Select(&rows, query, userID, limit)
	if err != nil {
		return nil, err
	}

	recaps := make([]*model.MonthlyRecap, 0, len(rows))
	for _, row := range rows {
		recap, err := row.decode()
		if err != nil {
			return nil, err
		}
		recaps = append(recaps, recap)
	}

	return recaps, nil
}

// UpdateSuggestedScores refreshes only the auto-suggested scores of an existing
// recap, used when a recap is manually regenerated for a month that already has
// one.
func (r *recapRepository) UpdateSuggestedScores(userID, month string, scores model.EffortScores) error {
	b, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to encode suggested scores: %w", err)
	}

	query := `UPDATE monthly_recaps SET auto_suggested_scores = $1 WHERE user_id = $2 AND month = $3`
	result, err := r.db.Exec(query, string(b), userID, month)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrRecapNotFound
	}

	return nil
}
