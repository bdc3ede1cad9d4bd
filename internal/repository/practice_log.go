package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golfimprover/golfimprover/internal/model"
	"github.com/jmoiron/sqlx"
)

// PracticeLogRepository is append-only: logs are immutable once written.
type PracticeLogRepository interface {
	Create(log *model.PracticeLog) error
	Logs(userID string) ([]*model.PracticeLog, error)
	LogsBetween(userID string, from, to time.Time) ([]*model.PracticeLog, error)
}

type practiceLogRepository struct {
	db *sqlx.DB
}

func NewPracticeLogRepository(db *sqlx.DB) PracticeLogRepository {
	return &practiceLogRepository{db: db}
}

type logRow struct {
	model.PracticeLog
	DrillsJSON     *string `db:"drills"`
	CategoriesJSON *string `db:"categories"`
}

func (row *logRow) decode() (*model.PracticeLog, error) {
	log := row.PracticeLog
	if row.DrillsJSON != nil {
		err := json.Unmarshal([]byte(*row.DrillsJSON), &log.Drills)
		if err != nil {
			return nil, fmt.Errorf("failed to decode log drills: %w", err)
		}
	}
	if row.CategoriesJSON != nil {
		err := json.Unmarshal([]byte(*row.CategoriesJSON), &log.Categories)
		if err != nil {
			return nil, fmt.Errorf("failed to decode log categories: %w", err)
		}
	}
	return &log, nil
}

func encodeJSON(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func (r *practiceLogRepository) Create(log *model.PracticeLog) error {
	var drillsJSON, categoriesJSON *string
	var err error

	if log.Drills != nil {
		drillsJSON, err = encodeJSON(log.Drills)
		if err != nil {
			return fmt.Errorf("failed to encode log drills: %w", err)
		}
	}
	if log.Categories != nil {
		categoriesJSON, err = encodeJSON(log.Categories)
		if err != nil {
			return fmt.Errorf("failed to encode log categories: %w", err)
		}
	}

	query := `INSERT INTO practice_logs (id, user_id, type, session_title, notes, rating, duration, drills, categories, plan_id, date, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err = r.db.Exec(query,
		log.ID,
		log.UserID,
		log.Type,
		log.SessionTitle,
		log.Notes,
		log.Rating,
		log.Duration,
		drillsJSON,
		categoriesJSON,
		log.PlanID,
		log.Date,
		log.CreatedAt,
	)

	return err
}

func (r *practiceLogRepository) Logs(userID string) ([]*model.PracticeLog, error) {
	var rows []*logRow
	query := `SELECT * FROM practice_logs WHERE user_id = $1 ORDER BY date DESC`

	err := r.db.Select(&rows, query, userID)
	if err != nil {
		return nil, err
	}

	return decodeLogs(rows)
}

// LogsBetween returns logs with date in [from, to], newest first. Used for
// monthly score suggestions.
func (r *practiceLogRepository) LogsBetween(userID string, from, to time.Time) ([]*model.PracticeLog, error) {
	var rows []*logRow
	query := `SELECT * FROM practice_logs WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC`

	err := r.db.Select(&rows, query, userID, from, to)
	if err != nil {
		return nil, err
	}

	return decodeLogs(rows)
}

func decodeLogs(rows []*logRow) ([]*model.PracticeLog, error) {
	logs := make([]*model.PracticeLog, 0, len(rows))
	for _, row := range rows {
		log, err := row.decode()
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}
