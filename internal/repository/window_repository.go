package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// WindowRepository persists application windows.
type WindowRepository struct {
	db *sqlx.DB
}

// NewWindowRepository constructs repository.
func NewWindowRepository(db *sqlx.DB) *WindowRepository {
	return &WindowRepository{db: db}
}

func (r *WindowRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// FindByPeriodEvaluation loads the unique window for the tuple.
func (r *WindowRepository) FindByPeriodEvaluation(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string) (*models.ApplicationWindow, error) {
	const query = `
SELECT id, period_id, evaluation_id, first_date, last_date
FROM application_windows
WHERE period_id = $1 AND evaluation_id = $2`
	var window models.ApplicationWindow
	if err := sqlx.GetContext(ctx, r.exec(exec), &window, query, periodID, evaluationID); err != nil {
		return nil, err
	}
	return &window, nil
}

// Create inserts a new window.
func (r *WindowRepository) Create(ctx context.Context, exec sqlx.ExtContext, window *models.ApplicationWindow) error {
	const query = `
INSERT INTO application_windows (id, period_id, evaluation_id, first_date, last_date)
VALUES (:id, :period_id, :evaluation_id, :first_date, :last_date)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, window); err != nil {
		return fmt.Errorf("insert application window: %w", err)
	}
	return nil
}

// UpdateFirstDate moves the window start earlier.
func (r *WindowRepository) UpdateFirstDate(ctx context.Context, exec sqlx.ExtContext, id string, firstDate time.Time) error {
	return r.updateDate(ctx, exec, `UPDATE application_windows SET first_date = $1 WHERE id = $2`, id, firstDate)
}

// UpdateLastDate extends the window end.
func (r *WindowRepository) UpdateLastDate(ctx context.Context, exec sqlx.ExtContext, id string, lastDate time.Time) error {
	return r.updateDate(ctx, exec, `UPDATE application_windows SET last_date = $1 WHERE id = $2`, id, lastDate)
}

func (r *WindowRepository) updateDate(ctx context.Context, exec sqlx.ExtContext, query, id string, value time.Time) error {
	result, err := r.exec(exec).ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("update application window: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("application window rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
