package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// PeriodRepository reads academic periods and evaluation kinds.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// FindByID loads a period by its identifier.
func (r *PeriodRepository) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	const query = `SELECT id, display_name FROM academic_periods WHERE id = $1`
	var period models.AcademicPeriod
	if err := r.db.GetContext(ctx, &period, query, id); err != nil {
		return nil, err
	}
	return &period, nil
}

// List returns every known academic period ordered by id.
func (r *PeriodRepository) List(ctx context.Context) ([]models.AcademicPeriod, error) {
	const query = `SELECT id, display_name FROM academic_periods ORDER BY id`
	var periods []models.AcademicPeriod
	if err := r.db.SelectContext(ctx, &periods, query); err != nil {
		return nil, fmt.Errorf("list academic periods: %w", err)
	}
	return periods, nil
}

// FindEvaluation loads an evaluation kind by its identifier.
func (r *PeriodRepository) FindEvaluation(ctx context.Context, id string) (*models.EvaluationKind, error) {
	const query = `SELECT id, name FROM evaluation_kinds WHERE id = $1`
	var kind models.EvaluationKind
	if err := r.db.GetContext(ctx, &kind, query, id); err != nil {
		return nil, err
	}
	return &kind, nil
}
