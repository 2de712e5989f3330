package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// JuryRepository reads jury permissions and persists jury assignments.
type JuryRepository struct {
	db *sqlx.DB
}

// NewJuryRepository constructs repository.
func NewJuryRepository(db *sqlx.DB) *JuryRepository {
	return &JuryRepository{db: db}
}

func (r *JuryRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListPermissionsByCourse returns jury permissions in teacher id order.
func (r *JuryRepository) ListPermissionsByCourse(ctx context.Context, courseID string) ([]models.JuryPermission, error) {
	const query = `
SELECT id, teacher_id, course_id
FROM jury_permissions
WHERE course_id = $1
ORDER BY teacher_id`
	var permissions []models.JuryPermission
	if err := r.db.SelectContext(ctx, &permissions, query, courseID); err != nil {
		return nil, fmt.Errorf("list jury permissions: %w", err)
	}
	return permissions, nil
}

// ListBookingsForWindow returns jury assignments tied to non-rejected
// requests of a (period, evaluation), with the exam schedule. Seeds the
// generator's jury load and overlap state.
func (r *JuryRepository) ListBookingsForWindow(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string) ([]models.JuryBooking, error) {
	const query = `
SELECT ja.teacher_id, er.exam_date, er.start_time, er.end_time
FROM jury_assignments ja
JOIN exam_requests er ON er.id = ja.exam_request_id
WHERE er.period_id = $1 AND er.evaluation_id = $2 AND er.status <> 2
ORDER BY ja.teacher_id, er.exam_date`
	var bookings []models.JuryBooking
	if err := sqlx.SelectContext(ctx, r.exec(exec), &bookings, query, periodID, evaluationID); err != nil {
		return nil, fmt.Errorf("list jury bookings: %w", err)
	}
	return bookings, nil
}

// CreateAssignment inserts a jury assignment.
func (r *JuryRepository) CreateAssignment(ctx context.Context, exec sqlx.ExtContext, assignment *models.JuryAssignment) error {
	const query = `
INSERT INTO jury_assignments (id, exam_request_id, teacher_id)
VALUES (:id, :exam_request_id, :teacher_id)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, assignment); err != nil {
		return fmt.Errorf("insert jury assignment: %w", err)
	}
	return nil
}
