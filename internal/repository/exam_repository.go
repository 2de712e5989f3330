package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// ExamRepository persists exam requests and their dependent rows.
type ExamRepository struct {
	db *sqlx.DB
}

// NewExamRepository constructs repository.
func NewExamRepository(db *sqlx.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

func (r *ExamRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts an exam request.
func (r *ExamRepository) Create(ctx context.Context, exec sqlx.ExtContext, request *models.ExamRequest) error {
	const query = `
INSERT INTO exam_requests (id, period_id, evaluation_id, course_id, exam_date, start_time, end_time, status, rejection_reason, manually_edited)
VALUES (:id, :period_id, :evaluation_id, :course_id, :exam_date, :start_time, :end_time, :status, :rejection_reason, :manually_edited)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, request); err != nil {
		return fmt.Errorf("insert exam request: %w", err)
	}
	return nil
}

// Delete removes a single request and its dependents. Used to unwind a
// request whose room pick failed mid-generation.
func (r *ExamRepository) Delete(ctx context.Context, exec sqlx.ExtContext, id string) error {
	return r.DeleteCascade(ctx, exec, []string{id})
}

// CreateGroup inserts an exam-group link.
func (r *ExamRepository) CreateGroup(ctx context.Context, exec sqlx.ExtContext, group *models.ExamGroup) error {
	const query = `
INSERT INTO exam_groups (id, exam_request_id, group_id)
VALUES (:id, :exam_request_id, :group_id)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, group); err != nil {
		return fmt.Errorf("insert exam group: %w", err)
	}
	return nil
}

// CreateRoomAssignment inserts a room assignment.
func (r *ExamRepository) CreateRoomAssignment(ctx context.Context, exec sqlx.ExtContext, assignment *models.RoomAssignment) error {
	const query = `
INSERT INTO room_assignments (id, exam_request_id, room_id, invigilator_teacher_id)
VALUES (:id, :exam_request_id, :room_id, :invigilator_teacher_id)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, assignment); err != nil {
		return fmt.Errorf("insert room assignment: %w", err)
	}
	return nil
}

// ListRoomBookingsBetween returns room assignments of non-rejected
// requests whose exam date falls in [first, last]. Bookings from every
// program and evaluation count, so concurrent calendars collide in
// memory instead of double-booking a room.
func (r *ExamRepository) ListRoomBookingsBetween(ctx context.Context, exec sqlx.ExtContext, first, last time.Time) ([]models.RoomBooking, error) {
	const query = `
SELECT ra.exam_request_id, ra.room_id, er.exam_date, er.start_time, er.end_time, ra.invigilator_teacher_id
FROM room_assignments ra
JOIN exam_requests er ON er.id = ra.exam_request_id
WHERE er.exam_date BETWEEN $1 AND $2 AND er.status <> 2
ORDER BY er.exam_date, er.start_time, ra.room_id`
	var bookings []models.RoomBooking
	if err := sqlx.SelectContext(ctx, r.exec(exec), &bookings, query, first, last); err != nil {
		return nil, fmt.Errorf("list room bookings: %w", err)
	}
	return bookings, nil
}

// ListRequestIDsForSelector returns, with row locks, the requests of a
// (period, evaluation) whose course belongs to the caller's program.
// This is the exact set regeneration and bulk transitions act on.
func (r *ExamRepository) ListRequestIDsForSelector(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string, courseIDs []string) ([]string, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
SELECT id FROM exam_requests
WHERE period_id = ? AND evaluation_id = ? AND course_id IN (?)
ORDER BY id
FOR UPDATE`, periodID, evaluationID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("build selector query: %w", err)
	}

	target := r.exec(exec)
	query = target.Rebind(query)

	var ids []string
	if err := sqlx.SelectContext(ctx, target, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("select exam requests for update: %w", err)
	}
	return ids, nil
}

// DeleteCascade removes requests with their exam groups, room and jury
// assignments. Dependents go first so the foreign keys hold throughout.
func (r *ExamRepository) DeleteCascade(ctx context.Context, exec sqlx.ExtContext, requestIDs []string) error {
	if len(requestIDs) == 0 {
		return nil
	}

	target := r.exec(exec)
	statements := []string{
		`DELETE FROM exam_groups WHERE exam_request_id IN (?)`,
		`DELETE FROM room_assignments WHERE exam_request_id IN (?)`,
		`DELETE FROM jury_assignments WHERE exam_request_id IN (?)`,
		`DELETE FROM exam_requests WHERE id IN (?)`,
	}
	for _, stmt := range statements {
		query, args, err := sqlx.In(stmt, requestIDs)
		if err != nil {
			return fmt.Errorf("build cascade delete: %w", err)
		}
		if _, err := target.ExecContext(ctx, target.Rebind(query), args...); err != nil {
			return fmt.Errorf("cascade delete exam requests: %w", err)
		}
	}
	return nil
}

// BulkSetStatus transitions every selected request to the given status.
// The rejection reason is cleared unless the transition is a rejection.
func (r *ExamRepository) BulkSetStatus(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string, courseIDs []string, status models.ExamStatus, reason *string) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`
UPDATE exam_requests
SET status = ?, rejection_reason = ?
WHERE period_id = ? AND evaluation_id = ? AND course_id IN (?)`,
		status, reason, periodID, evaluationID, courseIDs)
	if err != nil {
		return 0, fmt.Errorf("build bulk status query: %w", err)
	}

	target := r.exec(exec)
	result, err := target.ExecContext(ctx, target.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("bulk update exam status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("exam status rows affected: %w", err)
	}
	return affected, nil
}

// UpdateStatus reviews a single request.
func (r *ExamRepository) UpdateStatus(ctx context.Context, id string, status models.ExamStatus, reason *string) error {
	const query = `UPDATE exam_requests SET status = $1, rejection_reason = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, status, reason, id)
	if err != nil {
		return fmt.Errorf("update exam status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("exam status rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountForSelector reports how many requests the selector matches.
func (r *ExamRepository) CountForSelector(ctx context.Context, periodID, evaluationID string, courseIDs []string) (int, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`
SELECT COUNT(*) FROM exam_requests
WHERE period_id = ? AND evaluation_id = ? AND course_id IN (?)`, periodID, evaluationID, courseIDs)
	if err != nil {
		return 0, fmt.Errorf("build selector count: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("count exam requests: %w", err)
	}
	return count, nil
}

// ListCalendarRows expands (request, group) pairs for a program's
// calendar. The displayed teacher prefers the class teacher of the
// (course, group, period) and falls back to the invigilator.
func (r *ExamRepository) ListCalendarRows(ctx context.Context, programID, periodID, evaluationID string) ([]models.CalendarRow, error) {
	const query = `
SELECT er.id AS exam_request_id,
       er.course_id,
       c.name AS course_name,
       g.id AS group_id,
       g.name AS group_name,
       COALESCE(
           (SELECT t.name FROM teaching_records tr
            JOIN teachers t ON t.id = tr.teacher_id
            WHERE tr.course_id = er.course_id AND tr.group_id = g.id AND tr.period_id = er.period_id
            ORDER BY tr.day_of_week, tr.start_time LIMIT 1),
           (SELECT t.name FROM room_assignments ra2
            JOIN teachers t ON t.id = ra2.invigilator_teacher_id
            WHERE ra2.exam_request_id = er.id LIMIT 1),
           '') AS teacher_name,
       er.exam_date,
       er.start_time,
       er.end_time,
       COALESCE(rm.name, '') AS room_name,
       COALESCE(rm.id, '') AS room_id,
       er.status,
       ap.display_name AS period_name,
       ek.name AS evaluation_name,
       er.rejection_reason
FROM exam_requests er
JOIN exam_groups eg ON eg.exam_request_id = er.id
JOIN groups g ON g.id = eg.group_id
JOIN courses c ON c.id = er.course_id
JOIN academic_periods ap ON ap.id = er.period_id
JOIN evaluation_kinds ek ON ek.id = er.evaluation_id
LEFT JOIN room_assignments ra ON ra.exam_request_id = er.id
LEFT JOIN rooms rm ON rm.id = ra.room_id
WHERE g.program_id = $1 AND er.period_id = $2 AND er.evaluation_id = $3
ORDER BY er.exam_date, er.start_time, c.id, g.id`
	var rows []models.CalendarRow
	if err := r.db.SelectContext(ctx, &rows, query, programID, periodID, evaluationID); err != nil {
		return nil, fmt.Errorf("list calendar rows: %w", err)
	}
	return rows, nil
}
