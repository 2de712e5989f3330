package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// ScheduleRepository reads weekly teaching records.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const teachingRecordColumns = `tr.id, tr.period_id, tr.course_id, tr.group_id, tr.teacher_id,
       tr.room_id, tr.day_of_week, tr.start_time, tr.end_time`

// ListByProgramPeriod returns the program's records for one period.
func (r *ScheduleRepository) ListByProgramPeriod(ctx context.Context, programID, periodID string) ([]models.TeachingRecord, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM teaching_records tr
JOIN groups g ON g.id = tr.group_id
WHERE g.program_id = $1 AND tr.period_id = $2
ORDER BY tr.group_id, tr.course_id, tr.day_of_week, tr.start_time`, teachingRecordColumns)

	var records []models.TeachingRecord
	if err := r.db.SelectContext(ctx, &records, query, programID, periodID); err != nil {
		return nil, fmt.Errorf("list teaching records: %w", err)
	}
	return records, nil
}

// ListByGroup returns a group's records across every period. Used to
// pick reference records when the current period snapshot misses the
// group entirely.
func (r *ScheduleRepository) ListByGroup(ctx context.Context, groupID string) ([]models.TeachingRecord, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM teaching_records tr
WHERE tr.group_id = $1
ORDER BY tr.course_id, tr.day_of_week, tr.start_time`, teachingRecordColumns)

	var records []models.TeachingRecord
	if err := r.db.SelectContext(ctx, &records, query, groupID); err != nil {
		return nil, fmt.Errorf("list group teaching records: %w", err)
	}
	return records, nil
}

// ListTeacherIDsForCourse returns teachers currently teaching a course
// in any period. Such teachers are barred from its jury.
func (r *ScheduleRepository) ListTeacherIDsForCourse(ctx context.Context, courseID string) ([]string, error) {
	const query = `SELECT DISTINCT teacher_id FROM teaching_records WHERE course_id = $1 ORDER BY teacher_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, courseID); err != nil {
		return nil, fmt.Errorf("list course teacher ids: %w", err)
	}
	return ids, nil
}
