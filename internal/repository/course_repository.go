package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// CourseRepository reads courses (materias).
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// MapByIDs returns the courses for the given ids keyed by id.
func (r *CourseRepository) MapByIDs(ctx context.Context, ids []string) (map[string]models.Course, error) {
	if len(ids) == 0 {
		return map[string]models.Course{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, is_academy, exam_mode FROM courses WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("build course query: %w", err)
	}
	query = r.db.Rebind(query)

	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}

	result := make(map[string]models.Course, len(courses))
	for _, course := range courses {
		result[course.ID] = course
	}
	return result, nil
}

// ListCourseIDsTaught returns the distinct course ids a program teaches
// in a period. This is the selector regeneration and bulk transitions
// operate on.
func (r *CourseRepository) ListCourseIDsTaught(ctx context.Context, programID, periodID string) ([]string, error) {
	const query = `
SELECT DISTINCT tr.course_id
FROM teaching_records tr
JOIN groups g ON g.id = tr.group_id
WHERE g.program_id = $1 AND tr.period_id = $2
ORDER BY tr.course_id`
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, programID, periodID); err != nil {
		return nil, fmt.Errorf("list taught course ids: %w", err)
	}
	return ids, nil
}
