package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// ProgramRepository reads programs and their groups.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs repository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// FindByID loads a program by its identifier.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	const query = `SELECT id, name FROM programs WHERE id = $1`
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}

// ListGroups returns the groups owned by a program ordered by id.
func (r *ProgramRepository) ListGroups(ctx context.Context, programID string) ([]models.Group, error) {
	const query = `SELECT id, name, headcount, program_id FROM groups WHERE program_id = $1 ORDER BY id`
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, programID); err != nil {
		return nil, fmt.Errorf("list program groups: %w", err)
	}
	return groups, nil
}
