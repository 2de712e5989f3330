package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
)

type periodReaderStub struct {
	byID map[string]models.AcademicPeriod
	all  []models.AcademicPeriod
}

func (s *periodReaderStub) FindByID(_ context.Context, id string) (*models.AcademicPeriod, error) {
	if period, ok := s.byID[id]; ok {
		return &period, nil
	}
	return nil, sql.ErrNoRows
}

func (s *periodReaderStub) List(_ context.Context) ([]models.AcademicPeriod, error) {
	return s.all, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodCandidatesByMonthBucket(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		candidates []string
		label      string
	}{
		{"october through december", day(2025, time.November, 17), []string{"2025-2", "2526A"}, "2025-2026A"},
		{"january and february", day(2026, time.January, 15), []string{"2025-2", "2026-1", "2526A"}, "2025-2026A"},
		{"march through july", day(2026, time.April, 10), []string{"2026-1", "26B"}, "2026B"},
		{"august and september", day(2025, time.September, 1), []string{"2025-2", "25B"}, "2025B"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			candidates, label := periodCandidates(tc.date)
			assert.Equal(t, tc.candidates, candidates)
			assert.Equal(t, tc.label, label)
		})
	}
}

func TestPeriodResolverDirectHit(t *testing.T) {
	resolver := NewPeriodResolver(&periodReaderStub{
		byID: map[string]models.AcademicPeriod{
			"2025-2": {ID: "2025-2", DisplayName: "Agosto-Diciembre 2025"},
		},
	}, nil)

	resolved, err := resolver.Resolve(context.Background(), day(2025, time.November, 17))
	require.NoError(t, err)
	assert.Equal(t, "2025-2", resolved.Period.ID)
	assert.Equal(t, "2025-2026A", resolved.SemesterLabel)
}

func TestPeriodResolverShortFormFallsThrough(t *testing.T) {
	// First candidate missing, second short-form candidate present.
	resolver := NewPeriodResolver(&periodReaderStub{
		byID: map[string]models.AcademicPeriod{
			"2526A": {ID: "2526A", DisplayName: "Semestre A 2025-2026"},
		},
	}, nil)

	resolved, err := resolver.Resolve(context.Background(), day(2025, time.December, 1))
	require.NoError(t, err)
	assert.Equal(t, "2526A", resolved.Period.ID)
}

func TestPeriodResolverFuzzyScan(t *testing.T) {
	resolver := NewPeriodResolver(&periodReaderStub{
		all: []models.AcademicPeriod{
			{ID: "PER-2024-B", DisplayName: "Enero-Junio 2024"},
			{ID: "PER-2026-B", DisplayName: "Enero-Junio 2026"},
		},
	}, nil)

	resolved, err := resolver.Resolve(context.Background(), day(2026, time.April, 10))
	require.NoError(t, err)
	assert.Equal(t, "PER-2026-B", resolved.Period.ID)
	assert.Equal(t, "2026B", resolved.SemesterLabel)
}

func TestPeriodResolverNotFound(t *testing.T) {
	resolver := NewPeriodResolver(&periodReaderStub{}, nil)

	_, err := resolver.Resolve(context.Background(), day(2026, time.April, 10))
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPeriodNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "2026-04-10")
}
