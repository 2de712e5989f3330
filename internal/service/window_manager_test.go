package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

type windowStoreStub struct {
	existing *models.ApplicationWindow

	created      *models.ApplicationWindow
	firstUpdated *time.Time
	lastUpdated  *time.Time
}

func (s *windowStoreStub) FindByPeriodEvaluation(_ context.Context, _ sqlx.ExtContext, _, _ string) (*models.ApplicationWindow, error) {
	if s.existing == nil {
		return nil, sql.ErrNoRows
	}
	window := *s.existing
	return &window, nil
}

func (s *windowStoreStub) Create(_ context.Context, _ sqlx.ExtContext, window *models.ApplicationWindow) error {
	s.created = window
	return nil
}

func (s *windowStoreStub) UpdateFirstDate(_ context.Context, _ sqlx.ExtContext, _ string, firstDate time.Time) error {
	s.firstUpdated = &firstDate
	return nil
}

func (s *windowStoreStub) UpdateLastDate(_ context.Context, _ sqlx.ExtContext, _ string, lastDate time.Time) error {
	s.lastUpdated = &lastDate
	return nil
}

func TestWindowManagerEnsureCreatesWithDefaultSpan(t *testing.T) {
	store := &windowStoreStub{}
	manager := NewWindowManager(store, 21, nil)

	start := day(2025, time.November, 17)
	window, err := manager.Ensure(context.Background(), nil, "2025-2", "EV-P1", start)
	require.NoError(t, err)
	require.NotNil(t, store.created)

	assert.Equal(t, "VENT-2025-2-EV-P1", window.ID)
	assert.Equal(t, start, window.FirstDate)
	assert.Equal(t, start.AddDate(0, 0, 21), window.LastDate)
}

func TestWindowManagerEnsureWidensFirstDateOnly(t *testing.T) {
	existing := testWindow(day(2025, time.November, 17), day(2025, time.December, 8))

	t.Run("earlier start pulls first date back", func(t *testing.T) {
		store := &windowStoreStub{existing: existing}
		manager := NewWindowManager(store, 21, nil)

		window, err := manager.Ensure(context.Background(), nil, "2025-2", "EV-P1", day(2025, time.November, 10))
		require.NoError(t, err)
		require.NotNil(t, store.firstUpdated)
		assert.Equal(t, day(2025, time.November, 10), window.FirstDate)
	})

	t.Run("later start leaves the window untouched", func(t *testing.T) {
		store := &windowStoreStub{existing: existing}
		manager := NewWindowManager(store, 21, nil)

		window, err := manager.Ensure(context.Background(), nil, "2025-2", "EV-P1", day(2025, time.November, 24))
		require.NoError(t, err)
		assert.Nil(t, store.firstUpdated)
		assert.Equal(t, day(2025, time.November, 17), window.FirstDate)
	})
}

func TestWindowManagerExtendIfNeeded(t *testing.T) {
	store := &windowStoreStub{}
	manager := NewWindowManager(store, 21, nil)
	window := testWindow(day(2025, time.November, 17), day(2025, time.December, 8))

	// Dates inside the window never shrink it.
	require.NoError(t, manager.ExtendIfNeeded(context.Background(), nil, window, day(2025, time.December, 1)))
	assert.Nil(t, store.lastUpdated)
	assert.Equal(t, day(2025, time.December, 8), window.LastDate)

	require.NoError(t, manager.ExtendIfNeeded(context.Background(), nil, window, day(2025, time.December, 10)))
	require.NotNil(t, store.lastUpdated)
	assert.Equal(t, day(2025, time.December, 10), window.LastDate)
}

func TestWindowIDClippedToIdentifierCap(t *testing.T) {
	id := windowID("2025-2026-SEMESTRE-A", "EVALUACION-PARCIAL-1")
	assert.Len(t, id, 20)
	assert.Equal(t, "VENT-", id[:5])
}
