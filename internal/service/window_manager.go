package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
	appErrors "github.com/unsis-dev/exam-calendar-api/pkg/errors"
)

type windowStore interface {
	FindByPeriodEvaluation(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string) (*models.ApplicationWindow, error)
	Create(ctx context.Context, exec sqlx.ExtContext, window *models.ApplicationWindow) error
	UpdateFirstDate(ctx context.Context, exec sqlx.ExtContext, id string, firstDate time.Time) error
	UpdateLastDate(ctx context.Context, exec sqlx.ExtContext, id string, lastDate time.Time) error
}

// WindowManager creates and grows application windows. Windows only
// ever widen: firstDate moves earlier, lastDate moves later.
type WindowManager struct {
	windows     windowStore
	defaultDays int
	logger      *zap.Logger
}

// NewWindowManager wires the manager. defaultDays is the span of a
// freshly created window.
func NewWindowManager(windows windowStore, defaultDays int, logger *zap.Logger) *WindowManager {
	if defaultDays <= 0 {
		defaultDays = 21
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WindowManager{windows: windows, defaultDays: defaultDays, logger: logger}
}

// Ensure returns the window for (period, evaluation), creating it with
// the default span when absent and pulling firstDate earlier when the
// caller starts before the stored one.
func (m *WindowManager) Ensure(ctx context.Context, exec sqlx.ExtContext, periodID, evaluationID string, firstDate time.Time) (*models.ApplicationWindow, error) {
	window, err := m.windows.FindByPeriodEvaluation(ctx, exec, periodID, evaluationID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application window")
		}

		window = &models.ApplicationWindow{
			ID:           windowID(periodID, evaluationID),
			PeriodID:     periodID,
			EvaluationID: evaluationID,
			FirstDate:    firstDate,
			LastDate:     firstDate.AddDate(0, 0, m.defaultDays),
		}
		if err := m.windows.Create(ctx, exec, window); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create application window")
		}
		m.logger.Info("application window created",
			zap.String("window_id", window.ID),
			zap.Time("first_date", window.FirstDate),
			zap.Time("last_date", window.LastDate))
		return window, nil
	}

	if firstDate.Before(window.FirstDate) {
		if err := m.windows.UpdateFirstDate(ctx, exec, window.ID, firstDate); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to widen application window")
		}
		window.FirstDate = firstDate
	}
	return window, nil
}

// ExtendIfNeeded grows lastDate to cover neededLastDate. Never shrinks.
func (m *WindowManager) ExtendIfNeeded(ctx context.Context, exec sqlx.ExtContext, window *models.ApplicationWindow, neededLastDate time.Time) error {
	if !neededLastDate.After(window.LastDate) {
		return nil
	}
	if err := m.windows.UpdateLastDate(ctx, exec, window.ID, neededLastDate); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to extend application window")
	}
	m.logger.Info("application window extended",
		zap.String("window_id", window.ID),
		zap.Time("last_date", neededLastDate))
	window.LastDate = neededLastDate
	return nil
}

// windowID keeps the legacy "VENT-" identifier format, clipped to the
// 20-byte identifier cap.
func windowID(periodID, evaluationID string) string {
	id := fmt.Sprintf("VENT-%s-%s", periodID, evaluationID)
	if len(id) > 20 {
		return id[:20]
	}
	return id
}
