package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

func newWindowRepoMock(t *testing.T) (*WindowRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewWindowRepository(sqlxDB), mock, func() { db.Close() }
}

func TestWindowRepositoryFindByPeriodEvaluation(t *testing.T) {
	repo, mock, closeFn := newWindowRepoMock(t)
	defer closeFn()

	first := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)
	last := time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM application_windows")).
		WithArgs("2025-2", "EV-P1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "period_id", "evaluation_id", "first_date", "last_date"}).
			AddRow("VENT-2025-2-EV-P1", "2025-2", "EV-P1", first, last))

	window, err := repo.FindByPeriodEvaluation(context.Background(), nil, "2025-2", "EV-P1")
	require.NoError(t, err)
	assert.Equal(t, "VENT-2025-2-EV-P1", window.ID)
	assert.Equal(t, first, window.FirstDate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWindowRepositoryFindMissing(t *testing.T) {
	repo, mock, closeFn := newWindowRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("FROM application_windows")).
		WithArgs("2025-2", "EV-P9").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByPeriodEvaluation(context.Background(), nil, "2025-2", "EV-P9")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestWindowRepositoryCreate(t *testing.T) {
	repo, mock, closeFn := newWindowRepoMock(t)
	defer closeFn()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO application_windows")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), nil, &models.ApplicationWindow{
		ID:           "VENT-2025-2-EV-P1",
		PeriodID:     "2025-2",
		EvaluationID: "EV-P1",
		FirstDate:    time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC),
		LastDate:     time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWindowRepositoryUpdateLastDate(t *testing.T) {
	repo, mock, closeFn := newWindowRepoMock(t)
	defer closeFn()

	needed := time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE application_windows SET last_date = $1 WHERE id = $2")).
		WithArgs(needed, "VENT-2025-2-EV-P1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastDate(context.Background(), nil, "VENT-2025-2-EV-P1", needed))

	// Zero affected rows surface as sql.ErrNoRows.
	mock.ExpectExec(regexp.QuoteMeta("UPDATE application_windows SET first_date = $1 WHERE id = $2")).
		WithArgs(needed, "VENT-MISSING").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateFirstDate(context.Background(), nil, "VENT-MISSING", needed)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
