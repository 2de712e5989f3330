package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

func newJuryRepoMock(t *testing.T) (*JuryRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewJuryRepository(sqlxDB), mock, func() { db.Close() }
}

func TestJuryRepositoryListPermissionsByCourse(t *testing.T) {
	repo, mock, closeFn := newJuryRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("FROM jury_permissions")).
		WithArgs("CE-101").
		WillReturnRows(sqlmock.NewRows([]string{"id", "teacher_id", "course_id"}).
			AddRow("JP-1", "T-3", "CE-101").
			AddRow("JP-2", "T-9", "CE-101"))

	permissions, err := repo.ListPermissionsByCourse(context.Background(), "CE-101")
	require.NoError(t, err)
	require.Len(t, permissions, 2)
	assert.Equal(t, "T-3", permissions[0].TeacherID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJuryRepositoryListBookingsForWindow(t *testing.T) {
	repo, mock, closeFn := newJuryRepoMock(t)
	defer closeFn()

	examDate := time.Date(2025, 11, 17, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM jury_assignments ja")).
		WithArgs("2025-2", "EV-P1").
		WillReturnRows(sqlmock.NewRows([]string{"teacher_id", "exam_date", "start_time", "end_time"}).
			AddRow("T-9", examDate, "10:00:00", "12:00:00"))

	bookings, err := repo.ListBookingsForWindow(context.Background(), nil, "2025-2", "EV-P1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "T-9", bookings[0].TeacherID)
	assert.Equal(t, models.ClockTime(600), bookings[0].StartTime)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJuryRepositoryCreateAssignment(t *testing.T) {
	repo, mock, closeFn := newJuryRepoMock(t)
	defer closeFn()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO jury_assignments")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateAssignment(context.Background(), nil, &models.JuryAssignment{
		ID:            "ES1A2B3C4D5E6F7G8H",
		ExamRequestID: "EX-1",
		TeacherID:     "T-9",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
