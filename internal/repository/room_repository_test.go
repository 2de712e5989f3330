package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoomRepoMock(t *testing.T) (*RoomRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return NewRoomRepository(sqlxDB), mock, func() { db.Close() }
}

func TestRoomRepositoryListAvailable(t *testing.T) {
	repo, mock, closeFn := newRoomRepoMock(t)
	defer closeFn()

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN computer_labs cl ON cl.room_id = r.id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "disabled", "is_computer_lab"}).
			AddRow("A-101", "Aula 101", 40, false, false).
			AddRow("L-1", "Laboratorio 1", 30, false, true))

	rooms, err := repo.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.False(t, rooms[0].IsComputerLab)
	assert.True(t, rooms[1].IsComputerLab)
	require.NoError(t, mock.ExpectationsWereMet())
}
