package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

func pickerRooms() []models.Room {
	return []models.Room{
		{ID: "A-101", Name: "Aula 101", Capacity: 40},
		{ID: "A-102", Name: "Aula 102", Capacity: 25},
		{ID: "L-1", Name: "Laboratorio 1", Capacity: 30, IsComputerLab: true},
		{ID: "L-2", Name: "Laboratorio 2", Capacity: 60, IsComputerLab: true},
	}
}

func TestReservationBoardRoomOverlap(t *testing.T) {
	board := NewReservationBoard()
	date := day(2025, time.November, 17)

	board.ReserveRoom(date, "A-101", 600, 720, "EX-1")

	assert.False(t, board.RoomFree(date, "A-101", 660, 780))
	assert.True(t, board.RoomFree(date, "A-101", 720, 780))
	assert.True(t, board.RoomFree(date.AddDate(0, 0, 1), "A-101", 600, 720))
	assert.True(t, board.RoomFree(date, "A-102", 600, 720))
}

func TestReservationBoardSeeding(t *testing.T) {
	board := NewReservationBoard()
	date := day(2025, time.November, 17)

	board.SeedRoomBookings([]models.RoomBooking{
		{ExamRequestID: "EX-1", RoomID: "A-101", ExamDate: date, StartTime: 600, EndTime: 720, InvigilatorTeacherID: "T-1"},
	})
	board.SeedJuryBookings([]models.JuryBooking{
		{TeacherID: "T-2", ExamDate: date, StartTime: 600, EndTime: 720},
	})

	assert.False(t, board.RoomFree(date, "A-101", 600, 720))
	assert.False(t, board.InvigilatorFree(date, "T-1", 630, 700))
	assert.False(t, board.JuryFree(date, "T-2", 600, 720))
	assert.Equal(t, 1, board.JuryLoad("T-2"))
}

func TestPickClassRoomPrefersOwnRoom(t *testing.T) {
	picker := NewRoomPicker(NewReservationBoard(), pickerRooms(), true, nil)

	room, ok := picker.PickClassRoom("A-102", day(2025, time.November, 17), 600, 720, 20)
	require.True(t, ok)
	assert.Equal(t, "A-102", room.ID)
}

func TestPickClassRoomFallsBackWhenOwnRoomBusy(t *testing.T) {
	board := NewReservationBoard()
	date := day(2025, time.November, 17)
	board.ReserveRoom(date, "A-102", 600, 720, "EX-1")

	picker := NewRoomPicker(board, pickerRooms(), true, nil)
	room, ok := picker.PickClassRoom("A-102", date, 600, 720, 20)
	require.True(t, ok)
	assert.Equal(t, "A-101", room.ID)
}

func TestPickClassRoomTierLadder(t *testing.T) {
	picker := NewRoomPicker(NewReservationBoard(), pickerRooms(), true, nil)
	date := day(2025, time.November, 17)

	// Headcount 30: full fit needs 30, only A-101 qualifies.
	room, ok := picker.PickClassRoom("", date, 600, 720, 30)
	require.True(t, ok)
	assert.Equal(t, "A-101", room.ID)

	// Headcount 50: no classroom fully fits, 80 percent tier needs 40.
	room, ok = picker.PickClassRoom("", date, 600, 720, 50)
	require.True(t, ok)
	assert.Equal(t, "A-101", room.ID)

	// Headcount 80: only the last-resort tier places it.
	room, ok = picker.PickClassRoom("", date, 600, 720, 80)
	require.True(t, ok)
	assert.Equal(t, "A-101", room.ID)
}

func TestPickClassRoomFailsWhenEverythingBusy(t *testing.T) {
	board := NewReservationBoard()
	date := day(2025, time.November, 17)
	board.ReserveRoom(date, "A-101", 600, 720, "EX-1")
	board.ReserveRoom(date, "A-102", 600, 720, "EX-2")

	picker := NewRoomPicker(board, pickerRooms(), true, nil)
	_, ok := picker.PickClassRoom("", date, 630, 700, 20)
	assert.False(t, ok)
}

func TestPickLabCapacityBeforeHistory(t *testing.T) {
	// The group's classes met in L-1 but it only seats 30 of 50.
	history := map[string]struct{}{"L-1": {}}
	picker := NewRoomPicker(NewReservationBoard(), pickerRooms(), true, nil)

	room, ok := picker.PickLab(history, day(2025, time.November, 17), 600, 720, 50)
	require.True(t, ok)
	assert.Equal(t, "L-2", room.ID)
}

func TestPickLabPrefersKnownLab(t *testing.T) {
	history := map[string]struct{}{"L-2": {}}
	picker := NewRoomPicker(NewReservationBoard(), pickerRooms(), true, nil)

	room, ok := picker.PickLab(history, day(2025, time.November, 17), 600, 720, 20)
	require.True(t, ok)
	assert.Equal(t, "L-2", room.ID)
}

func TestPickLabIgnoresClassrooms(t *testing.T) {
	board := NewReservationBoard()
	date := day(2025, time.November, 17)
	board.ReserveRoom(date, "L-1", 600, 720, "EX-1")
	board.ReserveRoom(date, "L-2", 600, 720, "EX-2")

	picker := NewRoomPicker(board, pickerRooms(), true, nil)
	_, ok := picker.PickLab(nil, date, 600, 720, 20)
	assert.False(t, ok)
}
