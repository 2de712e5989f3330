package service

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// capacityTiers relax the headcount requirement in order: full fit,
// 80 percent fit, then any capacity as a last resort.
var capacityTiers = []float64{1.0, 0.8, 0.0}

type interval struct {
	start models.ClockTime
	end   models.ClockTime
}

type roomSlot struct {
	interval
	requestID string
}

// ReservationBoard is the in-memory reservation state of one
// generation. It is seeded from committed bookings inside the window
// and never shared between generations.
type ReservationBoard struct {
	rooms        map[string][]roomSlot // date|roomID
	invigilators map[string][]interval // date|teacherID
	juryBusy     map[string][]interval // date|teacherID
	juryLoad     map[string]int        // teacherID, window scoped
}

// NewReservationBoard builds an empty board.
func NewReservationBoard() *ReservationBoard {
	return &ReservationBoard{
		rooms:        make(map[string][]roomSlot),
		invigilators: make(map[string][]interval),
		juryBusy:     make(map[string][]interval),
		juryLoad:     make(map[string]int),
	}
}

// SeedRoomBookings loads committed room assignments, marking both the
// room and its invigilator busy.
func (b *ReservationBoard) SeedRoomBookings(bookings []models.RoomBooking) {
	for _, booking := range bookings {
		b.ReserveRoom(booking.ExamDate, booking.RoomID, booking.StartTime, booking.EndTime, booking.ExamRequestID)
		if booking.InvigilatorTeacherID != "" {
			b.ReserveInvigilator(booking.ExamDate, booking.InvigilatorTeacherID, booking.StartTime, booking.EndTime)
		}
	}
}

// SeedJuryBookings loads committed jury assignments of the window.
func (b *ReservationBoard) SeedJuryBookings(bookings []models.JuryBooking) {
	for _, booking := range bookings {
		b.ReserveJury(booking.ExamDate, booking.TeacherID, booking.StartTime, booking.EndTime)
	}
}

// RoomFree reports whether the room has no overlapping reservation at
// (date, [start, end)).
func (b *ReservationBoard) RoomFree(date time.Time, roomID string, start, end models.ClockTime) bool {
	for _, slot := range b.rooms[boardKey(date, roomID)] {
		if models.Overlaps(start, end, slot.start, slot.end) {
			return false
		}
	}
	return true
}

// ReserveRoom records a room reservation.
func (b *ReservationBoard) ReserveRoom(date time.Time, roomID string, start, end models.ClockTime, requestID string) {
	key := boardKey(date, roomID)
	b.rooms[key] = append(b.rooms[key], roomSlot{interval{start, end}, requestID})
}

// InvigilatorFree reports whether a teacher has no overlapping
// invigilation on the date.
func (b *ReservationBoard) InvigilatorFree(date time.Time, teacherID string, start, end models.ClockTime) bool {
	for _, slot := range b.invigilators[boardKey(date, teacherID)] {
		if models.Overlaps(start, end, slot.start, slot.end) {
			return false
		}
	}
	return true
}

// ReserveInvigilator records an invigilation duty.
func (b *ReservationBoard) ReserveInvigilator(date time.Time, teacherID string, start, end models.ClockTime) {
	key := boardKey(date, teacherID)
	b.invigilators[key] = append(b.invigilators[key], interval{start, end})
}

// JuryLoad returns a teacher's jury count in the window.
func (b *ReservationBoard) JuryLoad(teacherID string) int {
	return b.juryLoad[teacherID]
}

// JuryFree reports whether a teacher has no overlapping jury duty on
// the date.
func (b *ReservationBoard) JuryFree(date time.Time, teacherID string, start, end models.ClockTime) bool {
	for _, slot := range b.juryBusy[boardKey(date, teacherID)] {
		if models.Overlaps(start, end, slot.start, slot.end) {
			return false
		}
	}
	return true
}

// ReserveJury records a jury duty and bumps the window load.
func (b *ReservationBoard) ReserveJury(date time.Time, teacherID string, start, end models.ClockTime) {
	key := boardKey(date, teacherID)
	b.juryBusy[key] = append(b.juryBusy[key], interval{start, end})
	b.juryLoad[teacherID]++
}

func boardKey(date time.Time, id string) string {
	return date.Format(dayKeyLayout) + "|" + id
}

// RoomPicker chooses rooms against the board under the capacity tiers.
type RoomPicker struct {
	board             *ReservationBoard
	rooms             []models.Room
	preferProgramLabs bool
	logger            *zap.Logger
}

// NewRoomPicker wires the picker over the generation's board and the
// available room inventory.
func NewRoomPicker(board *ReservationBoard, rooms []models.Room, preferProgramLabs bool, logger *zap.Logger) *RoomPicker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomPicker{board: board, rooms: rooms, preferProgramLabs: preferProgramLabs, logger: logger}
}

// PickClassRoom resolves the room for a written exam: the class's own
// room when feasible, otherwise any classroom under the tier ladder.
func (p *RoomPicker) PickClassRoom(classRoomID string, date time.Time, start, end models.ClockTime, headcount int) (*models.Room, bool) {
	if classRoomID != "" {
		if room := p.findRoom(classRoomID); room != nil && !room.Disabled &&
			p.board.RoomFree(date, room.ID, start, end) {
			return room, true
		}
	}

	candidates := p.classrooms()
	return p.pickTiered(candidates, date, start, end, headcount)
}

// PickLab resolves a computer lab for a platform exam, preferring labs
// the program's classes already use.
func (p *RoomPicker) PickLab(labHistory map[string]struct{}, date time.Time, start, end models.ClockTime, headcount int) (*models.Room, bool) {
	labs := p.labs()
	if p.preferProgramLabs && len(labHistory) > 0 {
		sort.SliceStable(labs, func(i, j int) bool {
			_, iKnown := labHistory[labs[i].ID]
			_, jKnown := labHistory[labs[j].ID]
			if iKnown != jKnown {
				return iKnown
			}
			return labs[i].ID < labs[j].ID
		})
	}
	return p.pickTiered(labs, date, start, end, headcount)
}

func (p *RoomPicker) pickTiered(candidates []models.Room, date time.Time, start, end models.ClockTime, headcount int) (*models.Room, bool) {
	for tierIndex, tier := range capacityTiers {
		required := int(math.Ceil(tier * float64(headcount)))
		for i := range candidates {
			room := candidates[i]
			if room.Capacity < required {
				continue
			}
			if !p.board.RoomFree(date, room.ID, start, end) {
				continue
			}
			if tierIndex == len(capacityTiers)-1 {
				p.logger.Warn("room assigned as last resort",
					zap.String("room_id", room.ID),
					zap.Int("capacity", room.Capacity),
					zap.Int("headcount", headcount))
			}
			return &room, true
		}
	}
	return nil, false
}

func (p *RoomPicker) findRoom(id string) *models.Room {
	for i := range p.rooms {
		if p.rooms[i].ID == id {
			return &p.rooms[i]
		}
	}
	return nil
}

func (p *RoomPicker) classrooms() []models.Room {
	result := make([]models.Room, 0, len(p.rooms))
	for _, room := range p.rooms {
		if !room.IsComputerLab {
			result = append(result, room)
		}
	}
	return result
}

func (p *RoomPicker) labs() []models.Room {
	result := make([]models.Room, 0, len(p.rooms))
	for _, room := range p.rooms {
		if room.IsComputerLab {
			result = append(result, room)
		}
	}
	return result
}
