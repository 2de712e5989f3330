package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/unsis-dev/exam-calendar-api/internal/models"
)

// RoomRepository reads examination rooms. The computer-lab flag lives
// in a side table and is folded into the room read model here.
type RoomRepository struct {
	db *sqlx.DB
}

// NewRoomRepository constructs repository.
func NewRoomRepository(db *sqlx.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// ListAvailable returns enabled rooms with their lab flag, id order.
func (r *RoomRepository) ListAvailable(ctx context.Context) ([]models.Room, error) {
	const query = `
SELECT r.id, r.name, r.capacity, r.disabled,
       (cl.room_id IS NOT NULL) AS is_computer_lab
FROM rooms r
LEFT JOIN computer_labs cl ON cl.room_id = r.id
WHERE r.disabled = FALSE
ORDER BY r.id`
	var rooms []models.Room
	if err := r.db.SelectContext(ctx, &rooms, query); err != nil {
		return nil, fmt.Errorf("list available rooms: %w", err)
	}
	return rooms, nil
}
