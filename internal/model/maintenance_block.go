package model

import (
	"time"

	"github.com/google/uuid"
)

// MaintenanceBlock — интервал недоступности комнаты. Создаётся внешним CRUD,
// для проверки конфликтов трактуется как подтверждённая бронь.
type MaintenanceBlock struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	StartAt   time.Time `json:"start_at"`
	EndAt     time.Time `json:"end_at"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Overlaps проверяет пересечение с интервалом [start, end).
func (m *MaintenanceBlock) Overlaps(start, end time.Time) bool {
	return m.StartAt.Before(end) && start.Before(m.EndAt)
}
