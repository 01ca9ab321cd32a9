package model

import (
	"time"

	"github.com/google/uuid"
)

type RoomStatus string

const (
	RoomStatusActive      RoomStatus = "active"
	RoomStatusMaintenance RoomStatus = "maintenance"
	RoomStatusArchived    RoomStatus = "archived"
)

// Room — бронируемый ресурс. Комнаты создаются внешним CRUD,
// движок бронирования читает их только для проверки статуса.
type Room struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Status    RoomStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsBookable проверяет, что комнату можно бронировать.
func (r *Room) IsBookable() bool {
	return r.Status == RoomStatusActive
}
