package model

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed" // Активная бронь
	BookingStatusCancelled BookingStatus = "cancelled" // Отменена пользователем или администратором
	BookingStatusExpired   BookingStatus = "expired"   // Интервал прошёл, бронь закрыта фоновой задачей
)

// Booking — бронь комнаты на полуоткрытый интервал [StartAt, EndAt).
// UserID, RoomID и интервал неизменяемы после создания.
type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	RoomID      uuid.UUID     `json:"room_id"`
	StartAt     time.Time     `json:"start_at"`
	EndAt       time.Time     `json:"end_at"`
	Status      BookingStatus `json:"status"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"` // указатель - заполняется только при отмене
	CancelledBy *uuid.UUID    `json:"cancelled_by,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// IsActive проверяет, что бронь подтверждена и её интервал ещё не прошёл.
func (b *Booking) IsActive(now time.Time) bool {
	return b.Status == BookingStatusConfirmed && b.EndAt.After(now)
}

// Overlaps проверяет пересечение с интервалом [start, end).
// Полуоткрытые интервалы пересекаются, когда a < d и c < b.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && start.Before(b.EndAt)
}
