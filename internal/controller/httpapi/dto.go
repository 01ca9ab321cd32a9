package httpapi

import (
	"time"

	"github.com/kmalkov/roombooking_service/internal/model"
)

type createBookingRequest struct {
	RoomID  string    `json:"room_id" validate:"required,uuid"`
	StartAt time.Time `json:"start_at" validate:"required"`
	EndAt   time.Time `json:"end_at" validate:"required"`
}

type registerUserRequest struct {
	ID      string `json:"id" validate:"required,uuid"`
	Name    string `json:"name" validate:"required,max=200"`
	IsAdmin bool   `json:"is_admin"`
}

type bookingResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	RoomID      string     `json:"room_id"`
	StartAt     time.Time  `json:"start_at"`
	EndAt       time.Time  `json:"end_at"`
	Status      string     `json:"status"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
	CancelledBy *string    `json:"cancelled_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type expireResponse struct {
	Expired int64 `json:"expired"`
}

type availabilityResponse struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

func toBookingResponse(b *model.Booking) bookingResponse {
	resp := bookingResponse{
		ID:          b.ID.String(),
		UserID:      b.UserID.String(),
		RoomID:      b.RoomID.String(),
		StartAt:     b.StartAt,
		EndAt:       b.EndAt,
		Status:      string(b.Status),
		CancelledAt: b.CancelledAt,
		CreatedAt:   b.CreatedAt,
	}
	if b.CancelledBy != nil {
		by := b.CancelledBy.String()
		resp.CancelledBy = &by
	}
	return resp
}

func toBookingResponses(bookings []*model.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResponse(b))
	}
	return out
}
