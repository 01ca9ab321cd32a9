package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const bookingColumns = `id, user_id, room_id, start_at, end_at, status, cancelled_at, cancelled_by, created_at`

// Create создаёт новую бронь в статусе confirmed
func (r *BookingRepository) Create(ctx context.Context, q base.Querier, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, room_id, start_at, end_at, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	err := q.QueryRow(
		ctx, query,
		booking.ID,
		booking.UserID,
		booking.RoomID,
		booking.StartAt,
		booking.EndAt,
		booking.Status,
	).Scan(&booking.CreatedAt)

	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}

	return nil
}

// GetByID получает бронь по ID
func (r *BookingRepository) GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE id = $1
	`

	booking, err := scanBooking(q.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking by id: %w", err)
	}

	return booking, nil
}

// ListByUser получает все брони пользователя, новые первыми
func (r *BookingRepository) ListByUser(ctx context.Context, q base.Querier, userID uuid.UUID) ([]*model.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY start_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by user: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

// CountActiveByUser считает подтверждённые брони пользователя,
// чей интервал ещё не закончился
func (r *BookingRepository) CountActiveByUser(ctx context.Context, q base.Querier, userID uuid.UUID, now time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE user_id = $1 AND status = 'confirmed' AND end_at > $2
	`

	var count int
	if err := q.QueryRow(ctx, query, userID, now).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active bookings: %w", err)
	}

	return count, nil
}

// ExistsOverlapping проверяет пересечение интервала [start, end)
// с подтверждённой бронью комнаты
func (r *BookingRepository) ExistsOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE room_id = $1 AND status = 'confirmed'
			  AND start_at < $3 AND $2 < end_at
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, roomID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("check booking overlap: %w", err)
	}

	return exists, nil
}

// ChainPredecessorStart ищет подтверждённую бронь пользователя в той же
// комнате, заканчивающуюся ровно в endAt (стык без зазора), и возвращает
// её начало. Возвращает nil, если цепочка обрывается.
func (r *BookingRepository) ChainPredecessorStart(ctx context.Context, q base.Querier, userID, roomID uuid.UUID, endAt time.Time) (*time.Time, error) {
	query := `
		SELECT start_at
		FROM bookings
		WHERE user_id = $1 AND room_id = $2 AND status = 'confirmed' AND end_at = $3
		LIMIT 1
	`

	var startAt time.Time
	err := q.QueryRow(ctx, query, userID, roomID, endAt).Scan(&startAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find chain predecessor: %w", err)
	}

	return &startAt, nil
}

// LatestCreatedAt возвращает время создания последней по createdAt
// подтверждённой брони пользователя в любой комнате
func (r *BookingRepository) LatestCreatedAt(ctx context.Context, q base.Querier, userID uuid.UUID) (*time.Time, error) {
	query := `
		SELECT created_at
		FROM bookings
		WHERE user_id = $1 AND status = 'confirmed'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var createdAt time.Time
	err := q.QueryRow(ctx, query, userID).Scan(&createdAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get latest created booking: %w", err)
	}

	return &createdAt, nil
}

// Cancel переводит подтверждённую бронь в cancelled. Возвращает false,
// если бронь уже не в статусе confirmed (защита от гонки отмен).
func (r *BookingRepository) Cancel(ctx context.Context, q base.Querier, id, cancelledBy uuid.UUID, cancelledAt time.Time) (bool, error) {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = $2, cancelled_by = $3
		WHERE id = $1 AND status = 'confirmed'
	`

	tag, err := q.Exec(ctx, query, id, cancelledAt, cancelledBy)
	if err != nil {
		return false, fmt.Errorf("cancel booking: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// ExpireElapsed переводит в expired все подтверждённые брони с прошедшим
// интервалом. Идемпотентна: повторный запуск без новых истёкших броней
// не меняет ни одной строки. Отменённые брони не трогает.
func (r *BookingRepository) ExpireElapsed(ctx context.Context, q base.Querier, now time.Time) (int64, error) {
	query := `
		UPDATE bookings
		SET status = 'expired'
		WHERE status = 'confirmed' AND end_at < $1
	`

	tag, err := q.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("expire elapsed bookings: %w", err)
	}

	return tag.RowsAffected(), nil
}

// scanBooking читает одну строку bookings
func scanBooking(row pgx.Row) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Status,
		&booking.CancelledAt,
		&booking.CancelledBy,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
