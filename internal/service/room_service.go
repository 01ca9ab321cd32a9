package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
)

// RoomService — чтение комнат и консультативная проверка доступности.
type RoomService struct {
	tx          Transactor
	roomRepo    RoomStore
	bookingRepo BookingStore
	maintRepo   MaintenanceStore
	logger      *zap.Logger
}

func NewRoomService(
	tx Transactor,
	roomRepo RoomStore,
	bookingRepo BookingStore,
	maintRepo MaintenanceStore,
	logger *zap.Logger,
) *RoomService {
	return &RoomService{
		tx:          tx,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		maintRepo:   maintRepo,
		logger:      logger,
	}
}

// ListRooms получает все неархивные комнаты
func (s *RoomService) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return s.roomRepo.List(ctx, s.tx.DB())
}

// GetRoom получает комнату по ID
func (s *RoomService) GetRoom(ctx context.Context, roomID uuid.UUID) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, s.tx.DB(), roomID)
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return nil, apperrors.New(apperrors.KindRoomNotFound, "room does not exist")
	}
	return room, nil
}

// CheckAvailability проверяет интервал комнаты теми же предикатами,
// что и допуск, но вне транзакции. Результат консультативный: решающая
// проверка всё равно выполняется на коммите брони.
func (s *RoomService) CheckAvailability(ctx context.Context, roomID uuid.UUID, start, end time.Time) error {
	if !start.Before(end) {
		return apperrors.New(apperrors.KindInvalidTimeRange, "start must be before end")
	}

	q := s.tx.DB()

	room, err := s.roomRepo.GetByID(ctx, q, roomID)
	if err != nil {
		return fmt.Errorf("get room: %w", err)
	}
	if room == nil {
		return apperrors.New(apperrors.KindRoomNotFound, "room does not exist")
	}
	switch room.Status {
	case model.RoomStatusMaintenance:
		return apperrors.New(apperrors.KindRoomMaintenance, "room is under maintenance")
	case model.RoomStatusArchived:
		return apperrors.New(apperrors.KindRoomArchived, "room is archived")
	}

	busy, err := s.bookingRepo.ExistsOverlapping(ctx, q, roomID, start, end)
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	if busy {
		return apperrors.New(apperrors.KindRoomUnavailable, "room is already booked for this interval")
	}

	blocked, err := s.maintRepo.ExistsOverlapping(ctx, q, roomID, start, end)
	if err != nil {
		return fmt.Errorf("check maintenance overlap: %w", err)
	}
	if blocked {
		return apperrors.New(apperrors.KindMaintenanceConflict, "interval overlaps a maintenance block")
	}

	return nil
}

// ListMaintenance получает блоки обслуживания комнаты за интервал
func (s *RoomService) ListMaintenance(ctx context.Context, roomID uuid.UUID, start, end time.Time) ([]*model.MaintenanceBlock, error) {
	return s.maintRepo.ListOverlapping(ctx, s.tx.DB(), roomID, start, end)
}
