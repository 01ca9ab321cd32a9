package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
	"github.com/kmalkov/roombooking_service/internal/rules"
)

// BookingService — движок допуска и жизненного цикла броней.
//
// Порядок проверок при создании фиксированный: окно -> длительность ->
// горизонт -> лимит активных -> лимит подряд -> пауза -> статус комнаты ->
// пересечения броней -> пересечения обслуживания. Первая неудачная проверка
// останавливает конвейер.
//
// Быстрые проверки идут вне транзакции по слегка устаревшему снимку;
// решающие для одной комнаты (статус, пересечения, вставка) повторяются
// внутри serializable-транзакции, и арбитром порядка конкурирующих
// коммитов выступает само хранилище. Между комнатами сериализации нет.
type BookingService struct {
	tx          Transactor
	bookingRepo BookingStore
	roomRepo    RoomStore
	maintRepo   MaintenanceStore
	configRepo  RuleConfigStore
	userRepo    UserStore
	audit       AuditRecorder
	logger      *zap.Logger
	now         func() time.Time
}

func NewBookingService(
	tx Transactor,
	bookingRepo BookingStore,
	roomRepo RoomStore,
	maintRepo MaintenanceStore,
	configRepo RuleConfigStore,
	userRepo UserStore,
	audit AuditRecorder,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		tx:          tx,
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		maintRepo:   maintRepo,
		configRepo:  configRepo,
		userRepo:    userRepo,
		audit:       audit,
		logger:      logger,
		now:         time.Now,
	}
}

// WithNow подменяет источник времени. Используется в тестах.
func (s *BookingService) WithNow(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBooking проводит бронь через весь конвейер допуска и атомарно
// коммитит её. При любом отказе бронь не сохраняется.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID uuid.UUID, startAt, endAt time.Time) (*model.Booking, error) {
	now := s.now().UTC()
	startAt = startAt.UTC()
	endAt = endAt.UTC()

	cfg, err := s.configRepo.Get(ctx, s.tx.DB())
	if err != nil {
		return nil, fmt.Errorf("load rule config: %w", err)
	}

	if err := rules.Validate(*cfg, startAt, endAt, now); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, s.tx.DB(), userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindUserNotFound, "user is not registered")
	}

	if err := s.checkFairUsage(ctx, cfg, userID, roomID, startAt, now); err != nil {
		return nil, err
	}

	booking := &model.Booking{
		ID:      uuid.New(),
		UserID:  userID,
		RoomID:  roomID,
		StartAt: startAt,
		EndAt:   endAt,
		Status:  model.BookingStatusConfirmed,
	}

	// Решающая часть: статус комнаты и пересечения перечитываются
	// в той же транзакции, что и вставка. Конкурирующую вставку
	// пересекающейся брони хранилище обрывает ошибкой сериализации.
	err = s.tx.InTxSerializable(ctx, func(q base.Querier) error {
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

		busy, err := s.bookingRepo.ExistsOverlapping(ctx, q, roomID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("check overlap: %w", err)
		}
		if busy {
			return apperrors.New(apperrors.KindRoomUnavailable, "room is already booked for this interval")
		}

		blocked, err := s.maintRepo.ExistsOverlapping(ctx, q, roomID, startAt, endAt)
		if err != nil {
			return fmt.Errorf("check maintenance overlap: %w", err)
		}
		if blocked {
			return apperrors.New(apperrors.KindMaintenanceConflict, "interval overlaps a maintenance block")
		}

		return s.bookingRepo.Create(ctx, q, booking)
	})
	if err != nil {
		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		// Проигрыш гонки на коммите означает, что слот занят конкурентом.
		// Повторять транзакцию нельзя: слот мог быть занят легитимно.
		if base.IsSerializationFailure(err) || errors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("Booking commit lost a serialization race",
				zap.String("room_id", roomID.String()),
				zap.Time("start_at", startAt),
			)
			return nil, apperrors.Wrap(apperrors.KindRoomUnavailable, "room was booked concurrently", err)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// Журнал пишется строго после успешного коммита.
	s.audit.Record(model.AuditActionBookingCreated, &userID, "booking", booking.ID.String(), map[string]any{
		"room_id":  roomID.String(),
		"start_at": startAt,
		"end_at":   endAt,
	})

	s.logger.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("room_id", roomID.String()),
		zap.Time("start_at", startAt),
		zap.Time("end_at", endAt),
	)

	return booking, nil
}

// checkFairUsage проверяет персональные лимиты пользователя.
// Выполняется вне транзакции: чужие брони не влияют на корректность,
// а пересечения по комнате перепроверяются внутри коммита.
func (s *BookingService) checkFairUsage(ctx context.Context, cfg *model.RuleConfig, userID, roomID uuid.UUID, startAt, now time.Time) error {
	q := s.tx.DB()

	active, err := s.bookingRepo.CountActiveByUser(ctx, q, userID, now)
	if err != nil {
		return fmt.Errorf("count active bookings: %w", err)
	}
	if active >= cfg.MaxActiveBookings {
		return apperrors.Newf(apperrors.KindMaxActiveBookingsExceeded,
			"user already has %d active bookings", active)
	}

	if cfg.MaxConsecutive != nil {
		length, err := s.consecutiveChainLength(ctx, q, userID, roomID, startAt, *cfg.MaxConsecutive)
		if err != nil {
			return err
		}
		if length >= *cfg.MaxConsecutive {
			return apperrors.Newf(apperrors.KindMaxConsecutiveExceeded,
				"at most %d back-to-back bookings are allowed", *cfg.MaxConsecutive)
		}
	}

	if cfg.CooldownMinutes != nil {
		lastCreated, err := s.bookingRepo.LatestCreatedAt(ctx, q, userID)
		if err != nil {
			return fmt.Errorf("get latest booking creation: %w", err)
		}
		if lastCreated != nil {
			readyAt := lastCreated.Add(time.Duration(*cfg.CooldownMinutes) * time.Minute)
			if now.Before(readyAt) {
				return apperrors.Newf(apperrors.KindCooldownActive,
					"next booking allowed after %s", readyAt.UTC().Format(time.RFC3339))
			}
		}
	}

	return nil
}

// consecutiveChainLength идёт назад по цепочке стыкующихся броней
// пользователя в комнате: каждая предыдущая заканчивается ровно в начале
// следующей. Любой зазор обрывает цепочку. Цикл ограничен лимитом,
// поэтому стоимость линейна и ограничена конфигурацией.
func (s *BookingService) consecutiveChainLength(ctx context.Context, q base.Querier, userID, roomID uuid.UUID, startAt time.Time, limit int) (int, error) {
	length := 0
	cursor := startAt
	for length < limit {
		prevStart, err := s.bookingRepo.ChainPredecessorStart(ctx, q, userID, roomID, cursor)
		if err != nil {
			return 0, fmt.Errorf("walk consecutive chain: %w", err)
		}
		if prevStart == nil {
			break
		}
		length++
		cursor = *prevStart
	}
	return length, nil
}

// CancelBooking отменяет подтверждённую бронь. Разрешено владельцу
// или администратору, и только пока интервал брони не прошёл.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, callerID uuid.UUID, isAdmin bool) (*model.Booking, error) {
	now := s.now().UTC()

	booking, err := s.bookingRepo.GetByID(ctx, s.tx.DB(), bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.KindBookingNotFound, "booking does not exist")
	}

	if booking.UserID != callerID && !isAdmin {
		return nil, apperrors.New(apperrors.KindForbidden, "only the owner or an administrator may cancel")
	}

	// Отмена - изменение живого состояния, а не правка истории.
	if !booking.EndAt.After(now) {
		return nil, apperrors.New(apperrors.KindPastBooking, "booking interval has already elapsed")
	}
	if booking.Status == model.BookingStatusCancelled {
		return nil, apperrors.New(apperrors.KindAlreadyCancelled, "booking is already cancelled")
	}

	cancelled, err := s.bookingRepo.Cancel(ctx, s.tx.DB(), bookingID, callerID, now)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !cancelled {
		// Конкурирующая отмена успела раньше.
		return nil, apperrors.New(apperrors.KindAlreadyCancelled, "booking is already cancelled")
	}

	booking.Status = model.BookingStatusCancelled
	booking.CancelledAt = &now
	booking.CancelledBy = &callerID

	s.audit.Record(model.AuditActionBookingCancelled, &callerID, "booking", bookingID.String(), map[string]any{
		"owner_id": booking.UserID.String(),
		"by_admin": isAdmin && callerID != booking.UserID,
	})

	s.logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("caller_id", callerID.String()),
		zap.Bool("is_admin", isAdmin),
	)

	return booking, nil
}

// ExpireElapsed закрывает все подтверждённые брони с прошедшим интервалом
// и возвращает число изменённых строк. Операция идемпотентна.
func (s *BookingService) ExpireElapsed(ctx context.Context) (int64, error) {
	now := s.now().UTC()

	count, err := s.bookingRepo.ExpireElapsed(ctx, s.tx.DB(), now)
	if err != nil {
		return 0, fmt.Errorf("expire elapsed: %w", err)
	}

	if count > 0 {
		s.audit.Record(model.AuditActionBookingsExpired, nil, "booking", "", map[string]any{
			"count": count,
		})
		s.logger.Info("Elapsed bookings expired", zap.Int64("count", count))
	}

	return count, nil
}

// GetBooking получает бронь по ID
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, s.tx.DB(), bookingID)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, apperrors.New(apperrors.KindBookingNotFound, "booking does not exist")
	}
	return booking, nil
}

// ListUserBookings получает все брони пользователя
func (s *BookingService) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	return s.bookingRepo.ListByUser(ctx, s.tx.DB(), userID)
}
