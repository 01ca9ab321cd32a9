package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

// Интерфейсы хранилища, которые потребляют сервисы. Реализуются
// pgx-репозиториями; в тестах подменяются in-memory двойниками.

// Transactor открывает транзакции и даёт доступ к хранилищу вне их.
type Transactor interface {
	DB() base.Querier
	InTxSerializable(ctx context.Context, fn func(q base.Querier) error) error
}

// BookingStore — операции над бронями.
type BookingStore interface {
	Create(ctx context.Context, q base.Querier, booking *model.Booking) error
	GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.Booking, error)
	ListByUser(ctx context.Context, q base.Querier, userID uuid.UUID) ([]*model.Booking, error)
	CountActiveByUser(ctx context.Context, q base.Querier, userID uuid.UUID, now time.Time) (int, error)
	ExistsOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) (bool, error)
	ChainPredecessorStart(ctx context.Context, q base.Querier, userID, roomID uuid.UUID, endAt time.Time) (*time.Time, error)
	LatestCreatedAt(ctx context.Context, q base.Querier, userID uuid.UUID) (*time.Time, error)
	Cancel(ctx context.Context, q base.Querier, id, cancelledBy uuid.UUID, cancelledAt time.Time) (bool, error)
	ExpireElapsed(ctx context.Context, q base.Querier, now time.Time) (int64, error)
}

// RoomStore — чтение комнат.
type RoomStore interface {
	GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.Room, error)
	List(ctx context.Context, q base.Querier) ([]*model.Room, error)
}

// MaintenanceStore — чтение блоков обслуживания.
type MaintenanceStore interface {
	ExistsOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) (bool, error)
	ListOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) ([]*model.MaintenanceBlock, error)
}

// RuleConfigStore — единственная запись политики.
type RuleConfigStore interface {
	Get(ctx context.Context, q base.Querier) (*model.RuleConfig, error)
	Update(ctx context.Context, q base.Querier, cfg *model.RuleConfig) error
}

// UserStore — зеркало пользователей.
type UserStore interface {
	Create(ctx context.Context, q base.Querier, user *model.User) error
	GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.User, error)
}

// AuditStore — журнал действий, только вставка.
type AuditStore interface {
	Insert(ctx context.Context, q base.Querier, rec *model.AuditRecord) error
}

// AuditRecorder — best-effort приёмник событий для сервисов.
type AuditRecorder interface {
	Record(action string, actorID *uuid.UUID, entityType, entityID string, payload map[string]any)
}
