package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/model"
)

const auditWriteTimeout = 5 * time.Second

// AuditService пишет журнал действий best-effort: запись выполняется
// в отдельной горутине на независимом контексте строго после успешного
// коммита операции, её ошибка логируется и никогда не влияет на результат.
type AuditService struct {
	tx     Transactor
	audit  AuditStore
	logger *zap.Logger
}

func NewAuditService(tx Transactor, audit AuditStore, logger *zap.Logger) *AuditService {
	return &AuditService{
		tx:     tx,
		audit:  audit,
		logger: logger,
	}
}

// Record отправляет событие в журнал и сразу возвращает управление
func (s *AuditService) Record(action string, actorID *uuid.UUID, entityType, entityID string, payload map[string]any) {
	rec := &model.AuditRecord{
		Action:     action,
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Payload:    payload,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		defer cancel()

		if err := s.audit.Insert(ctx, s.tx.DB(), rec); err != nil {
			s.logger.Warn("Failed to record audit entry",
				zap.String("action", action),
				zap.String("entity_type", entityType),
				zap.String("entity_id", entityID),
				zap.Error(err),
			)
		}
	}()
}
