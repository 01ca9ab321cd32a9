package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
)

// RuleConfigService — чтение и административное обновление политики.
// Политика не кэшируется: каждый запрос допуска читает последнюю
// закоммиченную запись.
type RuleConfigService struct {
	tx         Transactor
	configRepo RuleConfigStore
	audit      AuditRecorder
	logger     *zap.Logger
}

func NewRuleConfigService(tx Transactor, configRepo RuleConfigStore, audit AuditRecorder, logger *zap.Logger) *RuleConfigService {
	return &RuleConfigService{
		tx:         tx,
		configRepo: configRepo,
		audit:      audit,
		logger:     logger,
	}
}

// Get читает активную политику
func (s *RuleConfigService) Get(ctx context.Context) (*model.RuleConfig, error) {
	return s.configRepo.Get(ctx, s.tx.DB())
}

// Update применяет частичное обновление по схеме merge-then-validate:
// результат слияния проверяется целиком до записи.
func (s *RuleConfigService) Update(ctx context.Context, patch model.RuleConfigPatch, actorID uuid.UUID) (*model.RuleConfig, error) {
	current, err := s.configRepo.Get(ctx, s.tx.DB())
	if err != nil {
		return nil, fmt.Errorf("load rule config: %w", err)
	}

	merged := current.Merge(patch)
	if err := merged.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidRuleConfig, "merged rule config is inconsistent", err)
	}

	if err := s.configRepo.Update(ctx, s.tx.DB(), &merged); err != nil {
		return nil, fmt.Errorf("update rule config: %w", err)
	}

	s.audit.Record(model.AuditActionRuleConfigUpdated, &actorID, "rule_config", "1", map[string]any{
		"open_hour":  merged.OpenHour,
		"close_hour": merged.CloseHour,
	})

	s.logger.Info("Rule config updated",
		zap.String("actor_id", actorID.String()),
		zap.Int("open_hour", merged.OpenHour),
		zap.Int("close_hour", merged.CloseHour),
	)

	return &merged, nil
}
