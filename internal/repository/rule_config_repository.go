package repository

import (
	"context"
	"fmt"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type RuleConfigRepository struct{}

func NewRuleConfigRepository() *RuleConfigRepository {
	return &RuleConfigRepository{}
}

// Get читает единственную запись политики. Запись сидируется миграцией,
// поэтому её отсутствие - ошибка инфраструктуры, а не домена.
func (r *RuleConfigRepository) Get(ctx context.Context, q base.Querier) (*model.RuleConfig, error) {
	query := `
		SELECT open_hour, close_hour, slot_interval_minutes,
		       min_duration_minutes, max_duration_minutes,
		       max_active_bookings, max_consecutive, cooldown_minutes,
		       min_notice_minutes, max_days_ahead, updated_at
		FROM rule_config
		WHERE id = 1
	`

	var cfg model.RuleConfig
	err := q.QueryRow(ctx, query).Scan(
		&cfg.OpenHour,
		&cfg.CloseHour,
		&cfg.SlotIntervalMinutes,
		&cfg.MinDurationMinutes,
		&cfg.MaxDurationMinutes,
		&cfg.MaxActiveBookings,
		&cfg.MaxConsecutive,
		&cfg.CooldownMinutes,
		&cfg.MinNoticeMinutes,
		&cfg.MaxDaysAhead,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get rule config: %w", err)
	}

	return &cfg, nil
}

// Update перезаписывает запись политики целиком
func (r *RuleConfigRepository) Update(ctx context.Context, q base.Querier, cfg *model.RuleConfig) error {
	query := `
		UPDATE rule_config
		SET open_hour = $1, close_hour = $2, slot_interval_minutes = $3,
		    min_duration_minutes = $4, max_duration_minutes = $5,
		    max_active_bookings = $6, max_consecutive = $7, cooldown_minutes = $8,
		    min_notice_minutes = $9, max_days_ahead = $10, updated_at = NOW()
		WHERE id = 1
		RETURNING updated_at
	`

	err := q.QueryRow(
		ctx, query,
		cfg.OpenHour,
		cfg.CloseHour,
		cfg.SlotIntervalMinutes,
		cfg.MinDurationMinutes,
		cfg.MaxDurationMinutes,
		cfg.MaxActiveBookings,
		cfg.MaxConsecutive,
		cfg.CooldownMinutes,
		cfg.MinNoticeMinutes,
		cfg.MaxDaysAhead,
	).Scan(&cfg.UpdatedAt)

	if err != nil {
		return fmt.Errorf("update rule config: %w", err)
	}

	return nil
}
