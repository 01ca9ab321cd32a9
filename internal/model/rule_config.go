package model

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var ruleConfigValidate = validator.New()

// RuleConfig — единственная активная политика бронирования.
// Обновляется целиком администратором по схеме merge-then-validate:
// после любого частичного обновления все инварианты полей должны выполняться.
type RuleConfig struct {
	OpenHour            int       `json:"open_hour" validate:"min=0,max=23"`
	CloseHour           int       `json:"close_hour" validate:"min=1,max=24,gtfield=OpenHour"`
	SlotIntervalMinutes int       `json:"slot_interval_minutes" validate:"min=1"`
	MinDurationMinutes  int       `json:"min_duration_minutes" validate:"min=1"`
	MaxDurationMinutes  int       `json:"max_duration_minutes" validate:"min=1,gtefield=MinDurationMinutes"`
	MaxActiveBookings   int       `json:"max_active_bookings" validate:"min=1"`
	MaxConsecutive      *int      `json:"max_consecutive,omitempty" validate:"omitempty,min=1"`  // nil = без ограничения
	CooldownMinutes     *int      `json:"cooldown_minutes,omitempty" validate:"omitempty,min=1"` // nil = без паузы
	MinNoticeMinutes    int       `json:"min_notice_minutes" validate:"min=0"`
	MaxDaysAhead        int       `json:"max_days_ahead" validate:"min=1"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// RuleConfigPatch — частичное обновление политики. Поле nil означает
// "оставить как есть". Для опциональных лимитов значение 0 снимает лимит.
type RuleConfigPatch struct {
	OpenHour            *int `json:"open_hour,omitempty"`
	CloseHour           *int `json:"close_hour,omitempty"`
	SlotIntervalMinutes *int `json:"slot_interval_minutes,omitempty"`
	MinDurationMinutes  *int `json:"min_duration_minutes,omitempty"`
	MaxDurationMinutes  *int `json:"max_duration_minutes,omitempty"`
	MaxActiveBookings   *int `json:"max_active_bookings,omitempty"`
	MaxConsecutive      *int `json:"max_consecutive,omitempty"`
	CooldownMinutes     *int `json:"cooldown_minutes,omitempty"`
	MinNoticeMinutes    *int `json:"min_notice_minutes,omitempty"`
	MaxDaysAhead        *int `json:"max_days_ahead,omitempty"`
}

// Merge применяет частичное обновление и возвращает новую конфигурацию.
// Не валидирует результат - вызывающий обязан проверить Validate.
func (c RuleConfig) Merge(p RuleConfigPatch) RuleConfig {
	out := c
	if p.OpenHour != nil {
		out.OpenHour = *p.OpenHour
	}
	if p.CloseHour != nil {
		out.CloseHour = *p.CloseHour
	}
	if p.SlotIntervalMinutes != nil {
		out.SlotIntervalMinutes = *p.SlotIntervalMinutes
	}
	if p.MinDurationMinutes != nil {
		out.MinDurationMinutes = *p.MinDurationMinutes
	}
	if p.MaxDurationMinutes != nil {
		out.MaxDurationMinutes = *p.MaxDurationMinutes
	}
	if p.MaxActiveBookings != nil {
		out.MaxActiveBookings = *p.MaxActiveBookings
	}
	if p.MaxConsecutive != nil {
		out.MaxConsecutive = optionalLimit(*p.MaxConsecutive)
	}
	if p.CooldownMinutes != nil {
		out.CooldownMinutes = optionalLimit(*p.CooldownMinutes)
	}
	if p.MinNoticeMinutes != nil {
		out.MinNoticeMinutes = *p.MinNoticeMinutes
	}
	if p.MaxDaysAhead != nil {
		out.MaxDaysAhead = *p.MaxDaysAhead
	}
	return out
}

// Validate проверяет инварианты всех полей конфигурации.
func (c *RuleConfig) Validate() error {
	return ruleConfigValidate.Struct(c)
}

// optionalLimit переводит значение лимита в указатель: 0 снимает лимит.
func optionalLimit(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
