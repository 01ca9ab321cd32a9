package model

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions
const (
	AuditActionBookingCreated    = "booking.created"
	AuditActionBookingCancelled  = "booking.cancelled"
	AuditActionBookingsExpired   = "booking.expired"
	AuditActionRuleConfigUpdated = "rule_config.updated"
	AuditActionUserRegistered    = "user.registered"
)

// AuditRecord — запись журнала действий. Пишется best-effort после
// успешного коммита; ошибка записи не влияет на результат операции.
type AuditRecord struct {
	ID         int64          `json:"id"`
	Action     string         `json:"action"`
	ActorID    *uuid.UUID     `json:"actor_id,omitempty"` // nil для фоновых задач
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
