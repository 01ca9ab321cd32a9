package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type AuditRepository struct{}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Insert добавляет запись в журнал действий
func (r *AuditRepository) Insert(ctx context.Context, q base.Querier, rec *model.AuditRecord) error {
	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_log (action, actor_id, entity_type, entity_id, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err = q.QueryRow(
		ctx, query,
		rec.Action,
		rec.ActorID,
		rec.EntityType,
		rec.EntityID,
		payload,
	).Scan(&rec.ID, &rec.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}

	return nil
}
