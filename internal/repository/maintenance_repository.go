package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type MaintenanceRepository struct{}

func NewMaintenanceRepository() *MaintenanceRepository {
	return &MaintenanceRepository{}
}

// ExistsOverlapping проверяет пересечение интервала [start, end)
// с блоком обслуживания комнаты
func (r *MaintenanceRepository) ExistsOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM maintenance_blocks
			WHERE room_id = $1 AND start_at < $3 AND $2 < end_at
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, roomID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("check maintenance overlap: %w", err)
	}

	return exists, nil
}

// ListOverlapping получает блоки обслуживания комнаты, пересекающие
// интервал [start, end)
func (r *MaintenanceRepository) ListOverlapping(ctx context.Context, q base.Querier, roomID uuid.UUID, start, end time.Time) ([]*model.MaintenanceBlock, error) {
	query := `
		SELECT id, room_id, start_at, end_at, reason, created_at
		FROM maintenance_blocks
		WHERE room_id = $1 AND start_at < $3 AND $2 < end_at
		ORDER BY start_at
	`

	rows, err := q.Query(ctx, query, roomID, start, end)
	if err != nil {
		return nil, fmt.Errorf("list overlapping maintenance blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*model.MaintenanceBlock
	for rows.Next() {
		var block model.MaintenanceBlock
		err := rows.Scan(
			&block.ID,
			&block.RoomID,
			&block.StartAt,
			&block.EndAt,
			&block.Reason,
			&block.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan maintenance block: %w", err)
		}
		blocks = append(blocks, &block)
	}

	return blocks, rows.Err()
}
