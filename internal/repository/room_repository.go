package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

// GetByID получает комнату по ID
func (r *RoomRepository) GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.Room, error) {
	query := `
		SELECT id, name, status, created_at
		FROM rooms
		WHERE id = $1
	`

	var room model.Room
	err := q.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.Name,
		&room.Status,
		&room.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get room by id: %w", err)
	}

	return &room, nil
}

// List получает все комнаты кроме архивных
func (r *RoomRepository) List(ctx context.Context, q base.Querier) ([]*model.Room, error) {
	query := `
		SELECT id, name, status, created_at
		FROM rooms
		WHERE status != 'archived'
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*model.Room
	for rows.Next() {
		var room model.Room
		err := rows.Scan(
			&room.ID,
			&room.Name,
			&room.Status,
			&room.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, &room)
	}

	return rooms, rows.Err()
}
