package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kmalkov/roombooking_service/internal/model"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create регистрирует пользователя
func (r *UserRepository) Create(ctx context.Context, q base.Querier, user *model.User) error {
	query := `
		INSERT INTO users (id, name, is_admin)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query, user.ID, user.Name, user.IsAdmin).Scan(&user.CreatedAt)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, q base.Querier, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, is_admin, created_at
		FROM users
		WHERE id = $1
	`

	var user model.User
	err := q.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.IsAdmin,
		&user.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return &user, nil
}
