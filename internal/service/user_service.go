package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/apperrors"
	"github.com/kmalkov/roombooking_service/internal/model"
)

// UserService — регистрация и чтение зеркала пользователей.
// Выдача идентичности и аутентификация остаются во внешней системе.
type UserService struct {
	tx       Transactor
	userRepo UserStore
	audit    AuditRecorder
	logger   *zap.Logger
}

func NewUserService(tx Transactor, userRepo UserStore, audit AuditRecorder, logger *zap.Logger) *UserService {
	return &UserService{
		tx:       tx,
		userRepo: userRepo,
		audit:    audit,
		logger:   logger,
	}
}

// Register заводит пользователя с заданным внешним ID
func (s *UserService) Register(ctx context.Context, id uuid.UUID, name string, isAdmin bool) (*model.User, error) {
	user := &model.User{
		ID:      id,
		Name:    name,
		IsAdmin: isAdmin,
	}

	if err := s.userRepo.Create(ctx, s.tx.DB(), user); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.audit.Record(model.AuditActionUserRegistered, &id, "user", id.String(), map[string]any{
		"is_admin": isAdmin,
	})

	s.logger.Info("User registered",
		zap.String("user_id", id.String()),
		zap.Bool("is_admin", isAdmin),
	)

	return user, nil
}

// Get получает пользователя по ID
func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, s.tx.DB(), id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, apperrors.New(apperrors.KindUserNotFound, "user does not exist")
	}
	return user, nil
}
