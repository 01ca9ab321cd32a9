// Одноразовый проход истечения броней. Операционный запасной выход
// на случай, когда фоновая задача сервера выключена.
package main

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/app"
	"github.com/kmalkov/roombooking_service/internal/config"
	"github.com/kmalkov/roombooking_service/internal/repository"
	"github.com/kmalkov/roombooking_service/internal/repository/base"
	"github.com/kmalkov/roombooking_service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	baseRepo := base.NewRepository(pool)
	auditService := service.NewAuditService(baseRepo, repository.NewAuditRepository(), logger)
	bookingService := service.NewBookingService(
		baseRepo,
		repository.NewBookingRepository(),
		repository.NewRoomRepository(),
		repository.NewMaintenanceRepository(),
		repository.NewRuleConfigRepository(),
		repository.NewUserRepository(),
		auditService,
		logger,
	)

	count, err := bookingService.ExpireElapsed(ctx)
	if err != nil {
		logger.Fatal("Expiration sweep failed", zap.Error(err))
	}

	logger.Info("Expiration sweep finished", zap.Int64("expired", count))
}
