package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/kmalkov/roombooking_service/internal/app"
	"github.com/kmalkov/roombooking_service/internal/config"
	"github.com/kmalkov/roombooking_service/internal/controller/httpapi"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	baseRepo := base.NewRepository(pool)
	bookingRepo := repository.NewBookingRepository()
	roomRepo := repository.NewRoomRepository()
	maintRepo := repository.NewMaintenanceRepository()
	configRepo := repository.NewRuleConfigRepository()
	userRepo := repository.NewUserRepository()
	auditRepo := repository.NewAuditRepository()

	auditService := service.NewAuditService(baseRepo, auditRepo, logger)
	bookingService := service.NewBookingService(
		baseRepo, bookingRepo, roomRepo, maintRepo, configRepo, userRepo, auditService, logger)
	roomService := service.NewRoomService(baseRepo, roomRepo, bookingRepo, maintRepo, logger)
	configService := service.NewRuleConfigService(baseRepo, configRepo, auditService, logger)
	userService := service.NewUserService(baseRepo, userRepo, auditService, logger)

	sweeper := app.NewSweeper(bookingService,
		time.Duration(cfg.ExpireIntervalMinutes)*time.Minute, logger)
	sweeper.Start(ctx)
	defer sweeper.Stop()

	api := httpapi.NewAPI(bookingService, roomService, configService, userService, logger)
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(api, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting booking service",
			zap.String("environment", cfg.Environment),
			zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", zap.Error(err))
	}
}
