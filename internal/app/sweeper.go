package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// BookingExpirer закрывает истёкшие брони и возвращает их число.
type BookingExpirer interface {
	ExpireElapsed(ctx context.Context) (int64, error)
}

// Sweeper управляет фоновой задачей истечения броней
type Sweeper struct {
	bookings BookingExpirer
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewSweeper создаёт новый планировщик истечения
func NewSweeper(bookings BookingExpirer, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		bookings: bookings,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую задачу
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting expiration sweeper", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop останавливает фоновую задачу
func (s *Sweeper) Stop() {
	s.logger.Info("Stopping expiration sweeper")
	close(s.stopChan)
}

// run периодически закрывает истёкшие брони
func (s *Sweeper) run(ctx context.Context) {
	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Expiration sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Expiration sweeper cancelled")
			return
		}
	}
}

// sweep выполняет один проход истечения
func (s *Sweeper) sweep(ctx context.Context) {
	count, err := s.bookings.ExpireElapsed(ctx)
	if err != nil {
		s.logger.Error("Failed to expire elapsed bookings", zap.Error(err))
		return
	}

	if count > 0 {
		s.logger.Info("Expiration sweep completed", zap.Int64("expired", count))
	}
}
