package sweeper

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/supply"
)

// Sweeper periodically regenerates supply alerts for every active company.
type Sweeper struct {
	uc       supply.UseCase
	interval time.Duration
	logger   logger.Logger
}

func NewSweeper(uc supply.UseCase, interval time.Duration, log logger.Logger) *Sweeper {
	return &Sweeper{uc: uc, interval: interval, logger: log}
}

// Start blocks until ctx is cancelled. One sweep runs immediately, then on
// every tick.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("Starting supply alert sweeper", zap.Duration("interval", s.interval))

	s.run(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping supply alert sweeper")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Sweeper) run(ctx context.Context) {
	if err := s.uc.GenerateAlertsAll(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Error("supply alert sweep failed", zap.Error(err))
	}
}
