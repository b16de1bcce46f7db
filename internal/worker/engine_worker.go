package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/service"
)

// EngineWorker drives the engine's time-based behavior: the overdue sweep
// and the maintenance scheduler, in that order, once per tick. The two run
// back to back so a freshly generated preventive ticket is evaluated no
// earlier than the following tick.
type EngineWorker struct {
	sweep       *service.SweepService
	maintenance *service.MaintenanceService
	interval    time.Duration
	logger      *zap.Logger
}

// NewEngineWorker constructs the worker.
func NewEngineWorker(sweep *service.SweepService, maintenance *service.MaintenanceService, interval time.Duration, logger *zap.Logger) *EngineWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &EngineWorker{
		sweep:       sweep,
		maintenance: maintenance,
		interval:    interval,
		logger:      logger,
	}
}

// Start runs the tick loop until ctx is cancelled. One pass runs at startup
// so a restarted process catches up immediately.
func (w *EngineWorker) Start(ctx context.Context) {
	w.logger.Info("engine worker started", zap.Duration("interval", w.interval))
	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("engine worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *EngineWorker) runOnce(ctx context.Context) {
	now := time.Now()
	w.sweep.RunOverdueSweep(ctx, now)
	w.maintenance.RunMaintenanceTick(ctx, now)
}
