package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/metinatakli/cinema-booking-engine/internal/domain"
)

// HoldReaper deletes expired hold rows in the background. Readers already
// ignore expired holds, so the reaper only reclaims space.
type HoldReaper struct {
	holds    domain.HoldRepository
	clock    domain.Clock
	interval time.Duration
	logger   *slog.Logger
}

func NewHoldReaper(holds domain.HoldRepository, clock domain.Clock, interval time.Duration, logger *slog.Logger) *HoldReaper {
	return &HoldReaper{
		holds:    holds,
		clock:    clock,
		interval: interval,
		logger:   logger,
	}
}

// Run reaps on every tick until ctx is cancelled. A non-positive interval
// disables the reaper and Run returns at once.
func (r *HoldReaper) Run(ctx context.Context) {
	if r.interval <= 0 {
		r.logger.Info("hold reaper disabled", "interval", r.interval)
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := r.ReapOnce(ctx)
			if err != nil && ctx.Err() == nil {
				r.logger.Error("failed to reap expired holds", "error", err)
			}
		}
	}
}

func (r *HoldReaper) ReapOnce(ctx context.Context) (int64, error) {
	deleted, err := r.holds.DeleteExpired(ctx, r.clock.Now())
	if err != nil {
		return 0, err
	}

	if deleted > 0 {
		r.logger.Debug("reaped expired holds", "count", deleted)
	}

	return deleted, nil
}
