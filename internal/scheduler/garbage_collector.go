package scheduler

import (
	"context"
	"time"

	"github.com/beaconbio/linkgate/internal/logger"
)

// Sweeper removes bookkeeping for links whose records already expired
// and reports how many were cleaned up
type Sweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// GarbageCollector periodically sweeps expired link bookkeeping out of
// the store. Link records expire on their own; the sweep only trims
// the membership set they leave behind, so every run is best effort.
type GarbageCollector struct {
	sweeper  Sweeper
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(sweeper Sweeper, log logger.Logger, interval time.Duration) *GarbageCollector {
	return &GarbageCollector{
		sweeper:  sweeper,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) error {
	// Run immediately on start
	if err := gc.Collect(ctx); err != nil {
		gc.logger.Warn("initial garbage collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := gc.Collect(ctx); err != nil {
					gc.logger.Error("garbage collection failed",
						logger.Error(err))
				}
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect runs a single sweep
func (gc *GarbageCollector) Collect(ctx context.Context) error {
	if gc.sweeper == nil {
		return nil
	}

	removed, err := gc.sweeper.SweepExpired(ctx)
	if err != nil {
		return err
	}

	if removed > 0 {
		gc.logger.Info("garbage collection completed",
			logger.Int("links_removed", removed))
	} else {
		gc.logger.Debug("no expired links to garbage collect")
	}

	return nil
}
