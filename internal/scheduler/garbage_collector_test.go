package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/beaconbio/linkgate/internal/logger"
)

type fakeSweeper struct {
	removed int
	err     error
	calls   int
}

func (f *fakeSweeper) SweepExpired(context.Context) (int, error) {
	f.calls++
	return f.removed, f.err
}

func TestGarbageCollectorCollect(t *testing.T) {
	sweeper := &fakeSweeper{removed: 3}
	gc := NewGarbageCollector(sweeper, logger.Nop(), time.Hour)

	if err := gc.Collect(context.Background()); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	if sweeper.calls != 1 {
		t.Errorf("sweeper called %v times, want 1", sweeper.calls)
	}
}

func TestGarbageCollectorCollectError(t *testing.T) {
	sweeper := &fakeSweeper{err: errors.New("connection refused")}
	gc := NewGarbageCollector(sweeper, logger.Nop(), time.Hour)

	if err := gc.Collect(context.Background()); err == nil {
		t.Error("Collect() should surface sweep errors")
	}
}

func TestGarbageCollectorNilSweeper(t *testing.T) {
	gc := NewGarbageCollector(nil, logger.Nop(), time.Hour)

	if err := gc.Collect(context.Background()); err != nil {
		t.Errorf("Collect() with nil sweeper should be a no-op, got %v", err)
	}
}

func TestGarbageCollectorStartStop(t *testing.T) {
	sweeper := &fakeSweeper{}
	gc := NewGarbageCollector(sweeper, logger.Nop(), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := gc.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// The initial collection runs synchronously.
	if sweeper.calls < 1 {
		t.Error("Start() should run an initial collection")
	}

	gc.Stop()
}
