package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"multibank-ledger/domain"
	"multibank-ledger/store"
)

// BatchDriver runs the daily batch and stores an end-of-day balance snapshot
// for every bank, versioned by business day.
type BatchDriver struct {
	engine    *Engine
	registry  Registry
	snapshots store.SnapshotStore
	logger    *zap.Logger

	mu  sync.Mutex
	day int
	// pending is the unfinished run of day+1, kept so a retry resumes it.
	pending *DailyRun
}

func NewBatchDriver(engine *Engine, registry Registry, snapshots store.SnapshotStore, logger *zap.Logger) *BatchDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchDriver{
		engine:    engine,
		registry:  registry,
		snapshots: snapshots,
		logger:    logger,
	}
}

// Day is the number of completed business days.
func (d *BatchDriver) Day() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.day
}

// RunOnce runs the next business day. The day only counts, and snapshots are
// only taken, once every bank has settled. A failed day is resumed by the next
// call rather than started again, so no bank posts the same day twice.
func (d *BatchDriver) RunOnce(ctx context.Context) (*BatchResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		d.pending = NewDailyRun()
	} else {
		d.logger.Info("resuming unfinished business day", zap.Int("day", d.day+1))
	}

	banks := d.registry.Banks()
	result, err := d.engine.ResumeDailyBatch(ctx, d.pending, banks)
	if err != nil {
		result.Day = d.day + 1
		d.logger.Warn("business day left unfinished",
			zap.Int("day", result.Day),
			zap.Int("settledBanks", len(result.Settled)),
			zap.Error(err))
		return result, err
	}
	d.pending = nil
	d.day++
	result.Day = d.day

	for _, bank := range banks {
		snap, err := domain.CreateSnapshot(bank, d.day)
		if err != nil {
			d.logger.Error("failed to create end-of-day snapshot", zap.String("bank", bank.Name), zap.Int("day", d.day), zap.Error(err))
			continue
		}
		if err := d.snapshots.SaveSnapshot(snap); err != nil {
			d.logger.Error("failed to save end-of-day snapshot", zap.String("bank", bank.Name), zap.Int("day", d.day), zap.Error(err))
		}
	}
	return result, nil
}

// Run calls RunOnce every interval until ctx is done. A failed day is logged
// and the next tick resumes it.
func (d *BatchDriver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			result, err := d.RunOnce(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				d.logger.Error("daily batch failed", zap.Error(err))
				continue
			}
			d.logger.Debug("daily batch tick", zap.Int("day", result.Day))
		}
	}
}
