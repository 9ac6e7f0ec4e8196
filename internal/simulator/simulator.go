// Package simulator drives synthetic traffic from the validation holdout
// into the runtime queue, so a demo or integration test has a steady
// stream without an external producer.
package simulator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/queue"
)

type Feeder struct {
	queue    *queue.Service
	interval time.Duration
	batch    int
	logger   *zap.Logger
}

func New(q *queue.Service, interval time.Duration, batch int, logger *zap.Logger) *Feeder {
	return &Feeder{queue: q, interval: interval, batch: batch, logger: logger}
}

// Run blocks until ctx is cancelled, enqueuing one batch per tick.
func (f *Feeder) Run(ctx context.Context) {
	f.logger.Info("simulator feeder started", zap.Duration("interval", f.interval), zap.Int("batch_size", f.batch))
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("simulator feeder stopped")
			return
		case <-ticker.C:
			msgs, err := f.queue.EnqueueFromValidation(ctx, f.batch, true)
			if err != nil {
				f.logger.Error("simulator feed failed", zap.Error(err))
				continue
			}
			f.logger.Debug("simulator fed batch", zap.Int("count", len(msgs)))
		}
	}
}
