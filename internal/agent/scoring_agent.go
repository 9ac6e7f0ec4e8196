package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/scoring"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

// ScoringDelays configures the adaptive pacing of the scoring runner.
type ScoringDelays struct {
	NotReady time.Duration
	Idle     time.Duration
	Busy     time.Duration
	Error    time.Duration
}

func DefaultScoringDelays() ScoringDelays {
	return ScoringDelays{
		NotReady: 2000 * time.Millisecond,
		Idle:     500 * time.Millisecond,
		Busy:     100 * time.Millisecond,
		Error:    1000 * time.Millisecond,
	}
}

// ScoringAgentRunner is the long-running claim-score-emit loop. It holds no
// mutable handle across iterations besides its collaborators.
type ScoringAgentRunner struct {
	queue    *queue.Service
	scoring  *scoring.Service
	observer Observer
	delays   ScoringDelays
	logger   *zap.Logger
}

func NewScoringAgentRunner(q *queue.Service, sc *scoring.Service, observer Observer, delays ScoringDelays, logger *zap.Logger) *ScoringAgentRunner {
	if observer == nil {
		observer = NopObserver{}
	}
	return &ScoringAgentRunner{queue: q, scoring: sc, observer: observer, delays: delays, logger: logger}
}

// Run blocks until ctx is cancelled.
func (r *ScoringAgentRunner) Run(ctx context.Context) {
	r.logger.Info("scoring agent started")
	for {
		if ctx.Err() != nil {
			r.logger.Info("scoring agent stopped")
			return
		}
		if !r.tick(ctx) {
			return
		}
	}
}

// tick runs one iteration and reports whether the loop should continue.
func (r *ScoringAgentRunner) tick(ctx context.Context) bool {
	if !r.scoring.IsReady(ctx) {
		return sleep(ctx, r.delays.NotReady)
	}

	msg, err := r.queue.ClaimNext(ctx)
	if err != nil {
		if storeerr.KindOf(err) == storeerr.KindCancelled {
			return false
		}
		r.logger.Error("claim failed", zap.Error(err))
		return sleep(ctx, r.delays.Error)
	}
	if msg == nil {
		return sleep(ctx, r.delays.Idle)
	}

	result, err := r.scoring.ScoreMessage(ctx, msg)
	if err != nil {
		if storeerr.KindOf(err) == storeerr.KindNotReady {
			return sleep(ctx, r.delays.NotReady)
		}
		if storeerr.KindOf(err) == storeerr.KindCancelled {
			return false
		}
		r.logger.Error("scoring failed", zap.Int64("message_id", msg.ID), zap.Error(err))
		return sleep(ctx, r.delays.Error)
	}

	r.observer.OnScored(ScoringEvent{Result: result, Timestamp: time.Now().UTC()})
	return sleep(ctx, r.delays.Busy)
}

// sleep returns false if ctx was cancelled during the wait.
func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
