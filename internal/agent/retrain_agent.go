package agent

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/b0gochort/spamwarden/internal/lock"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/review"
	"github.com/b0gochort/spamwarden/internal/storeerr"
	"github.com/b0gochort/spamwarden/internal/training"
)

const retrainLockKey = "spamwarden:retrain"

// reasonThresholdNotReached marks a tick that found nothing to do. It is not
// a failure and must not be reported to the observer as one.
const reasonThresholdNotReached = "threshold not reached"

// RetrainDelays configures the periodic retrain check and its error
// backoff.
type RetrainDelays struct {
	CheckInterval time.Duration
	ErrorBackoff  time.Duration
}

func DefaultRetrainDelays() RetrainDelays {
	return RetrainDelays{
		CheckInterval: 10 * time.Second,
		ErrorBackoff:  5 * time.Second,
	}
}

// RetrainAgentRunner periodically checks the gold counter and trains a new
// model version when the configured threshold is crossed.
type RetrainAgentRunner struct {
	review          *review.Service
	training        *training.Service
	locker          lock.Locker
	defaultTemplate models.TrainTemplate
	observer        Observer
	delays          RetrainDelays
	logger          *zap.Logger
}

func NewRetrainAgentRunner(rv *review.Service, tr *training.Service, locker lock.Locker, defaultTemplate models.TrainTemplate, observer Observer, delays RetrainDelays, logger *zap.Logger) *RetrainAgentRunner {
	if observer == nil {
		observer = NopObserver{}
	}
	return &RetrainAgentRunner{
		review:          rv,
		training:        tr,
		locker:          locker,
		defaultTemplate: defaultTemplate,
		observer:        observer,
		delays:          delays,
		logger:          logger,
	}
}

func (r *RetrainAgentRunner) Run(ctx context.Context) {
	r.logger.Info("retrain agent started")
	for {
		if ctx.Err() != nil {
			r.logger.Info("retrain agent stopped")
			return
		}
		if !r.tick(ctx) {
			return
		}
	}
}

// Tick runs one check-decide-train iteration outside Run. Unlike the loop's
// own ticks it neither notifies the observer nor sleeps afterwards.
func (r *RetrainAgentRunner) Tick(ctx context.Context) RetrainEvent {
	event, _ := r.tickWithErr(ctx)
	return event
}

// ForceRetrain bypasses the counter check; used by the operator HTTP API.
func (r *RetrainAgentRunner) ForceRetrain(ctx context.Context, template models.TrainTemplate, activate bool) RetrainEvent {
	event, _ := r.runTraining(ctx, template, activate)
	return event
}

func (r *RetrainAgentRunner) tickWithErr(ctx context.Context) (RetrainEvent, error) {
	should, _, _, err := r.review.CheckAutoRetrain(ctx)
	if err != nil {
		return RetrainEvent{Success: false, Reason: err.Error(), Timestamp: time.Now().UTC()}, err
	}
	if !should {
		return RetrainEvent{Success: false, Reason: reasonThresholdNotReached, Timestamp: time.Now().UTC()}, nil
	}
	return r.runTraining(ctx, r.defaultTemplate, true)
}

func (r *RetrainAgentRunner) runTraining(ctx context.Context, template models.TrainTemplate, activate bool) (RetrainEvent, error) {
	if r.locker != nil {
		unlock, ok, err := r.locker.TryLock(ctx, retrainLockKey)
		if err != nil {
			return RetrainEvent{Success: false, Reason: err.Error(), Timestamp: time.Now().UTC()}, err
		}
		if !ok {
			return RetrainEvent{Success: false, Reason: "another training is in progress", Timestamp: time.Now().UTC()}, nil
		}
		defer unlock()
	}

	mv, err := r.training.TrainModel(ctx, template, activate)
	if err != nil {
		return RetrainEvent{Template: template, Success: false, Reason: err.Error(), Timestamp: time.Now().UTC()}, err
	}

	return RetrainEvent{
		NewVersion: mv.Version,
		Metrics: models.Metrics{
			Accuracy:  mv.Accuracy,
			Precision: mv.Precision,
			Recall:    mv.Recall,
			F1:        mv.F1,
		},
		Template:  template,
		Activated: activate,
		Success:   true,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (r *RetrainAgentRunner) tick(ctx context.Context) bool {
	event, err := r.tickWithErr(ctx)
	if event.Reason != reasonThresholdNotReached {
		r.observer.OnRetrained(event)
	}

	if storeerr.KindOf(err) == storeerr.KindCancelled {
		return false
	}

	delay := r.delays.CheckInterval
	if !event.Success && event.Reason != reasonThresholdNotReached {
		r.logger.Warn("retrain tick failed", zap.String("reason", event.Reason))
		delay = r.delays.ErrorBackoff
	}
	return sleep(ctx, delay)
}
