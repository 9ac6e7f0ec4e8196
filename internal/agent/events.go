package agent

import (
	"time"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/scoring"
)

// ScoringEvent is the fire-and-forget record a scoring tick emits. Delivery
// has no ordering guarantee across event kinds; observers are plug-ins
// outside the runtime's scope.
type ScoringEvent struct {
	scoring.Result
	Timestamp time.Time
}

// RetrainEvent is the record a retrain tick emits, successful or not.
type RetrainEvent struct {
	NewVersion int64
	Metrics    models.Metrics
	Template   models.TrainTemplate
	Activated  bool
	Success    bool
	Reason     string
	Timestamp  time.Time
}

// Observer receives events from the runners. Implementations must not block
// for long; the runner does not fan out concurrently.
type Observer interface {
	OnScored(ScoringEvent)
	OnRetrained(RetrainEvent)
}

// NopObserver discards every event. Useful as a default and in tests.
type NopObserver struct{}

func (NopObserver) OnScored(ScoringEvent)   {}
func (NopObserver) OnRetrained(RetrainEvent) {}
