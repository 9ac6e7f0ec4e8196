package agent

import (
	"context"
	"time"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/scoring"
)

// Perception senses the environment and produces an observation. The
// production ScoringAgentRunner does not implement this quartet at
// runtime — it is a design illustration referenced from documentation, and
// one example instantiation below binds it to the scoring pipeline.
type Perception[Observation any] interface {
	Perceive(ctx context.Context) (Observation, error)
}

// Policy maps an observation to an intended action.
type Policy[Observation, Action any] interface {
	Decide(observation Observation) Action
}

// Actuator carries out an action against the world.
type Actuator[Action, Outcome any] interface {
	Act(ctx context.Context, action Action) (Outcome, error)
}

// Learner updates internal state from an outcome, closing the feedback
// loop.
type Learner[Outcome any] interface {
	Learn(ctx context.Context, outcome Outcome) error
}

// SoftwareAgent composes the four roles into one sense-decide-act-learn
// cycle. Step runs exactly one iteration; callers loop it themselves.
type SoftwareAgent[Observation, Action, Outcome any] struct {
	Perception Perception[Observation]
	Policy     Policy[Observation, Action]
	Actuator   Actuator[Action, Outcome]
	Learner    Learner[Outcome]
}

func (a *SoftwareAgent[Observation, Action, Outcome]) Step(ctx context.Context) (Outcome, error) {
	var zero Outcome
	obs, err := a.Perception.Perceive(ctx)
	if err != nil {
		return zero, err
	}
	action := a.Policy.Decide(obs)
	outcome, err := a.Actuator.Act(ctx, action)
	if err != nil {
		return zero, err
	}
	if a.Learner != nil {
		if err := a.Learner.Learn(ctx, outcome); err != nil {
			return outcome, err
		}
	}
	return outcome, nil
}

// queuePerception adapts queue.Service into Perception: one claim attempt,
// possibly returning a nil message when the queue is empty.
type queuePerception struct {
	queue *queue.Service
}

func (p queuePerception) Perceive(ctx context.Context) (*models.Message, error) {
	return p.queue.ClaimNext(ctx)
}

// claimedMessagePolicy passes the claimed message straight through; the
// scoring decision itself lives in scoring.Service, not in this Policy.
type claimedMessagePolicy struct{}

func (claimedMessagePolicy) Decide(msg *models.Message) *models.Message {
	return msg
}

// scoringActuator adapts scoring.Service into Actuator. A nil message (empty
// queue) is a no-op outcome rather than an error.
type scoringActuator struct {
	scoring *scoring.Service
}

func (a scoringActuator) Act(ctx context.Context, msg *models.Message) (scoring.Result, error) {
	if msg == nil {
		return scoring.Result{}, nil
	}
	return a.scoring.ScoreMessage(ctx, msg)
}

// observerLearner adapts an Observer into Learner, closing the loop by
// reporting every scored outcome the same way ScoringAgentRunner does.
type observerLearner struct {
	observer Observer
}

func (l observerLearner) Learn(_ context.Context, outcome scoring.Result) error {
	if outcome.MessageID == 0 {
		return nil
	}
	l.observer.OnScored(ScoringEvent{Result: outcome, Timestamp: time.Now().UTC()})
	return nil
}

// NewScoringSoftwareAgent binds the sense-decide-act-learn quartet to the
// real claim-score-observe pipeline. ScoringAgentRunner remains the runtime
// loop; this is the example instantiation showing the pattern applies to it.
func NewScoringSoftwareAgent(q *queue.Service, sc *scoring.Service, observer Observer) *SoftwareAgent[*models.Message, *models.Message, scoring.Result] {
	if observer == nil {
		observer = NopObserver{}
	}
	return &SoftwareAgent[*models.Message, *models.Message, scoring.Result]{
		Perception: queuePerception{queue: q},
		Policy:     claimedMessagePolicy{},
		Actuator:   scoringActuator{scoring: sc},
		Learner:    observerLearner{observer: observer},
	}
}
