// Package scoring applies the three-zone decision policy to a claimed
// message using the currently active classifier version.
package scoring

import (
	"context"
	"sync"

	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

// Result is the outward-facing record emitted after one scoring attempt.
type Result struct {
	MessageID int64
	Text      string
	PSpam     float64
	Decision  models.Decision
	NewStatus models.MessageStatus
	TrueLabel models.Label
	IsCorrect *bool // nil means "not determinable" (PendingReview)
}

// Service loads the active model on demand and keeps it warm across ticks;
// it re-loads whenever the active version changes.
type Service struct {
	st          store.Store
	classifier  classifier.Classifier
	modelsDir   string
	mu          sync.Mutex
	loadedVerID int64
}

func New(st store.Store, c classifier.Classifier, modelsDir string) *Service {
	return &Service{st: st, classifier: c, modelsDir: modelsDir}
}

// ensureLoaded makes sure the classifier holds the currently active version,
// loading it if this is the first tick or the active version changed since
// the last one. Returns the active model version.
func (s *Service) ensureLoaded(ctx context.Context) (*models.ModelVersion, error) {
	active, err := s.st.GetActiveModelVersion(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadedVerID == active.ID {
		return active, nil
	}
	if err := s.classifier.Load(ctx, active.ArtifactPath); err != nil {
		return nil, storeerr.New("ensureLoaded", storeerr.KindTransient, err)
	}
	s.loadedVerID = active.ID
	return active, nil
}

// IsReady reports whether an active model version exists, without loading
// anything. The scoring runner checks this before claiming a message so it
// never leaves a message stuck Processing while no model is active.
func (s *Service) IsReady(ctx context.Context) bool {
	_, err := s.st.GetActiveModelVersion(ctx)
	return err == nil
}

// NotifyActivated forces the next ScoreMessage to reload the classifier
// instead of waiting for the version check, so a freshly activated model is
// picked up promptly.
func (s *Service) NotifyActivated() {
	s.mu.Lock()
	s.loadedVerID = 0
	s.mu.Unlock()
}

// ScoreMessage assumes message.Status is already Processing (claimed).
func (s *Service) ScoreMessage(ctx context.Context, message *models.Message) (Result, error) {
	active, err := s.ensureLoaded(ctx)
	if err != nil {
		return Result{}, err
	}

	pSpam, err := s.classifier.Predict(ctx, message.Text)
	if err != nil {
		return Result{}, storeerr.New("ScoreMessage", storeerr.KindTransient, err)
	}

	decision, newStatus := decide(pSpam, active.ThresholdAllow, active.ThresholdBlock)

	pred := &models.Prediction{
		MessageID:      message.ID,
		ModelVersionID: active.ID,
		PSpam:          pSpam,
		Decision:       decision,
	}
	if err := s.st.FinishScoring(ctx, message.ID, newStatus, active.ID, pred); err != nil {
		return Result{}, err
	}

	return Result{
		MessageID: message.ID,
		Text:      message.Text,
		PSpam:     pSpam,
		Decision:  decision,
		NewStatus: newStatus,
		TrueLabel: message.TrueLabel,
		IsCorrect: isCorrect(message.TrueLabel, decision),
	}, nil
}

// decide applies the three-zone policy: strict < on allow, non-strict >= on
// block, so a probability sitting exactly at the allow boundary goes to
// review rather than allow.
func decide(pSpam, thresholdAllow, thresholdBlock float64) (models.Decision, models.MessageStatus) {
	switch {
	case pSpam < thresholdAllow:
		return models.DecisionAllow, models.StatusInInbox
	case pSpam >= thresholdBlock:
		return models.DecisionBlock, models.StatusInSpam
	default:
		return models.DecisionPendingReview, models.StatusPendingReview
	}
}

func isCorrect(trueLabel models.Label, decision models.Decision) *bool {
	if decision == models.DecisionPendingReview {
		return nil
	}
	t, f := true, false
	switch {
	case trueLabel == models.LabelHam && decision == models.DecisionAllow:
		return &t
	case trueLabel == models.LabelSpam && decision == models.DecisionBlock:
		return &t
	default:
		return &f
	}
}
