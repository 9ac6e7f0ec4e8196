// Package training assembles training and validation sets, drives the
// classifier through a training run, and persists/activates model versions.
package training

import (
	"context"
	"errors"
	"time"

	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

var errEmptyTrainingSet = errors.New("training set is empty")

// activator is implemented by scoring.Service; kept as a narrow interface
// here so this package doesn't import scoring.
type activator interface {
	NotifyActivated()
}

type Service struct {
	st         store.Store
	classifier classifier.Classifier
	modelsDir  string
	scorer     activator // nil is fine; used only to invalidate the scoring cache
}

func New(st store.Store, c classifier.Classifier, modelsDir string, scorer activator) *Service {
	return &Service{st: st, classifier: c, modelsDir: modelsDir, scorer: scorer}
}

// TrainModel assembles the training/validation sets, trains, evaluates on
// the frozen holdout, persists a new ModelVersion, and optionally activates
// it.
func (s *Service) TrainModel(ctx context.Context, template models.TrainTemplate, activate bool) (*models.ModelVersion, error) {
	trainPool, err := s.st.SelectTrainPool(ctx, template.Size())
	if err != nil {
		return nil, err
	}
	goldRows, err := s.st.SelectGoldMessages(ctx)
	if err != nil {
		return nil, err
	}
	trainRows := append(trainPool, goldRows...)

	if len(trainRows) == 0 {
		return nil, storeerr.InvalidState("TrainModel", errEmptyTrainingSet)
	}

	validationRows, err := s.st.SelectValidationHoldout(ctx)
	if err != nil {
		return nil, err
	}

	select {
	case <-ctx.Done():
		return nil, storeerr.Cancelled("TrainModel", ctx.Err())
	default:
	}

	version, err := s.st.NextModelVersion(ctx)
	if err != nil {
		return nil, err
	}
	artifactPath := classifier.ArtifactPath(s.modelsDir, version)

	if err := s.classifier.Train(ctx, toSamples(trainRows), artifactPath); err != nil {
		return nil, storeerr.TrainingFailed("TrainModel", err)
	}

	metrics, err := s.classifier.Evaluate(ctx, toSamples(validationRows))
	if err != nil {
		return nil, storeerr.TrainingFailed("TrainModel", err)
	}

	settings, err := s.st.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	mv := &models.ModelVersion{
		Version:           version,
		TrainTemplate:     template,
		TrainSetSize:      len(trainRows),
		GoldIncludedCount: len(goldRows),
		ValidationSetSize: len(validationRows),
		Accuracy:          metrics.Accuracy,
		Precision:         metrics.Precision,
		Recall:            metrics.Recall,
		F1:                metrics.F1,
		ThresholdAllow:    settings.ThresholdAllow,
		ThresholdBlock:    settings.ThresholdBlock,
		ArtifactPath:      artifactPath,
		IsActive:          false,
	}
	if err := s.st.CreateModelVersion(ctx, mv); err != nil {
		return nil, err
	}

	if activate {
		if err := s.ActivateModel(ctx, mv.ID); err != nil {
			return mv, err
		}
	}

	// Resets to zero, not decremented by the count seen at train start; any
	// review recorded while training ran counts toward the next cycle.
	if err := s.st.ResetGoldCounter(ctx, time.Now().UTC()); err != nil {
		return mv, err
	}

	return mv, nil
}

// ActivateModel atomically flips the active pointer, then instructs the
// classifier to load the new artifact. The load happens outside the
// transaction; a scoring tick that races it will re-check on its next call.
func (s *Service) ActivateModel(ctx context.Context, versionID int64) error {
	if err := s.st.ActivateModelVersion(ctx, versionID); err != nil {
		return err
	}
	mv, err := s.st.GetModelVersion(ctx, versionID)
	if err != nil {
		return err
	}
	if err := s.classifier.Load(ctx, mv.ArtifactPath); err != nil {
		return storeerr.New("ActivateModel", storeerr.KindTransient, err)
	}
	if s.scorer != nil {
		s.scorer.NotifyActivated()
	}
	return nil
}

// ForceRetrain bypasses the counter check; it exists for operator-initiated
// retraining and shares TrainModel's path.
func (s *Service) ForceRetrain(ctx context.Context, template models.TrainTemplate, activate bool) (*models.ModelVersion, error) {
	return s.TrainModel(ctx, template, activate)
}

func toSamples(rows []*models.Message) []classifier.Sample {
	samples := make([]classifier.Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, classifier.Sample{Text: r.Text, IsSpam: r.TrueLabel == models.LabelSpam})
	}
	return samples
}
