// Package classifier defines the opaque text-classification capability the
// training and scoring services depend on, plus a concrete bag-of-words
// implementation.
package classifier

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/b0gochort/spamwarden/internal/models"
)

// ArtifactPath derives the on-disk path for a model version's artifact.
func ArtifactPath(modelsDir string, version int64) string {
	return filepath.Join(modelsDir, "model_v"+strconv.FormatInt(version, 10)+".gob")
}

// Sample is one labeled training or evaluation example.
type Sample struct {
	Text   string
	IsSpam bool
}

// Metrics is the result of Evaluate.
type Metrics = models.Metrics

// Classifier is the capability contract. Concrete implementations are
// swappable without touching the agent runners: the training service calls
// Train/Evaluate, the scoring service calls Load/Predict.
type Classifier interface {
	// Train fits a new model on samples and persists it to artifactPath.
	Train(ctx context.Context, samples []Sample, artifactPath string) error
	// Evaluate scores samples against the currently loaded model.
	Evaluate(ctx context.Context, samples []Sample) (Metrics, error)
	// Load reads a persisted model from artifactPath into memory, replacing
	// whatever was previously loaded. Safe to call concurrently with Predict.
	Load(ctx context.Context, artifactPath string) error
	// Predict returns P(spam) for text. Requires a prior Load or Train.
	Predict(ctx context.Context, text string) (float64, error)
}
