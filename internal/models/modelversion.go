package models

import "time"

// TrainTemplate is a sizing preset controlling the training-set cap.
type TrainTemplate string

const (
	TemplateLight  TrainTemplate = "light"
	TemplateMedium TrainTemplate = "medium"
	TemplateFull   TrainTemplate = "full"
)

// Size returns the training-set cap for a template. Full has no cap
// and is represented by -1; callers treat a negative size as unbounded.
func (t TrainTemplate) Size() int {
	switch t {
	case TemplateLight:
		return 500
	case TemplateMedium:
		return 2000
	default:
		return -1 // unbounded
	}
}

// Metrics are evaluation results against the frozen validation holdout.
type Metrics struct {
	Accuracy  float64 `db:"accuracy"`
	Precision float64 `db:"precision"`
	Recall    float64 `db:"recall"`
	F1        float64 `db:"f1"`
	TP        int     `db:"-"`
	TN        int     `db:"-"`
	FP        int     `db:"-"`
	FN        int     `db:"-"`
}

// ModelVersion is the artifact produced by one training run.
type ModelVersion struct {
	ID                 int64         `db:"id"`
	Version            int64         `db:"version"`
	TrainTemplate      TrainTemplate `db:"train_template"`
	TrainSetSize       int           `db:"train_set_size"`
	GoldIncludedCount  int           `db:"gold_included_count"`
	ValidationSetSize  int           `db:"validation_set_size"`
	Accuracy           float64       `db:"accuracy"`
	Precision          float64       `db:"precision"`
	Recall             float64       `db:"recall"`
	F1                 float64       `db:"f1"`
	ThresholdAllow     float64       `db:"threshold_allow"`
	ThresholdBlock     float64       `db:"threshold_block"`
	ArtifactPath       string        `db:"artifact_path"`
	CreatedAt          time.Time     `db:"created_at"`
	IsActive           bool          `db:"is_active"`
}
