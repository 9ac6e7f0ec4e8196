// Package store defines the durable persistence contract shared by the
// Postgres and SQLite backends. Every mutation the rest of the system makes
// goes through a Store; no component holds a cached copy of entity state
// across ticks.
package store

import (
	"context"
	"time"

	"github.com/b0gochort/spamwarden/internal/models"
)

// Store is implemented by internal/store/postgres and internal/store/sqlite.
// Both back the same schema and error taxonomy (internal/storeerr).
type Store interface {
	// Messages
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessage(ctx context.Context, id int64) (*models.Message, error)
	ClaimNextQueued(ctx context.Context) (*models.Message, error)
	FinishScoring(ctx context.Context, msgID int64, status models.MessageStatus, modelVersionID int64, pred *models.Prediction) error
	CountRuntimeByStatus(ctx context.Context) (map[models.MessageStatus]int, error)

	SelectUnconsumedValidation(ctx context.Context, limit int) ([]*models.Message, error)
	ResetConsumedValidation(ctx context.Context) error
	CopyDatasetRowsAsRuntime(ctx context.Context, rows []*models.Message, copyLabel bool) ([]*models.Message, error)

	// Dataset import
	HasDatasetMessages(ctx context.Context) (bool, error)
	DeleteDatasetMessages(ctx context.Context) error
	BulkInsertDatasetMessages(ctx context.Context, rows []*models.Message) error
	SelectTrainPool(ctx context.Context, limit int) ([]*models.Message, error)
	SelectValidationHoldout(ctx context.Context) ([]*models.Message, error)
	SelectGoldMessages(ctx context.Context) ([]*models.Message, error)

	// Reviews
	CreateReview(ctx context.Context, review *models.Review, newStatus models.MessageStatus) error
	GetReviewByMessage(ctx context.Context, msgID int64) (*models.Review, error)

	// Model versions
	NextModelVersion(ctx context.Context) (int64, error)
	CreateModelVersion(ctx context.Context, mv *models.ModelVersion) error
	ActivateModelVersion(ctx context.Context, versionID int64) error
	GetActiveModelVersion(ctx context.Context) (*models.ModelVersion, error)
	GetModelVersion(ctx context.Context, versionID int64) (*models.ModelVersion, error)
	ListModelVersions(ctx context.Context) ([]*models.ModelVersion, error)

	// Settings
	GetSettings(ctx context.Context) (*models.SystemSettings, error)
	UpdateSettings(ctx context.Context, s *models.SystemSettings) error
	ResetGoldCounter(ctx context.Context, at time.Time) error

	Close() error
}
