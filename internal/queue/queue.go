// Package queue implements the durable message queue: enqueue, atomic
// claim, and status-partition counts.
package queue

import (
	"context"
	"errors"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

var errEmptyText = errors.New("message text must not be empty")

type Service struct {
	st store.Store
}

func New(st store.Store) *Service {
	return &Service{st: st}
}

// Enqueue creates a new runtime message ready for scoring.
func (s *Service) Enqueue(ctx context.Context, text string) (*models.Message, error) {
	if text == "" {
		return nil, storeerr.InvalidInput("Enqueue", errEmptyText)
	}
	msg := &models.Message{
		Text:   text,
		Source: models.SourceRuntime,
		Status: models.StatusQueued,
	}
	if err := s.st.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// EnqueueFromValidation copies up to n unconsumed validation-holdout dataset
// rows into runtime Queued messages, marking the originals consumed. If the
// unconsumed pool is empty it is reset once and retried, matching the
// exactly-once-per-pass semantics of the original design.
func (s *Service) EnqueueFromValidation(ctx context.Context, n int, copyLabel bool) ([]*models.Message, error) {
	for attempt := 0; attempt < 2; attempt++ {
		candidates, err := s.st.SelectUnconsumedValidation(ctx, n)
		if err != nil {
			return nil, err
		}
		if len(candidates) == 0 {
			if attempt == 0 {
				if err := s.st.ResetConsumedValidation(ctx); err != nil {
					return nil, err
				}
				continue
			}
			return nil, nil
		}
		return s.st.CopyDatasetRowsAsRuntime(ctx, candidates, copyLabel)
	}
	return nil, nil
}

// ClaimNext atomically obtains exclusive ownership of the oldest queued
// message, or returns (nil, nil) if the queue is empty.
func (s *Service) ClaimNext(ctx context.Context) (*models.Message, error) {
	return s.st.ClaimNextQueued(ctx)
}

// Counts returns a histogram of runtime messages by status.
func (s *Service) Counts(ctx context.Context) (map[models.MessageStatus]int, error) {
	return s.st.CountRuntimeByStatus(ctx)
}
