// Package review implements moderator verdict recording and the auto-retrain
// trigger check.
package review

import (
	"context"
	"errors"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

var (
	errInvalidLabel    = errors.New("review label must be ham or spam")
	errAlreadyReviewed = errors.New("message already has a review")
)

type Service struct {
	st store.Store
}

func New(st store.Store) *Service {
	return &Service{st: st}
}

// AddReview writes a moderator's gold label, moves the message to its
// terminal status, and increments the retrain counter, atomically.
func (s *Service) AddReview(ctx context.Context, messageID int64, label models.Label, reviewedBy, note string) (*models.Review, error) {
	if label != models.LabelHam && label != models.LabelSpam {
		return nil, storeerr.InvalidInput("AddReview", errInvalidLabel)
	}

	if _, err := s.st.GetMessage(ctx, messageID); err != nil {
		return nil, err
	}
	if _, err := s.st.GetReviewByMessage(ctx, messageID); err == nil {
		return nil, storeerr.Conflict("AddReview", errAlreadyReviewed)
	} else if storeerr.KindOf(err) != storeerr.KindNotFound {
		return nil, err
	}

	newStatus := models.StatusInInbox
	if label == models.LabelSpam {
		newStatus = models.StatusInSpam
	}

	review := &models.Review{
		MessageID:  messageID,
		Label:      label,
		ReviewedBy: reviewedBy,
		Note:       note,
	}
	if err := s.st.CreateReview(ctx, review, newStatus); err != nil {
		return nil, err
	}
	return review, nil
}

// CheckAutoRetrain reports whether the retrain runner should be triggered
// synchronously right now, given the current settings snapshot.
func (s *Service) CheckAutoRetrain(ctx context.Context) (shouldTrigger bool, current, threshold int, err error) {
	settings, err := s.st.GetSettings(ctx)
	if err != nil {
		return false, 0, 0, err
	}
	current = settings.NewGoldSinceLastTrain
	threshold = settings.RetrainGoldThreshold
	shouldTrigger = settings.AutoRetrainEnabled && threshold > 0 && current >= threshold
	return shouldTrigger, current, threshold, nil
}
