package models

import "time"

// Decision is the outcome of the three-zone scoring policy.
type Decision string

const (
	DecisionAllow         Decision = "allow"
	DecisionPendingReview Decision = "pending_review"
	DecisionBlock         Decision = "block"
)

// Prediction is an immutable record of one scoring attempt.
type Prediction struct {
	ID             int64     `db:"id"`
	MessageID      int64     `db:"message_id"`
	ModelVersionID int64     `db:"model_version_id"`
	PSpam          float64   `db:"p_spam"`
	Decision       Decision  `db:"decision"`
	CreatedAt      time.Time `db:"created_at"`
}
