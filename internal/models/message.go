package models

import "time"

// MessageSource distinguishes imported dataset rows from runtime traffic.
type MessageSource string

const (
	SourceDataset MessageSource = "dataset"
	SourceRuntime MessageSource = "runtime"
)

// MessageSplit marks which half of the imported dataset a row belongs to.
// Runtime messages carry SplitNone.
type MessageSplit string

const (
	SplitTrainPool         MessageSplit = "train_pool"
	SplitValidationHoldout MessageSplit = "validation_holdout"
	SplitNone              MessageSplit = ""
)

// Label is a ground-truth or predicted spam/ham label.
type Label string

const (
	LabelHam  Label = "ham"
	LabelSpam Label = "spam"
	LabelNone Label = ""
)

// MessageStatus is the lifecycle state of a Message (spec §3).
type MessageStatus string

const (
	StatusDataset       MessageStatus = "dataset"
	StatusQueued        MessageStatus = "queued"
	StatusProcessing    MessageStatus = "processing"
	StatusInInbox       MessageStatus = "in_inbox"
	StatusInSpam        MessageStatus = "in_spam"
	StatusPendingReview MessageStatus = "pending_review"
)

// Message is the unit of work flowing through the queue.
type Message struct {
	ID                 int64         `db:"id"`
	Text               string        `db:"text"`
	Source             MessageSource `db:"source"`
	Split              MessageSplit  `db:"split"`
	TrueLabel          Label         `db:"true_label"`
	Status             MessageStatus `db:"status"`
	CreatedAt          time.Time     `db:"created_at"`
	LastModelVersionID *int64        `db:"last_model_version_id"`
	Consumed           bool          `db:"consumed"`
}
