package models

import "time"

// Review is a moderator's gold label for a message. At most one exists per
// message (enforced by a unique index on message_id).
type Review struct {
	ID         int64     `db:"id"`
	MessageID  int64     `db:"message_id"`
	Label      Label     `db:"label"`
	ReviewedBy string    `db:"reviewed_by"`
	ReviewedAt time.Time `db:"reviewed_at"`
	Note       string    `db:"note"`
}
