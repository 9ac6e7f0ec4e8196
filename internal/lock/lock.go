// Package lock provides the pluggable serialization primitive that the
// retrain agent uses to avoid overlapping trainings.
package lock

import "context"

// Locker attempts to acquire an exclusive hold on key. ok is false if
// something else currently holds it; unlock is nil in that case. Callers
// that get ok=true must call unlock exactly once when done.
type Locker interface {
	TryLock(ctx context.Context, key string) (unlock func(), ok bool, err error)
}
