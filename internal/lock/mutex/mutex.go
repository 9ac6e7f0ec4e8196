// Package mutex is the default in-process Locker: sufficient for a single
// host running one retrain agent.
package mutex

import (
	"context"
	"sync"
)

type Locker struct {
	mu sync.Mutex
}

func New() *Locker {
	return &Locker{}
}

// TryLock never blocks: it reports ok=false immediately if the mutex is
// already held rather than waiting, matching the Redis-backed Locker's
// non-blocking contract.
func (l *Locker) TryLock(ctx context.Context, key string) (func(), bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}
	return l.mu.Unlock, true, nil
}
