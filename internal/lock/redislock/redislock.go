// Package redislock is the multi-host Locker: a SETNX-with-TTL acquire and
// a Lua compare-and-delete release, so a training run started on one host
// is visible to the retrain agents on every other host sharing the same
// Redis instance.
package redislock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
else
	return 0
end
`)

type Locker struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client) *Locker {
	return &Locker{client: client, ttl: defaultTTL}
}

func (l *Locker) TryLock(ctx context.Context, key string) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func() {
		unlockCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		unlockScript.Run(unlockCtx, l.client, []string{key}, token)
	}
	return unlock, true, nil
}
