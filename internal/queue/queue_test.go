package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.New(db, nil)
}

func TestEnqueueRejectsEmptyText(t *testing.T) {
	svc := New(newTestStore(t))
	_, err := svc.Enqueue(context.Background(), "")
	require.Error(t, err)
}

func TestClaimNextExclusiveUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	svc := New(newTestStore(t))

	_, err := svc.Enqueue(ctx, "WIN FREE IPHONE NOW!!!")
	require.NoError(t, err)

	var wg sync.WaitGroup
	claims := make([]*models.Message, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			msg, err := svc.ClaimNext(ctx)
			require.NoError(t, err)
			claims[i] = msg
		}(i)
	}
	wg.Wait()

	nonNil := 0
	for _, c := range claims {
		if c != nil {
			nonNil++
		}
	}
	require.Equal(t, 1, nonNil, "exactly one worker should claim the single queued message")
}

func TestClaimNextReturnsNilWhenEmpty(t *testing.T) {
	svc := New(newTestStore(t))
	msg, err := svc.ClaimNext(context.Background())
	require.NoError(t, err)
	require.Nil(t, msg)
}

func TestCountsReflectsRuntimeStatuses(t *testing.T) {
	ctx := context.Background()
	svc := New(newTestStore(t))

	_, err := svc.Enqueue(ctx, "hello there")
	require.NoError(t, err)

	counts, err := svc.Counts(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, counts[models.StatusQueued])
}
