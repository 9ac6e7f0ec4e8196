package mutex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTryLockExclusive(t *testing.T) {
	l := New()
	ctx := context.Background()

	unlock, ok, err := l.TryLock(ctx, "retrain")
	require.NoError(t, err)
	require.True(t, ok)

	_, ok2, err := l.TryLock(ctx, "retrain")
	require.NoError(t, err)
	require.False(t, ok2)

	unlock()

	_, ok3, err := l.TryLock(ctx, "retrain")
	require.NoError(t, err)
	require.True(t, ok3)
}
