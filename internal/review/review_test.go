package review

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
)

func setup(t *testing.T) (*sqlite.Store, *queue.Service, *Service) {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := sqlite.New(db, nil)
	return st, queue.New(st), New(st)
}

func TestAddReviewHamMovesToInbox(t *testing.T) {
	ctx := context.Background()
	_, q, rv := setup(t)

	msg, err := q.Enqueue(ctx, "hey, lunch tomorrow?")
	require.NoError(t, err)

	_, err = rv.AddReview(ctx, msg.ID, models.LabelHam, "mod1", "")
	require.NoError(t, err)

	should, current, _, err := rv.CheckAutoRetrain(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, current)
	require.False(t, should) // default threshold is 100, far above one review
}

func TestAddReviewTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	_, q, rv := setup(t)

	msg, err := q.Enqueue(ctx, "free prize now")
	require.NoError(t, err)

	_, err = rv.AddReview(ctx, msg.ID, models.LabelSpam, "mod1", "")
	require.NoError(t, err)

	_, err = rv.AddReview(ctx, msg.ID, models.LabelHam, "mod2", "")
	require.Error(t, err)
}

func TestAddReviewRejectsInvalidLabel(t *testing.T) {
	ctx := context.Background()
	_, q, rv := setup(t)

	msg, err := q.Enqueue(ctx, "text")
	require.NoError(t, err)

	_, err = rv.AddReview(ctx, msg.ID, models.LabelNone, "mod1", "")
	require.Error(t, err)
}
