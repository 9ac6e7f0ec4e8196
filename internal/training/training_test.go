package training

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
)

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.New(db, nil)
}

func seedDataset(t *testing.T, st *sqlite.Store) {
	t.Helper()
	rows := []*models.Message{
		{Text: "free prize claim now", Source: models.SourceDataset, Split: models.SplitTrainPool, TrueLabel: models.LabelSpam, Status: models.StatusDataset},
		{Text: "win free iphone now", Source: models.SourceDataset, Split: models.SplitTrainPool, TrueLabel: models.LabelSpam, Status: models.StatusDataset},
		{Text: "lunch tomorrow at noon", Source: models.SourceDataset, Split: models.SplitTrainPool, TrueLabel: models.LabelHam, Status: models.StatusDataset},
		{Text: "meeting moved to room b", Source: models.SourceDataset, Split: models.SplitTrainPool, TrueLabel: models.LabelHam, Status: models.StatusDataset},
		{Text: "call me back please", Source: models.SourceDataset, Split: models.SplitValidationHoldout, TrueLabel: models.LabelHam, Status: models.StatusDataset},
		{Text: "urgent claim your prize", Source: models.SourceDataset, Split: models.SplitValidationHoldout, TrueLabel: models.LabelSpam, Status: models.StatusDataset},
	}
	require.NoError(t, st.BulkInsertDatasetMessages(context.Background(), rows))
}

func TestTrainModelEmptyPoolFails(t *testing.T) {
	st := newStore(t)
	svc := New(st, classifier.NewNaiveBayes(), t.TempDir(), nil)

	_, err := svc.TrainModel(context.Background(), models.TemplateFull, false)
	require.Error(t, err)
}

func TestTrainModelHappyPathActivates(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedDataset(t, st)

	svc := New(st, classifier.NewNaiveBayes(), t.TempDir(), nil)
	mv, err := svc.TrainModel(ctx, models.TemplateLight, true)
	require.NoError(t, err)
	require.Equal(t, int64(1), mv.Version)
	require.Equal(t, 4, mv.TrainSetSize)
	require.Equal(t, 2, mv.ValidationSetSize)

	active, err := st.GetActiveModelVersion(ctx)
	require.NoError(t, err)
	require.Equal(t, mv.ID, active.ID)

	settings, err := st.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, settings.NewGoldSinceLastTrain)
}

func TestTrainModelIncludesGoldMessages(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedDataset(t, st)

	// simulate a runtime message that went through review and became gold
	msg := &models.Message{Text: "grandma needs help with groceries", Source: models.SourceRuntime, Status: models.StatusQueued}
	require.NoError(t, st.CreateMessage(ctx, msg))
	review := &models.Review{MessageID: msg.ID, Label: models.LabelHam, ReviewedBy: "mod1"}
	require.NoError(t, st.CreateReview(ctx, review, models.StatusInInbox))

	svc := New(st, classifier.NewNaiveBayes(), t.TempDir(), nil)
	mv, err := svc.TrainModel(ctx, models.TemplateLight, false)
	require.NoError(t, err)
	require.Equal(t, 1, mv.GoldIncludedCount)
	require.Equal(t, 5, mv.TrainSetSize) // 4 pool rows + 1 gold row
}

func TestForceRetrainWithEmptyGoldPool(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedDataset(t, st)

	svc := New(st, classifier.NewNaiveBayes(), t.TempDir(), nil)
	mv, err := svc.ForceRetrain(ctx, models.TemplateFull, true)
	require.NoError(t, err)
	require.Equal(t, 0, mv.GoldIncludedCount)

	settings, err := st.GetSettings(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, settings.NewGoldSinceLastTrain)
	require.NotNil(t, settings.ActiveModelVersionID)
}

func TestHoldoutStabilityAcrossTrainings(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	seedDataset(t, st)

	svc := New(st, classifier.NewNaiveBayes(), t.TempDir(), nil)
	first, err := svc.TrainModel(ctx, models.TemplateMedium, false)
	require.NoError(t, err)
	second, err := svc.TrainModel(ctx, models.TemplateLight, false)
	require.NoError(t, err)

	require.Equal(t, first.ValidationSetSize, second.ValidationSetSize)
	require.Equal(t, int64(2), second.Version)
}
