package scoring

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
)

func TestDecideBoundaries(t *testing.T) {
	allow, block := 0.30, 0.70

	dAllow, _ := decide(0.29, allow, block)
	require.Equal(t, models.DecisionAllow, dAllow)

	dReview, _ := decide(0.30, allow, block)
	require.Equal(t, models.DecisionPendingReview, dReview, "exactly at allow threshold is PendingReview, strict < on allow")

	dBlock, _ := decide(0.70, allow, block)
	require.Equal(t, models.DecisionBlock, dBlock, "exactly at block threshold is Block, non-strict >= on block")
}

func TestDecideEmptyReviewZoneWhenThresholdsEqual(t *testing.T) {
	d, _ := decide(0.5, 0.5, 0.5)
	require.Equal(t, models.DecisionBlock, d)
}

func TestIsCorrect(t *testing.T) {
	trueVal := true
	falseVal := false

	require.Equal(t, &trueVal, isCorrect(models.LabelHam, models.DecisionAllow))
	require.Equal(t, &trueVal, isCorrect(models.LabelSpam, models.DecisionBlock))
	require.Nil(t, isCorrect(models.LabelHam, models.DecisionPendingReview))
	require.Equal(t, &falseVal, isCorrect(models.LabelSpam, models.DecisionAllow))
}

func TestScoreMessageFailsWithoutActiveVersion(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := sqlite.New(db, nil)

	svc := New(st, classifier.NewNaiveBayes(), t.TempDir())
	msg := &models.Message{Text: "hello", Source: models.SourceRuntime, Status: models.StatusProcessing}
	require.NoError(t, st.CreateMessage(ctx, msg))

	_, err = svc.ScoreMessage(ctx, msg)
	require.Error(t, err)
}

func TestScoreMessagePersistsPredictionAndStatus(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := sqlite.New(db, nil)

	c := classifier.NewNaiveBayes()
	artifact := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, c.Train(ctx, []classifier.Sample{
		{Text: "free prize claim now", IsSpam: true},
		{Text: "lunch tomorrow at noon", IsSpam: false},
	}, artifact))
	mv := &models.ModelVersion{
		Version:        1,
		TrainTemplate:  models.TemplateLight,
		ThresholdAllow: 0.30,
		ThresholdBlock: 0.70,
		ArtifactPath:   artifact,
		IsActive:       false,
	}
	require.NoError(t, st.CreateModelVersion(ctx, mv))
	require.NoError(t, st.ActivateModelVersion(ctx, mv.ID))

	msg := &models.Message{Text: "claim your free prize now", Source: models.SourceRuntime, Status: models.StatusProcessing}
	require.NoError(t, st.CreateMessage(ctx, msg))

	svc := New(st, c, t.TempDir())
	result, err := svc.ScoreMessage(ctx, msg)
	require.NoError(t, err)
	require.Contains(t, []models.MessageStatus{models.StatusInSpam, models.StatusPendingReview, models.StatusInInbox}, result.NewStatus)

	stored, err := st.GetMessage(ctx, msg.ID)
	require.NoError(t, err)
	require.Equal(t, result.NewStatus, stored.Status)
}
