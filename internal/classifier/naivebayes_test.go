package classifier

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []Sample {
	return []Sample{
		{Text: "WIN FREE IPHONE NOW click here", IsSpam: true},
		{Text: "free cash prize claim now", IsSpam: true},
		{Text: "congratulations you won a free lottery ticket", IsSpam: true},
		{Text: "urgent claim your free prize today", IsSpam: true},
		{Text: "hey are we still on for lunch tomorrow", IsSpam: false},
		{Text: "can you send me the report before noon", IsSpam: false},
		{Text: "mom says dinner is at seven", IsSpam: false},
		{Text: "meeting moved to the conference room", IsSpam: false},
	}
}

func TestNaiveBayesTrainAndPredict(t *testing.T) {
	ctx := context.Background()
	c := NewNaiveBayes()
	artifact := filepath.Join(t.TempDir(), "model.gob")

	require.NoError(t, c.Train(ctx, trainingSamples(), artifact))

	pSpam, err := c.Predict(ctx, "free free free win a prize now")
	require.NoError(t, err)
	assert.Greater(t, pSpam, 0.5)

	pHam, err := c.Predict(ctx, "see you at the meeting tomorrow")
	require.NoError(t, err)
	assert.Less(t, pHam, 0.5)
}

func TestNaiveBayesEmptyTrainingSet(t *testing.T) {
	c := NewNaiveBayes()
	err := c.Train(context.Background(), nil, filepath.Join(t.TempDir(), "model.gob"))
	require.ErrorIs(t, err, ErrEmptyTrainingSet)
}

func TestNaiveBayesPredictWithoutLoad(t *testing.T) {
	c := NewNaiveBayes()
	_, err := c.Predict(context.Background(), "anything")
	require.ErrorIs(t, err, ErrNotLoaded)
}

func TestNaiveBayesLoadPersistedArtifact(t *testing.T) {
	ctx := context.Background()
	artifact := filepath.Join(t.TempDir(), "model.gob")

	trainer := NewNaiveBayes()
	require.NoError(t, trainer.Train(ctx, trainingSamples(), artifact))

	loaded := NewNaiveBayes()
	require.NoError(t, loaded.Load(ctx, artifact))

	p, err := loaded.Predict(ctx, "free prize claim now")
	require.NoError(t, err)
	assert.Greater(t, p, 0.5)
}

func TestNaiveBayesEvaluate(t *testing.T) {
	ctx := context.Background()
	c := NewNaiveBayes()
	artifact := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, c.Train(ctx, trainingSamples(), artifact))

	metrics, err := c.Evaluate(ctx, trainingSamples())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, metrics.Accuracy, 0.5)
	assert.GreaterOrEqual(t, metrics.F1, 0.0)
}
