package agent

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/b0gochort/spamwarden/internal/classifier"
	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/queue"
	"github.com/b0gochort/spamwarden/internal/scoring"
	"github.com/b0gochort/spamwarden/internal/store/sqlite"
)

type fakeObserver struct {
	scored []ScoringEvent
}

func (f *fakeObserver) OnScored(ev ScoringEvent) { f.scored = append(f.scored, ev) }
func (f *fakeObserver) OnRetrained(RetrainEvent) {}

func TestScoringSoftwareAgentStepScoresQueuedMessage(t *testing.T) {
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
	}
	require.NoError(t, st.CreateModelVersion(ctx, mv))
	require.NoError(t, st.ActivateModelVersion(ctx, mv.ID))

	q := queue.New(st)
	_, err = q.Enqueue(ctx, "claim your free prize now")
	require.NoError(t, err)

	sc := scoring.New(st, c, t.TempDir())
	observer := &fakeObserver{}
	softwareAgent := NewScoringSoftwareAgent(q, sc, observer)

	result, err := softwareAgent.Step(ctx)
	require.NoError(t, err)
	require.NotZero(t, result.MessageID)
	require.Len(t, observer.scored, 1)
	require.Equal(t, result.Decision, observer.scored[0].Decision)
}

func TestScoringSoftwareAgentStepIsNoopOnEmptyQueue(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st := sqlite.New(db, nil)

	c := classifier.NewNaiveBayes()
	sc := scoring.New(st, c, t.TempDir())
	q := queue.New(st)
	observer := &fakeObserver{}
	softwareAgent := NewScoringSoftwareAgent(q, sc, observer)

	result, err := softwareAgent.Step(ctx)
	require.NoError(t, err)
	require.Zero(t, result.MessageID)
	require.Empty(t, observer.scored)
}
