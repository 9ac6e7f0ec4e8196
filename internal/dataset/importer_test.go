package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

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

func writeFixture(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SMSSpamCollection")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportSplitsAndSkipsMalformedLines(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	path := writeFixture(t,
		"ham\tlunch tomorrow",
		"spam\tfree prize now",
		"",
		"garbage line with no label",
		"ham\tcall me later",
		"spam\turgent claim now",
		"ham\tsee you soon",
		"spam\twin cash today",
		"ham\tmeeting at noon",
		"spam\tclaim your reward",
	)

	im := New(st)
	result, err := im.Import(ctx, path, false)
	require.NoError(t, err)
	require.False(t, result.Skipped)
	require.Equal(t, 1, result.SkippedLines)
	require.Equal(t, 6, result.TrainPoolSize)
	require.Equal(t, 2, result.ValidationSize)

	pool, err := st.SelectTrainPool(ctx, 100)
	require.NoError(t, err)
	require.Len(t, pool, 6)

	holdout, err := st.SelectValidationHoldout(ctx)
	require.NoError(t, err)
	require.Len(t, holdout, 2)
}

func TestImportSkipsWhenAlreadyPresentAndNotForced(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	path := writeFixture(t, "ham\tone", "spam\ttwo", "ham\tthree", "spam\tfour", "ham\tfive")

	im := New(st)
	_, err := im.Import(ctx, path, false)
	require.NoError(t, err)

	result, err := im.Import(ctx, path, false)
	require.NoError(t, err)
	require.True(t, result.Skipped)
}

func TestImportForceReplacesExistingRows(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	path := writeFixture(t, "ham\tone", "spam\ttwo", "ham\tthree", "spam\tfour", "ham\tfive")

	im := New(st)
	_, err := im.Import(ctx, path, false)
	require.NoError(t, err)

	path2 := writeFixture(t, "ham\ta", "spam\tb", "ham\tc", "spam\td", "ham\te", "spam\tf")
	result, err := im.Import(ctx, path2, true)
	require.NoError(t, err)
	require.False(t, result.Skipped)
	require.Equal(t, 4, result.TrainPoolSize)
	require.Equal(t, 2, result.ValidationSize)
}

func TestImportRejectsEmptyFile(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	path := writeFixture(t)

	im := New(st)
	_, err := im.Import(ctx, path, false)
	require.Error(t, err)
}

func TestImportSetsTrueLabelFromLine(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	path := writeFixture(t, "ham\tone", "spam\ttwo", "ham\tthree", "spam\tfour", "ham\tfive")

	im := New(st)
	_, err := im.Import(ctx, path, false)
	require.NoError(t, err)

	pool, err := st.SelectTrainPool(ctx, 100)
	require.NoError(t, err)
	holdout, err := st.SelectValidationHoldout(ctx)
	require.NoError(t, err)

	all := append(pool, holdout...)
	for _, m := range all {
		require.Contains(t, []models.Label{models.LabelHam, models.LabelSpam}, m.TrueLabel)
		require.Equal(t, models.SourceDataset, m.Source)
		require.Equal(t, models.StatusDataset, m.Status)
	}
}
