// Package dataset implements the one-shot SMSSpamCollection-style file
// loader that seeds the store's train pool and validation holdout.
package dataset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/b0gochort/spamwarden/internal/models"
	"github.com/b0gochort/spamwarden/internal/store"
	"github.com/b0gochort/spamwarden/internal/storeerr"
)

// importSeed fixes the shuffle so successive imports of the same file
// produce the same train/validation split.
const importSeed = 42

const validationFraction = 0.2

var errMalformedLine = errors.New("line is neither ham nor spam")

// ImportResult summarizes one Import call.
type ImportResult struct {
	Skipped        bool
	TrainPoolSize  int
	ValidationSize int
	SkippedLines   int
}

type Importer struct {
	st store.Store
}

func New(st store.Store) *Importer {
	return &Importer{st: st}
}

// Import loads path, a tab-separated `label\ttext` file, and splits it
// 80/20 into TrainPool/ValidationHoldout rows tagged Source=Dataset. It is
// a no-op if dataset rows already exist and force is false.
func (im *Importer) Import(ctx context.Context, path string, force bool) (ImportResult, error) {
	exists, err := im.st.HasDatasetMessages(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	if exists && !force {
		return ImportResult{Skipped: true}, nil
	}

	rows, skipped, err := readRecords(path)
	if err != nil {
		return ImportResult{}, storeerr.InvalidInput("Import", err)
	}
	if len(rows) == 0 {
		return ImportResult{}, storeerr.InvalidInput("Import", errors.New("no valid records in dataset file"))
	}

	if exists {
		if err := im.st.DeleteDatasetMessages(ctx); err != nil {
			return ImportResult{}, err
		}
	}

	rng := rand.New(rand.NewSource(importSeed))
	rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	split := int(float64(len(rows)) * (1 - validationFraction))
	for i, row := range rows {
		if i < split {
			row.Split = models.SplitTrainPool
		} else {
			row.Split = models.SplitValidationHoldout
		}
	}

	if err := im.st.BulkInsertDatasetMessages(ctx, rows); err != nil {
		return ImportResult{}, err
	}

	return ImportResult{
		TrainPoolSize:  split,
		ValidationSize: len(rows) - split,
		SkippedLines:   skipped,
	}, nil
}

// readRecords parses one `label\ttext` record per line, skipping blank
// lines and counting (without failing on) malformed ones.
func readRecords(path string) ([]*models.Message, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	var rows []*models.Message
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseLine(line)
		if err != nil {
			skipped++
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read dataset file: %w", err)
	}

	return rows, skipped, nil
}

func parseLine(line string) (*models.Message, error) {
	parts := strings.SplitN(line, "\t", 2)
	if len(parts) != 2 {
		return nil, errMalformedLine
	}

	var label models.Label
	switch strings.ToLower(strings.TrimSpace(parts[0])) {
	case "ham":
		label = models.LabelHam
	case "spam":
		label = models.LabelSpam
	default:
		return nil, errMalformedLine
	}

	return &models.Message{
		Text:      parts[1],
		Source:    models.SourceDataset,
		TrueLabel: label,
		Status:    models.StatusDataset,
	}, nil
}
