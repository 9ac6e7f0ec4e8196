package classifier

import (
	"context"
	"encoding/gob"
	"errors"
	"math"
	"os"
	"strings"
	"sync"
)

var (
	ErrEmptyTrainingSet = errors.New("naivebayes: empty training set")
	ErrNotLoaded        = errors.New("naivebayes: no model loaded")
	ErrEmptyText        = errors.New("naivebayes: empty text")
)

// model is the serializable state of a trained classifier.
type model struct {
	SpamWordCounts map[string]int
	HamWordCounts  map[string]int
	SpamTotal      int
	HamTotal       int
	SpamDocs       int
	HamDocs        int
	Vocab          map[string]struct{}
}

// NaiveBayes is a multinomial bag-of-words spam classifier with Laplace
// smoothing. It is the only concrete Classifier in this repository; there is
// no ecosystem ML library in play, so the algorithm itself is hand-rolled.
type NaiveBayes struct {
	mu sync.RWMutex
	m  *model
}

func NewNaiveBayes() *NaiveBayes {
	return &NaiveBayes{}
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
	return fields
}

func (c *NaiveBayes) Train(ctx context.Context, samples []Sample, artifactPath string) error {
	if len(samples) == 0 {
		return ErrEmptyTrainingSet
	}

	m := &model{
		SpamWordCounts: make(map[string]int),
		HamWordCounts:  make(map[string]int),
		Vocab:          make(map[string]struct{}),
	}

	for _, s := range samples {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		tokens := tokenize(s.Text)
		if s.IsSpam {
			m.SpamDocs++
		} else {
			m.HamDocs++
		}
		for _, tok := range tokens {
			m.Vocab[tok] = struct{}{}
			if s.IsSpam {
				m.SpamWordCounts[tok]++
				m.SpamTotal++
			} else {
				m.HamWordCounts[tok]++
				m.HamTotal++
			}
		}
	}

	if err := persistModel(artifactPath, m); err != nil {
		return err
	}

	c.mu.Lock()
	c.m = m
	c.mu.Unlock()
	return nil
}

func persistModel(path string, m *model) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(m)
}

func (c *NaiveBayes) Load(ctx context.Context, artifactPath string) error {
	f, err := os.Open(artifactPath)
	if err != nil {
		return err
	}
	defer f.Close()

	var m model
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return err
	}

	c.mu.Lock()
	c.m = &m
	c.mu.Unlock()
	return nil
}

// logLikelihood returns the log-probability of tokens under the given
// per-class word counts, with add-one Laplace smoothing over the vocabulary.
func logLikelihood(tokens []string, wordCounts map[string]int, classTotal, vocabSize int) float64 {
	ll := 0.0
	for _, tok := range tokens {
		count := wordCounts[tok]
		ll += math.Log(float64(count+1) / float64(classTotal+vocabSize))
	}
	return ll
}

func (c *NaiveBayes) Predict(ctx context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrEmptyText
	}

	c.mu.RLock()
	m := c.m
	c.mu.RUnlock()
	if m == nil {
		return 0, ErrNotLoaded
	}

	tokens := tokenize(text)
	vocabSize := len(m.Vocab)
	if vocabSize == 0 {
		vocabSize = 1
	}
	totalDocs := float64(m.SpamDocs + m.HamDocs)
	if totalDocs == 0 {
		totalDocs = 1
	}

	priorSpam := math.Log(float64(m.SpamDocs+1) / (totalDocs + 2))
	priorHam := math.Log(float64(m.HamDocs+1) / (totalDocs + 2))

	spamScore := priorSpam + logLikelihood(tokens, m.SpamWordCounts, m.SpamTotal, vocabSize)
	hamScore := priorHam + logLikelihood(tokens, m.HamWordCounts, m.HamTotal, vocabSize)

	// Convert the two log-scores back to a normalized probability via the
	// standard log-sum-exp trick, avoiding overflow on long messages.
	maxScore := math.Max(spamScore, hamScore)
	spamExp := math.Exp(spamScore - maxScore)
	hamExp := math.Exp(hamScore - maxScore)
	pSpam := spamExp / (spamExp + hamExp)
	return pSpam, nil
}

func (c *NaiveBayes) Evaluate(ctx context.Context, samples []Sample) (Metrics, error) {
	c.mu.RLock()
	loaded := c.m != nil
	c.mu.RUnlock()
	if !loaded {
		return Metrics{}, ErrNotLoaded
	}

	var tp, tn, fp, fn int
	for _, s := range samples {
		select {
		case <-ctx.Done():
			return Metrics{}, ctx.Err()
		default:
		}
		p, err := c.Predict(ctx, s.Text)
		if err != nil {
			return Metrics{}, err
		}
		predictedSpam := p >= 0.5
		switch {
		case s.IsSpam && predictedSpam:
			tp++
		case !s.IsSpam && !predictedSpam:
			tn++
		case !s.IsSpam && predictedSpam:
			fp++
		case s.IsSpam && !predictedSpam:
			fn++
		}
	}

	return computeMetrics(tp, tn, fp, fn), nil
}

func computeMetrics(tp, tn, fp, fn int) Metrics {
	precision := ratio(tp, tp+fp)
	recall := ratio(tp, tp+fn)
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	total := tp + tn + fp + fn
	accuracy := ratio(tp+tn, total)
	return Metrics{
		Accuracy:  accuracy,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
		TP:        tp,
		TN:        tn,
		FP:        fp,
		FN:        fn,
	}
}

func ratio(num, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(num) / float64(denom)
}
