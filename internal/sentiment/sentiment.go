// Package sentiment scores comment polarity with VADER and labels comments
// as positive, negative or neutral.
package sentiment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"github.com/dbsmedya/commentetl/internal/table"
)

// Sentinel errors for scoring failures. Callers treat both as neutral polarity.
var (
	ErrNotText = errors.New("value is not text")
	ErrScoring = errors.New("sentiment scoring failed")
)

// Scorer computes a polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Score(text string) (float64, error)
}

// Analyzer is a Scorer backed by the VADER lexicon and rules.
type Analyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewAnalyzer creates an Analyzer with the full VADER lexicon loaded.
func NewAnalyzer() *Analyzer {
	return &Analyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Score returns the VADER compound score of text. Blank text scores 0.
func (a *Analyzer) Score(text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	return a.vader.PolarityScores(text).Compound, nil
}

// Polarity scores a cell. Non-text cells fail with ErrNotText; scorer errors and
// non-finite results fail with ErrScoring.
func Polarity(s Scorer, v table.Value) (float64, error) {
	if v.Kind() != table.KindString {
		return 0, ErrNotText
	}
	p, err := s.Score(v.Text())
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScoring, err)
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: non-finite polarity", ErrScoring)
	}
	return p, nil
}

// SafePolarity is Polarity with failures mapped to neutral (0).
func SafePolarity(s Scorer, v table.Value) float64 {
	p, err := Polarity(s, v)
	if err != nil {
		return 0
	}
	return p
}
