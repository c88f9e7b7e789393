package sentiment

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/commentetl/internal/table"
)

type failingScorer struct{}

func (failingScorer) Score(string) (float64, error) {
	return 0.9, errors.New("model unavailable")
}

type nanScorer struct{}

func (nanScorer) Score(string) (float64, error) {
	return math.NaN(), nil
}

func TestAnalyzerScore(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name string
		text string
		cmp  func(t *testing.T, p float64)
	}{
		{"love is positive", "I love this!", func(t *testing.T, p float64) { assert.Greater(t, p, 0.0) }},
		{"hate is negative", "I hate this", func(t *testing.T, p float64) { assert.Less(t, p, 0.0) }},
		{"no sentiment words is zero", "the video was uploaded on tuesday", func(t *testing.T, p float64) { assert.Equal(t, 0.0, p) }},
		{"empty is zero", "", func(t *testing.T, p float64) { assert.Equal(t, 0.0, p) }},
		{"negated negative turns positive", "not bad", func(t *testing.T, p float64) { assert.Greater(t, p, 0.0) }},
		{"negated positive turns negative", "this is not good", func(t *testing.T, p float64) { assert.Less(t, p, 0.0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := a.Score(tt.text)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, -1.0)
			assert.LessOrEqual(t, p, 1.0)
			tt.cmp(t, p)
		})
	}
}

func TestAnalyzerIntensifiers(t *testing.T) {
	a := NewAnalyzer()

	plain, _ := a.Score("this is good")
	boosted, _ := a.Score("this is very good")
	shouted, _ := a.Score("this is GOOD")
	exclaimed, _ := a.Score("this is good!!!")
	dampened, _ := a.Score("this is slightly good")

	assert.Greater(t, boosted, plain)
	assert.Greater(t, shouted, plain)
	assert.Greater(t, exclaimed, plain)
	assert.Less(t, dampened, plain)
}

func TestAnalyzerButShiftsWeight(t *testing.T) {
	a := NewAnalyzer()
	p, err := a.Score("the intro was good but the ending was terrible")
	require.NoError(t, err)
	assert.Less(t, p, 0.0)
}

func TestAnalyzerCommentVocabulary(t *testing.T) {
	a := NewAnalyzer()

	positive := []string{"awesome video", "love it", "so funny", "beautiful song"}
	negative := []string{"boring and useless", "worst video ever", "this is so sad"}

	for _, text := range positive {
		p, err := a.Score(text)
		require.NoError(t, err)
		assert.Greater(t, p, 0.05, text)
	}
	for _, text := range negative {
		p, err := a.Score(text)
		require.NoError(t, err)
		assert.Less(t, p, -0.05, text)
	}
}

func TestAnalyzerWhitespaceIsZero(t *testing.T) {
	p, err := NewAnalyzer().Score(" \t\n")
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestPolarity(t *testing.T) {
	a := NewAnalyzer()

	p, err := Polarity(a, table.String("I love this!"))
	require.NoError(t, err)
	assert.Greater(t, p, 0.0)

	_, err = Polarity(a, table.Null())
	assert.ErrorIs(t, err, ErrNotText)

	_, err = Polarity(a, table.Number(5))
	assert.ErrorIs(t, err, ErrNotText)

	_, err = Polarity(failingScorer{}, table.String("anything"))
	assert.ErrorIs(t, err, ErrScoring)

	_, err = Polarity(nanScorer{}, table.String("anything"))
	assert.ErrorIs(t, err, ErrScoring)
}

func TestSafePolarityDefaultsToNeutral(t *testing.T) {
	assert.Equal(t, 0.0, SafePolarity(failingScorer{}, table.String("I love this!")))
	assert.Equal(t, 0.0, SafePolarity(NewAnalyzer(), table.Null()))
	assert.Greater(t, SafePolarity(NewAnalyzer(), table.String("I love this!")), 0.0)
}
