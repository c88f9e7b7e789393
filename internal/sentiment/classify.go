package sentiment

import (
	"github.com/dbsmedya/commentetl/internal/table"
)

// Column names added by Annotate.
const (
	PolarityColumn = "polarity"
	LabelColumn    = "sentiment"
)

// Label is a sentiment class.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Thresholds bound the positive and negative classes.
type Thresholds struct {
	Positive float64
	Negative float64
}

// DefaultThresholds returns the conventional ±0.05 compound-score cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Positive: 0.05, Negative: -0.05}
}

// Classify labels a polarity. Zero polarity is always neutral.
func (th Thresholds) Classify(p float64) Label {
	switch {
	case p > 0 && p >= th.Positive:
		return Positive
	case p < 0 && p <= th.Negative:
		return Negative
	default:
		return Neutral
	}
}

// Summary counts the outcome of Annotate.
type Summary struct {
	Scored   int
	Failed   int
	Positive int
	Negative int
	Neutral  int
}

// Annotate scores the text column of every row and writes the polarity and sentiment
// columns in place. Rows that cannot be scored get polarity 0.
func Annotate(t *table.Table, column string, s Scorer, th Thresholds) Summary {
	var sum Summary
	t.AddColumn(PolarityColumn)
	t.AddColumn(LabelColumn)

	for _, r := range t.Rows() {
		p, err := Polarity(s, r.Get(column))
		if err != nil {
			sum.Failed++
			p = 0
		} else {
			sum.Scored++
		}

		label := th.Classify(p)
		switch label {
		case Positive:
			sum.Positive++
		case Negative:
			sum.Negative++
		default:
			sum.Neutral++
		}

		r.Set(PolarityColumn, table.Number(p))
		r.Set(LabelColumn, table.String(string(label)))
	}
	return sum
}

// Subset returns the rows of an annotated table carrying the given label.
func Subset(t *table.Table, label Label) *table.Table {
	return t.Filter(func(r *table.Record) bool {
		return r.Get(LabelColumn).Text() == string(label)
	})
}
