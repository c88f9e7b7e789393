// Package wordcloud counts term frequencies over a text column and renders them as an SVG cloud.
package wordcloud

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dbsmedya/commentetl/internal/table"
)

var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}']+`)

// Term is a word and its frequency.
type Term struct {
	Word  string
	Count int
}

// Tokenize lowercases text and returns its cloud-worthy words: no stop words,
// nothing shorter than three runes, no pure numbers.
func Tokenize(text string) []string {
	var out []string
	for _, tok := range tokenRegex.FindAllString(strings.ToLower(text), -1) {
		tok = strings.Trim(tok, "'")
		if utf8.RuneCountInString(tok) < 3 || stopwords[tok] || isNumeric(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Frequencies counts words across texts. The result is ordered by count descending,
// then word ascending, and truncated to limit entries when limit > 0.
func Frequencies(texts []string, limit int) []Term {
	counts := make(map[string]int)
	for _, t := range texts {
		for _, w := range Tokenize(t) {
			counts[w]++
		}
	}

	terms := make([]Term, 0, len(counts))
	for w, c := range counts {
		terms = append(terms, Term{Word: w, Count: c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Word < terms[j].Word
	})

	if limit > 0 && len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

// FromTable counts the string values of one column. Non-text cells are ignored.
func FromTable(t *table.Table, column string, limit int) []Term {
	var texts []string
	for _, v := range t.Column(column) {
		if v.Kind() == table.KindString {
			texts = append(texts, v.Text())
		}
	}
	return Frequencies(texts, limit)
}
