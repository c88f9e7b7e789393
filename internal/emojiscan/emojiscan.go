// Package emojiscan finds emoji in comment text.
package emojiscan

import (
	"sort"

	"github.com/forPelevin/gomoji"
	"github.com/rivo/uniseg"

	"github.com/dbsmedya/commentetl/internal/table"
)

// Count is one emoji and how often it appeared.
type Count struct {
	Emoji string
	Name  string
	Count int
}

// Report summarizes a scan.
type Report struct {
	Comments  int
	WithEmoji int
	Total     int
	Top       []Count
}

// Find returns every emoji grapheme in text, in order, duplicates included.
func Find(text string) []string {
	if !gomoji.ContainsEmoji(text) {
		return nil
	}
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if isASCII(cluster) {
			continue
		}
		if gomoji.ContainsEmoji(cluster) {
			out = append(out, cluster)
		}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

// Scan counts emoji across texts and keeps the top n by count (all when n <= 0).
func Scan(texts []string, n int) Report {
	var rep Report
	counts := make(map[string]int)
	for _, text := range texts {
		rep.Comments++
		found := Find(text)
		if len(found) == 0 {
			continue
		}
		rep.WithEmoji++
		rep.Total += len(found)
		for _, e := range found {
			counts[e]++
		}
	}

	for e, c := range counts {
		rep.Top = append(rep.Top, Count{Emoji: e, Name: name(e), Count: c})
	}
	sort.Slice(rep.Top, func(i, j int) bool {
		if rep.Top[i].Count != rep.Top[j].Count {
			return rep.Top[i].Count > rep.Top[j].Count
		}
		return rep.Top[i].Emoji < rep.Top[j].Emoji
	})
	if n > 0 && len(rep.Top) > n {
		rep.Top = rep.Top[:n]
	}
	return rep
}

// ScanColumn scans the string cells of one column. Null and numeric cells are not comments.
func ScanColumn(t *table.Table, column string, n int) Report {
	var texts []string
	for _, v := range t.Column(column) {
		if v.Kind() == table.KindString {
			texts = append(texts, v.Text())
		}
	}
	return Scan(texts, n)
}

func name(e string) string {
	info, err := gomoji.GetInfo(e)
	if err != nil {
		return ""
	}
	return info.UnicodeName
}
