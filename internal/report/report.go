// Package report renders human-readable run output: table previews, shapes and summaries.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/commentetl/internal/emojiscan"
	"github.com/dbsmedya/commentetl/internal/ingest"
	"github.com/dbsmedya/commentetl/internal/table"
)

const nullText = "NaN"

var (
	headerStyle = color.Style{color.FgCyan, color.OpBold}
	okStyle     = color.Style{color.FgGreen}
	failStyle   = color.Style{color.FgRed, color.OpBold}
	titleStyle  = color.Style{color.OpBold}
)

// Options controls rendering.
type Options struct {
	MaxCellWidth int
	Color        bool
}

// DefaultOptions truncates cells at 40 columns and colors output.
func DefaultOptions() Options {
	return Options{MaxCellWidth: 40, Color: true}
}

func (o Options) paint(s color.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Sprint(text)
}

// cellText flattens control whitespace so a cell stays on one line.
func cellText(v table.Value) string {
	if v.IsNull() {
		return nullText
	}
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(v.Text())
}

// Preview writes the first n rows of t as an aligned text table.
// Widths are measured in terminal cells, so wide runes and emoji line up.
func Preview(w io.Writer, t *table.Table, n int, opts Options) error {
	head := t.Head(n)
	columns := head.Columns()
	if len(columns) == 0 {
		_, err := fmt.Fprintln(w, "(empty table)")
		return err
	}

	cells := make([][]string, head.Len())
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for r, rec := range head.Rows() {
		cells[r] = make([]string, len(columns))
		for i, v := range table.Values(rec, columns) {
			s := cellText(v)
			if opts.MaxCellWidth > 0 {
				s = runewidth.Truncate(s, opts.MaxCellWidth, "…")
			}
			cells[r][i] = s
			if sw := runewidth.StringWidth(s); sw > widths[i] {
				widths[i] = sw
			}
		}
	}

	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(opts.paint(headerStyle, runewidth.FillRight(c, widths[i])))
	}
	b.WriteString("\n")
	for i := range columns {
		if i > 0 {
			b.WriteString("-+-")
		}
		b.WriteString(strings.Repeat("-", widths[i]))
	}
	b.WriteString("\n")
	for _, row := range cells {
		for i, s := range row {
			if i > 0 {
				b.WriteString(" | ")
			}
			if i == len(row)-1 {
				b.WriteString(s)
			} else {
				b.WriteString(runewidth.FillRight(s, widths[i]))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Shape writes the table dimensions as "(rows, columns)".
func Shape(w io.Writer, t *table.Table) error {
	rows, cols := t.Shape()
	_, err := fmt.Fprintf(w, "(%d, %d)\n", rows, cols)
	return err
}

// KeyValue is one summary line.
type KeyValue struct {
	Key   string
	Value interface{}
}

// Summary writes a titled block of aligned key/value lines.
func Summary(w io.Writer, title string, lines []KeyValue, opts Options) error {
	width := 0
	for _, l := range lines {
		if n := runewidth.StringWidth(l.Key); n > width {
			width = n
		}
	}

	var b strings.Builder
	b.WriteString(opts.paint(titleStyle, title))
	b.WriteString("\n")
	for _, l := range lines {
		fmt.Fprintf(&b, "  %s  %v\n", runewidth.FillRight(l.Key+":", width+1), l.Value)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Files writes one line per enumerated file: OK with its shape, or FAILED with the error kind.
func Files(w io.Writer, results []ingest.LoadResult, opts Options) error {
	var b strings.Builder
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(&b, "  %s %s (%d rows, %d columns", opts.paint(okStyle, "OK    "), r.File, r.Rows, len(r.Columns))
			if r.BadLines > 0 {
				fmt.Fprintf(&b, ", %d bad lines skipped", r.BadLines)
			}
			b.WriteString(")\n")
			continue
		}
		fmt.Fprintf(&b, "  %s %s [%s] %v\n", opts.paint(failStyle, "FAILED"), r.File, r.Kind(), r.Err)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Emoji writes an emoji scan report.
func Emoji(w io.Writer, rep emojiscan.Report, opts Options) error {
	lines := []KeyValue{
		{"Comments scanned", rep.Comments},
		{"Comments with emoji", rep.WithEmoji},
		{"Total emoji", rep.Total},
	}
	if err := Summary(w, "Emoji", lines, opts); err != nil {
		return err
	}

	var b strings.Builder
	for i, c := range rep.Top {
		name := c.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "  %2d. %s  %-6d %s\n", i+1, runewidth.FillRight(c.Emoji, 2), c.Count, name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
