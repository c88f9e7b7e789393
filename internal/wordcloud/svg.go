package wordcloud

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// RenderOptions controls the SVG layout.
type RenderOptions struct {
	Width       int
	MinFontSize float64
	MaxFontSize float64
	Palette     []string
}

// DefaultRenderOptions returns an 800px wide layout.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Width:       800,
		MinFontSize: 12,
		MaxFontSize: 64,
		Palette:     []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"},
	}
}

type placed struct {
	term Term
	size float64
	x, y float64
}

// layout flows terms left to right, wrapping lines at the configured width.
// Font size scales linearly with count between the min and max sizes.
func layout(terms []Term, opts RenderOptions) ([]placed, float64) {
	if len(terms) == 0 {
		return nil, 0
	}
	maxCount, minCount := terms[0].Count, terms[0].Count
	for _, t := range terms {
		if t.Count > maxCount {
			maxCount = t.Count
		}
		if t.Count < minCount {
			minCount = t.Count
		}
	}

	const pad = 8.0
	width := float64(opts.Width)
	var out []placed
	x, lineTop, lineHeight := pad, pad, 0.0

	for _, t := range terms {
		size := opts.MaxFontSize
		if maxCount > minCount {
			frac := float64(t.Count-minCount) / float64(maxCount-minCount)
			size = opts.MinFontSize + frac*(opts.MaxFontSize-opts.MinFontSize)
		}
		w := float64(utf8.RuneCountInString(t.Word)) * size * 0.6

		if x+w > width-pad && x > pad {
			x = pad
			lineTop += lineHeight + pad
			lineHeight = 0
		}
		if size > lineHeight {
			lineHeight = size
		}
		out = append(out, placed{term: t, size: size, x: x, y: lineTop})
		x += w + pad
	}

	// baseline each word on its line's bottom edge
	for i := range out {
		out[i].y += out[i].size
	}
	return out, lineTop + lineHeight + pad
}

// RenderSVG writes the terms as an SVG word cloud.
func RenderSVG(w io.Writer, terms []Term, opts RenderOptions) error {
	if len(opts.Palette) == 0 {
		opts.Palette = DefaultRenderOptions().Palette
	}
	words, height := layout(terms, opts)

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%.0f" viewBox="0 0 %d %.0f">`+"\n",
		opts.Width, height, opts.Width, height)
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="white"/>`+"\n")
	for i, p := range words {
		fmt.Fprintf(bw, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="%.1f" fill="%s">`,
			p.x, p.y, p.size, opts.Palette[i%len(opts.Palette)])
		if err := xml.EscapeText(bw, []byte(p.term.Word)); err != nil {
			return err
		}
		fmt.Fprint(bw, "</text>\n")
	}
	fmt.Fprint(bw, "</svg>\n")
	return bw.Flush()
}

// WriteSVGFile renders the terms into path, creating parent directories.
func WriteSVGFile(path string, terms []Term, opts RenderOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderSVG(f, terms, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	return f.Close()
}
