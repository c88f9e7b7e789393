// Package ingest reads CSV sources into tables: directory enumeration, tolerant per-file
// parsing and batch accumulation with per-file failure capture.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding"

	"github.com/dbsmedya/commentetl/internal/table"
	"github.com/dbsmedya/commentetl/internal/textenc"
)

// Options controls how a single file is parsed.
type Options struct {
	// Encoding is an IANA or WHATWG label. Empty means UTF-8.
	Encoding string
	// SkipBadLines drops rows the reader rejects or that carry more fields than the header.
	// When false such a row fails the whole file.
	SkipBadLines bool
	// LazyQuotes lets a quote appear in an unquoted field.
	LazyQuotes bool
}

// ParseStats describes one parsed file.
type ParseStats struct {
	Rows     int
	BadLines int
	Columns  []string
}

// ParseFile opens and parses a CSV file.
func ParseFile(path string, opts Options) (*table.Table, ParseStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ParseStats{}, &FileError{Path: path, Kind: KindUnreadable, Err: err}
	}
	defer f.Close()

	return Parse(path, f, opts)
}

// Parse reads CSV data from r. name identifies the source in errors.
// The first record is the header; shorter rows are padded with nulls.
func Parse(name string, r io.Reader, opts Options) (*table.Table, ParseStats, error) {
	var stats ParseStats

	if _, err := textenc.Lookup(opts.Encoding); err != nil {
		return nil, stats, &FileError{Path: name, Kind: KindEncoding, Err: err}
	}

	decoded, err := decodingReader(opts.Encoding, r)
	if err != nil {
		return nil, stats, classify(name, err)
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = opts.LazyQuotes

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, &FileError{Path: name, Kind: KindEmpty}
	}
	if err != nil {
		return nil, stats, classify(name, err)
	}

	columns := headerColumns(header)
	stats.Columns = columns
	out := table.New(columns...)

	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) && !errors.Is(err, encoding.ErrInvalidUTF8) {
				if !opts.SkipBadLines {
					return nil, stats, &FileError{Path: name, Kind: KindMalformed, Err: err}
				}
				stats.BadLines++
				continue
			}
			return nil, stats, classify(name, err)
		}

		if len(fields) > len(columns) {
			if !opts.SkipBadLines {
				line, _ := reader.FieldPos(0)
				return nil, stats, &FileError{
					Path: name,
					Kind: KindMalformed,
					Err:  fmt.Errorf("line %d: expected %d fields, saw %d", line, len(columns), len(fields)),
				}
			}
			stats.BadLines++
			continue
		}

		values := make([]table.Value, len(fields))
		for i, f := range fields {
			values[i] = table.Parse(f)
		}
		out.AppendRecord(table.RecordOf(columns, values))
	}

	stats.Rows = out.Len()
	return out, stats, nil
}

// headerColumns names unnamed columns and disambiguates repeats as name.1, name.2, ...
func headerColumns(header []string) []string {
	columns := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	next := make(map[string]int, len(header))

	for i, h := range header {
		if h == "" {
			h = "Unnamed: " + strconv.Itoa(i)
		}
		name := h
		for taken[name] {
			next[h]++
			name = h + "." + strconv.Itoa(next[h])
		}
		taken[name] = true
		columns[i] = name
	}
	return columns
}

// classify wraps a read error in a FileError of the matching kind.
func classify(name string, err error) error {
	var fe *FileError
	if errors.As(err, &fe) {
		return err
	}
	if errors.Is(err, encoding.ErrInvalidUTF8) {
		return &FileError{Path: name, Kind: KindEncoding, Err: err}
	}
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &FileError{Path: name, Kind: KindMalformed, Err: err}
	}
	return &FileError{Path: name, Kind: KindUnreadable, Err: err}
}
