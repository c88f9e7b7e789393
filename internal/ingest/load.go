package ingest

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dbsmedya/commentetl/internal/logger"
	"github.com/dbsmedya/commentetl/internal/table"
)

// LoadResult is the outcome of loading one file. Err is nil on success.
type LoadResult struct {
	File     string
	Rows     int
	Columns  []string
	BadLines int
	Err      error
}

// OK reports whether the file loaded.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// Kind returns the failure kind, or "" on success.
func (r LoadResult) Kind() ErrorKind {
	return KindOf(r.Err)
}

// Batch is the combined table of a run plus one LoadResult per enumerated file.
type Batch struct {
	Table   *table.Table
	Results []LoadResult
}

// Loaded returns the successful results.
func (b *Batch) Loaded() []LoadResult {
	var out []LoadResult
	for _, r := range b.Results {
		if r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the failed results.
func (b *Batch) Failed() []LoadResult {
	var out []LoadResult
	for _, r := range b.Results {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// SourceRows is the sum of rows over successfully loaded files.
func (b *Batch) SourceRows() int {
	total := 0
	for _, r := range b.Results {
		if r.OK() {
			total += r.Rows
		}
	}
	return total
}

// Loader parses files one at a time and accumulates them into one table.
// A file that fails to parse is logged, recorded and skipped.
type Loader struct {
	opts   Options
	logger *logger.Logger
}

// NewLoader creates a Loader. A nil logger discards output.
func NewLoader(opts Options, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.NewNop()
	}
	return &Loader{opts: opts, logger: log}
}

// LoadDir enumerates dir for files with extension ext and loads them in listing order.
// Only a failure to list the directory, or cancellation, is returned as an error.
func (l *Loader) LoadDir(ctx context.Context, dir, ext string) (*Batch, error) {
	names, err := Enumerate(dir, ext)
	if err != nil {
		return nil, err
	}

	l.logger.Infow("Enumerated source files", "directory", dir, "extension", ext, "files", len(names))

	paths := make([]string, len(names))
	for i, n := range names {
		paths[i] = filepath.Join(dir, n)
	}
	return l.LoadFiles(ctx, paths)
}

// LoadFiles loads the given paths in order into one combined table.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (*Batch, error) {
	batch := &Batch{Table: table.New()}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load interrupted: %w", err)
		}

		log := l.logger.WithFile(path)
		t, stats, err := ParseFile(path, l.opts)
		if err != nil {
			log.Warnw("Failed to load file", "kind", KindOf(err), "error", err)
			batch.Results = append(batch.Results, LoadResult{File: path, Err: err})
			continue
		}

		batch.Table.Append(t)
		batch.Results = append(batch.Results, LoadResult{
			File:     path,
			Rows:     stats.Rows,
			Columns:  stats.Columns,
			BadLines: stats.BadLines,
		})

		log.Infow("Loaded file", "rows", stats.Rows, "columns", len(stats.Columns))
		if stats.BadLines > 0 {
			log.Debugw("Skipped malformed lines", "bad_lines", stats.BadLines)
		}
	}

	return batch, nil
}
