package pipeline

import (
	"context"
	"fmt"

	"github.com/dbsmedya/commentetl/internal/export"
	"github.com/dbsmedya/commentetl/internal/ingest"
	"github.com/dbsmedya/commentetl/internal/table"
	"github.com/dbsmedya/commentetl/internal/verifier"
)

// MergeResult contains statistics and outputs of a merge run.
type MergeResult struct {
	timing

	Results    []ingest.LoadResult
	Table      *table.Table
	SourceRows int
	Duplicates int
	HeadRows   int

	Outputs      []string
	SQL          *export.SQLResult
	Verification *verifier.VerifyStats
}

// FilesLoaded counts files that parsed.
func (m *MergeResult) FilesLoaded() int {
	b := ingest.Batch{Results: m.Results}
	return len(b.Loaded())
}

// FilesFailed counts files that were skipped.
func (m *MergeResult) FilesFailed() int {
	b := ingest.Batch{Results: m.Results}
	return len(b.Failed())
}

// Merge loads every matching file in the configured directory, removes duplicate rows
// and writes the configured exports. Per-file failures are recorded, not returned;
// listing, export and verification failures are.
func (r *Runner) Merge(ctx context.Context) (*MergeResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	cfg := r.config
	result := &MergeResult{}
	result.start()

	r.logger.Infow("Starting merge",
		"directory", cfg.Merge.Directory,
		"extension", cfg.Merge.Extension,
		"encoding", cfg.Merge.Encoding,
		"skip_bad_lines", cfg.Merge.SkipBadLines,
	)

	loader := ingest.NewLoader(r.mergeOptions(), r.logger)
	batch, err := loader.LoadDir(ctx, cfg.Merge.Directory, cfg.Merge.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", cfg.Merge.Directory, err)
	}
	result.Results = batch.Results
	result.SourceRows = batch.SourceRows()

	result.Table, result.Duplicates = batch.Table.Dedupe()
	rows, cols := result.Table.Shape()
	r.logger.WithFields(map[string]interface{}{
		"rows":               rows,
		"columns":            cols,
		"files_loaded":       len(batch.Loaded()),
		"files_failed":       len(batch.Failed()),
		"duplicates_removed": result.Duplicates,
	}).Info("Combined table")

	head := result.Table.Head(cfg.Export.HeadRows)
	result.HeadRows = head.Len()

	if err := r.writeFiles(result, head); err != nil {
		return result, err
	}

	if len(result.Table.Columns()) == 0 {
		r.logger.Warn("Combined table has no columns - skipping relational export and verification")
		result.finish()
		return result, nil
	}

	var exporter *export.SQLExporter
	if cfg.Export.Database.Driver != "" {
		target, err := r.openDB(ctx, &cfg.Export.Database)
		if err != nil {
			return result, err
		}
		defer target.Close()

		exporter, err = export.NewSQLExporter(target.DB, target.Dialect, target.Table, r.logger)
		if err != nil {
			return result, err
		}
		result.SQL, err = exporter.Export(ctx, head)
		if err != nil {
			return result, fmt.Errorf("relational export failed: %w", err)
		}
	}

	v, err := verifier.NewVerifier(verifier.VerificationMethod(cfg.Verification.Method), r.logger)
	if err != nil {
		return result, err
	}
	r.logger.Infow("Verifying exports", "method", v.GetMethod(), "csv", cfg.Export.CSVPath)
	req := verifier.Request{
		CSVPath:     cfg.Export.CSVPath,
		Table:       result.Table,
		SQLResult:   result.SQL,
		SQLExpected: head.Len(),
	}
	if exporter != nil {
		req.SQL = exporter
	}
	result.Verification, err = v.Verify(ctx, req)
	if err != nil {
		return result, err
	}

	result.finish()
	r.logger.Infow("Merge complete", "duration", result.Duration, "outputs", len(result.Outputs))
	return result, nil
}

// writeFiles writes the full CSV, the head CSV and the head JSON, skipping unset paths.
func (r *Runner) writeFiles(result *MergeResult, head *table.Table) error {
	exp := r.config.Export
	outputs := []struct {
		path  string
		t     *table.Table
		write func(string, *table.Table) error
	}{
		{exp.CSVPath, result.Table, export.WriteCSVFile},
		{exp.CSVHeadPath, head, export.WriteCSVFile},
		{exp.JSONPath, head, export.WriteJSONFile},
	}

	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.write(o.path, o.t); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		result.Outputs = append(result.Outputs, o.path)
		r.logger.WithFile(o.path).Infow("Wrote export", "rows", o.t.Len())
	}
	return nil
}
