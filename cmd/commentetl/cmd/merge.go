package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/database"
	"github.com/dbsmedya/commentetl/internal/pipeline"
	"github.com/dbsmedya/commentetl/internal/report"
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge a directory of comment CSV files and export the result",
	Long: `Merge reads every file with the configured extension in merge.directory,
combines them into one table and writes the configured exports.

The merge process follows these steps:
  1. Parse each file with the configured encoding, skipping malformed lines
  2. Record files that fail to parse and continue with the rest
  3. Combine all tables (union of columns, missing values as null)
  4. Remove exact duplicate rows
  5. Write the full CSV, the head CSV and JSON, and append the head to the database table
  6. Verify the exports (count or SHA256)

Example:
  commentetl merge --config commentetl.yaml --head-rows 500`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup("merge", (*config.Config).ValidateMerge)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Infow("Starting merge operation", "config", GetConfigFile())

	ctx, stop := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnw("Received shutdown signal - stopping after current file", "signal", sig.String())
	})
	defer stop()

	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	result, err := runner.Merge(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Merge cancelled by user")
			return nil
		}
		return fmt.Errorf("merge failed: %w", err)
	}

	return printMergeResult(cfg, result)
}

func printMergeResult(cfg *config.Config, result *pipeline.MergeResult) error {
	opts := reportOptions()
	out := outputWriter

	fmt.Fprintln(out, "\n=== Files ===")
	if err := report.Files(out, result.Results, opts); err != nil {
		return err
	}

	fmt.Fprintln(out, "\n=== Combined Table ===")
	if err := report.Shape(out, result.Table); err != nil {
		return err
	}
	if cfg.Export.PreviewRows > 0 {
		if err := report.Preview(out, result.Table, cfg.Export.PreviewRows, opts); err != nil {
			return err
		}
	}

	lines := []report.KeyValue{
		{Key: "Duration", Value: result.Duration},
		{Key: "Files loaded", Value: result.FilesLoaded()},
		{Key: "Files failed", Value: result.FilesFailed()},
		{Key: "Rows before dedupe", Value: result.SourceRows},
		{Key: "Duplicates removed", Value: result.Duplicates},
		{Key: "Rows after dedupe", Value: result.Table.Len()},
		{Key: "Head rows exported", Value: result.HeadRows},
	}
	if result.SQL != nil {
		lines = append(lines, report.KeyValue{Key: "Table " + result.SQL.Table, Value: fmt.Sprintf("%d rows appended", result.SQL.Inserted)})
	}
	if result.Verification != nil {
		lines = append(lines, report.KeyValue{Key: "Verification", Value: fmt.Sprintf("%s (%d passed)",
			result.Verification.Method, result.Verification.TargetsPassed)})
	}
	for _, o := range result.Outputs {
		lines = append(lines, report.KeyValue{Key: "Wrote", Value: o})
	}

	fmt.Fprintln(out)
	return report.Summary(out, "=== Merge Complete ===", lines, opts)
}
