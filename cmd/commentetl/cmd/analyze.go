package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/database"
	"github.com/dbsmedya/commentetl/internal/pipeline"
	"github.com/dbsmedya/commentetl/internal/report"
	"github.com/dbsmedya/commentetl/internal/wordcloud"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score comment sentiment, build word clouds and count emoji",
	Long: `Analyze loads the primary comments file (comments.path) and annotates
every comment with a polarity score and a positive/negative/neutral label.

Outputs:
  - Word clouds (SVG) for positive and negative comments in analysis.wordcloud_dir
  - Emoji usage summary
  - Annotated CSV at analysis.annotated_path

Example:
  commentetl analyze --config commentetl.yaml`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup("analyze", (*config.Config).ValidateAnalyze)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Infow("Starting analysis", "config", GetConfigFile(), "comments", cfg.Comments.Path)

	ctx, stop := database.SetupSignalHandler(context.Background(), func(sig os.Signal) {
		log.Warnw("Received shutdown signal", "signal", sig.String())
	})
	defer stop()

	runner, err := pipeline.NewRunner(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create runner: %w", err)
	}

	result, err := runner.Analyze(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warn("Analysis cancelled by user")
			return nil
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	return printAnalyzeResult(cfg, result)
}

func topTerms(terms []wordcloud.Term, n int) string {
	if len(terms) == 0 {
		return "-"
	}
	if len(terms) > n {
		terms = terms[:n]
	}
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = fmt.Sprintf("%s (%d)", t.Word, t.Count)
	}
	return strings.Join(parts, ", ")
}

func printAnalyzeResult(cfg *config.Config, result *pipeline.AnalyzeResult) error {
	opts := reportOptions()
	out := outputWriter

	fmt.Fprintln(out, "\n=== Comments ===")
	if err := report.Shape(out, result.Table); err != nil {
		return err
	}
	if cfg.Export.PreviewRows > 0 {
		if err := report.Preview(out, result.Table, cfg.Export.PreviewRows, opts); err != nil {
			return err
		}
	}

	s := result.Sentiment
	fmt.Fprintln(out)
	if err := report.Summary(out, "=== Sentiment ===", []report.KeyValue{
		{Key: "Scored", Value: s.Scored},
		{Key: "Not scorable", Value: s.Failed},
		{Key: "Positive", Value: s.Positive},
		{Key: "Negative", Value: s.Negative},
		{Key: "Neutral", Value: s.Neutral},
		{Key: "Top positive words", Value: topTerms(result.PositiveTerms, 10)},
		{Key: "Top negative words", Value: topTerms(result.NegativeTerms, 10)},
	}, opts); err != nil {
		return err
	}

	fmt.Fprintln(out)
	if err := report.Emoji(out, result.Emoji, opts); err != nil {
		return err
	}

	if len(result.Outputs) > 0 {
		lines := make([]report.KeyValue, 0, len(result.Outputs))
		for _, o := range result.Outputs {
			lines = append(lines, report.KeyValue{Key: "Wrote", Value: o})
		}
		fmt.Fprintln(out)
		return report.Summary(out, "=== Outputs ===", lines, opts)
	}
	return nil
}
