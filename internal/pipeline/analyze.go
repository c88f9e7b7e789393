package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dbsmedya/commentetl/internal/emojiscan"
	"github.com/dbsmedya/commentetl/internal/export"
	"github.com/dbsmedya/commentetl/internal/ingest"
	"github.com/dbsmedya/commentetl/internal/sentiment"
	"github.com/dbsmedya/commentetl/internal/table"
	"github.com/dbsmedya/commentetl/internal/wordcloud"
)

// AnalyzeResult contains the annotated comments table and derived reports.
type AnalyzeResult struct {
	timing

	Table         *table.Table
	BadLines      int
	Sentiment     sentiment.Summary
	PositiveTerms []wordcloud.Term
	NegativeTerms []wordcloud.Term
	Emoji         emojiscan.Report
	Outputs       []string
}

// Analyze scores every comment, builds positive and negative word clouds,
// scans for emoji and writes the annotated table.
func (r *Runner) Analyze(ctx context.Context) (*AnalyzeResult, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context is nil")
	}

	cfg := r.config
	column := cfg.Comments.TextColumn
	result := &AnalyzeResult{}
	result.start()

	log := r.logger.WithFile(cfg.Comments.Path)
	t, stats, err := ingest.ParseFile(cfg.Comments.Path, r.commentsOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}
	if !t.HasColumn(column) {
		return nil, fmt.Errorf("comments file %s has no %q column", cfg.Comments.Path, column)
	}
	result.Table = t
	result.BadLines = stats.BadLines
	log.Infow("Loaded comments", "rows", stats.Rows, "columns", len(stats.Columns), "bad_lines", stats.BadLines)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis interrupted: %w", err)
	}

	th := sentiment.Thresholds{
		Positive: cfg.Analysis.PositiveThreshold,
		Negative: cfg.Analysis.NegativeThreshold,
	}
	result.Sentiment = sentiment.Annotate(t, column, sentiment.NewAnalyzer(), th)
	r.logger.Infow("Scored comments",
		"scored", result.Sentiment.Scored,
		"failed", result.Sentiment.Failed,
		"positive", result.Sentiment.Positive,
		"negative", result.Sentiment.Negative,
		"neutral", result.Sentiment.Neutral,
	)

	result.PositiveTerms = wordcloud.FromTable(sentiment.Subset(t, sentiment.Positive), column, cfg.Analysis.WordCloudWords)
	result.NegativeTerms = wordcloud.FromTable(sentiment.Subset(t, sentiment.Negative), column, cfg.Analysis.WordCloudWords)

	if dir := cfg.Analysis.WordCloudDir; dir != "" {
		clouds := []struct {
			name  string
			terms []wordcloud.Term
		}{
			{"positive.svg", result.PositiveTerms},
			{"negative.svg", result.NegativeTerms},
		}
		for _, c := range clouds {
			path := filepath.Join(dir, c.name)
			if err := wordcloud.WriteSVGFile(path, c.terms, wordcloud.DefaultRenderOptions()); err != nil {
				return result, fmt.Errorf("word cloud failed: %w", err)
			}
			result.Outputs = append(result.Outputs, path)
			r.logger.WithFile(path).Infow("Wrote word cloud", "terms", len(c.terms))
		}
	}

	result.Emoji = emojiscan.ScanColumn(t, column, cfg.Analysis.TopEmojis)
	r.logger.Infow("Scanned emoji", "comments_with_emoji", result.Emoji.WithEmoji, "total", result.Emoji.Total)

	if path := cfg.Analysis.AnnotatedPath; path != "" {
		if err := export.WriteCSVFile(path, t); err != nil {
			return result, fmt.Errorf("export failed: %w", err)
		}
		result.Outputs = append(result.Outputs, path)
		r.logger.WithFile(path).Infow("Wrote annotated comments", "rows", t.Len())
	}

	result.finish()
	return result, nil
}
