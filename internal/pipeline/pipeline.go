// Package pipeline runs the merge and analyze flows end to end.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/database"
	"github.com/dbsmedya/commentetl/internal/ingest"
	"github.com/dbsmedya/commentetl/internal/logger"
)

// Runner executes flows for one configuration. It holds no state between runs.
type Runner struct {
	config *config.Config
	logger *logger.Logger
	openDB func(ctx context.Context, cfg *config.DatabaseConfig) (*database.Target, error)
}

// NewRunner creates a runner. A nil logger uses the default logger.
func NewRunner(cfg *config.Config, log *logger.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Runner{
		config: cfg,
		logger: log,
		openDB: database.Open,
	}, nil
}

// timing is embedded in flow results.
type timing struct {
	StartedAt   time.Time
	CompletedAt time.Time
	Duration    time.Duration
}

func (t *timing) start() {
	t.StartedAt = time.Now()
}

func (t *timing) finish() {
	t.CompletedAt = time.Now()
	t.Duration = t.CompletedAt.Sub(t.StartedAt)
}

func (r *Runner) mergeOptions() ingest.Options {
	return ingest.Options{
		Encoding:     r.config.Merge.Encoding,
		SkipBadLines: r.config.Merge.SkipBadLines,
		LazyQuotes:   r.config.Merge.LazyQuotes,
	}
}

// commentsOptions parses the primary comments file with its own encoding
// and the merge flow's bad-line policy.
func (r *Runner) commentsOptions() ingest.Options {
	return ingest.Options{
		Encoding:     r.config.Comments.Encoding,
		SkipBadLines: r.config.Merge.SkipBadLines,
		LazyQuotes:   r.config.Merge.LazyQuotes,
	}
}
