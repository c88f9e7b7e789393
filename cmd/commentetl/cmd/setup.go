package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/logger"
	"github.com/dbsmedya/commentetl/internal/report"
)

// outputWriter is used for printing output, can be overridden in tests
var outputWriter io.Writer = os.Stdout

// SetOutputWriter sets the output writer (for testing)
func SetOutputWriter(w io.Writer) {
	outputWriter = w
}

// ResetOutputWriter resets the output writer to stdout
func ResetOutputWriter() {
	outputWriter = os.Stdout
}

// loadConfig reads the config file, applies CLI overrides and runs check.
func loadConfig(check func(*config.Config) error) (*config.Config, error) {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := GetCLIOverrides()
	cfg.ApplyOverrides(overrides.LogLevel, overrides.LogFormat,
		overrides.HeadRows, overrides.PreviewRows, overrides.SkipVerify)

	if check != nil {
		if err := check(cfg); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return cfg, nil
}

// setup loads a validated config and its logger for a flow command.
func setup(name string, check func(*config.Config) error) (*config.Config, *logger.Logger, error) {
	cfg, err := loadConfig(check)
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, log.WithCommand(name), nil
}

// reportOptions colors output only when writing to the real stdout.
func reportOptions() report.Options {
	opts := report.DefaultOptions()
	opts.Color = outputWriter == os.Stdout
	return opts
}
