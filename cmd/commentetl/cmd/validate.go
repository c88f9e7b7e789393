package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/commentetl/internal/config"
	"github.com/dbsmedya/commentetl/internal/database"
	"github.com/dbsmedya/commentetl/internal/ingest"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and check inputs and the export database",
	Long: `Validate checks the configuration file and the resources each command needs.

Checks performed:
  - Configuration syntax and field values (encodings, thresholds, driver, verification method)
  - Merge directory exists and contains matching files
  - Comments file exists
  - Export database is reachable

Example:
  commentetl validate --config commentetl.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	cfg, err := loadConfig((*config.Config).Validate)
	if err != nil {
		return err
	}

	out := outputWriter
	fmt.Fprintf(out, "\n=== Configuration Validation ===\n")
	fmt.Fprintf(out, "Config file: %s\n\n", configFile)

	hasErrors := false
	check := func(name string, err error) {
		if err != nil {
			fmt.Fprintf(out, "❌ %s: %v\n", name, err)
			hasErrors = true
			return
		}
		fmt.Fprintf(out, "✅ %s\n", name)
	}

	fmt.Fprintln(out, "--- merge ---")
	if err := cfg.ValidateMerge(); err != nil {
		check("configuration", err)
	} else {
		names, err := ingest.Enumerate(cfg.Merge.Directory, cfg.Merge.Extension)
		check(fmt.Sprintf("directory %s", cfg.Merge.Directory), err)
		if err == nil {
			fmt.Fprintf(out, "   %d %s files found\n", len(names), cfg.Merge.Extension)
		}
	}

	fmt.Fprintln(out, "--- analyze ---")
	if err := cfg.ValidateAnalyze(); err != nil {
		check("configuration", err)
	} else {
		_, err := os.Stat(cfg.Comments.Path)
		check(fmt.Sprintf("comments file %s", cfg.Comments.Path), err)
	}

	if cfg.Export.Database.Driver != "" {
		fmt.Fprintln(out, "--- database ---")
		target, err := database.Open(context.Background(), &cfg.Export.Database)
		check(fmt.Sprintf("%s connection", cfg.Export.Database.Driver), err)
		if err == nil {
			target.Close()
		}
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	fmt.Fprintln(out, "\n=== Validation Complete ===")
	return nil
}
