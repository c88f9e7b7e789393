package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	headRows    int
	previewRows int
	skipVerify  bool
)

var rootCmd = &cobra.Command{
	Use:   "commentetl",
	Short: "YouTube comment CSV merger and analyzer",
	Long: `A batch tool for YouTube comment exports.

Features:
  - Merges every CSV in a directory into one table (column union, bad lines skipped)
  - Removes exact duplicate rows
  - Exports CSV, JSON and a relational table (SQLite or MySQL)
  - Scores comment sentiment and builds word clouds
  - Counts emoji usage
  - Export verification (count and SHA256)`,
	Version: Version,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "commentetl.yaml",
		"Path to configuration file")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Export overrides
	rootCmd.PersistentFlags().IntVar(&headRows, "head-rows", 0,
		"Override number of rows in head exports (JSON, head CSV, relational)")
	rootCmd.PersistentFlags().IntVar(&previewRows, "preview-rows", 0,
		"Override number of rows printed in the preview")

	// Safety overrides
	rootCmd.PersistentFlags().BoolVar(&skipVerify, "skip-verify", false,
		"Skip export verification")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	HeadRows    int
	PreviewRows int
	SkipVerify  bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		HeadRows:    headRows,
		PreviewRows: previewRows,
		SkipVerify:  skipVerify,
	}
}
