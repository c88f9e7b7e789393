package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper creates a Config from an existing Viper instance.
// Useful for testing or when Viper is configured externally.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	substituteEnvVars(cfg)

	return cfg, nil
}

// envVarPattern matches ${VAR_NAME} or $VAR_NAME patterns
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// substituteEnvVars replaces ${VAR_NAME} patterns in paths and credentials.
func substituteEnvVars(cfg *Config) {
	cfg.Comments.Path = expandEnvVar(cfg.Comments.Path)
	cfg.Merge.Directory = expandEnvVar(cfg.Merge.Directory)

	cfg.Analysis.WordCloudDir = expandEnvVar(cfg.Analysis.WordCloudDir)
	cfg.Analysis.AnnotatedPath = expandEnvVar(cfg.Analysis.AnnotatedPath)

	cfg.Export.CSVPath = expandEnvVar(cfg.Export.CSVPath)
	cfg.Export.CSVHeadPath = expandEnvVar(cfg.Export.CSVHeadPath)
	cfg.Export.JSONPath = expandEnvVar(cfg.Export.JSONPath)

	cfg.Export.Database.Path = expandEnvVar(cfg.Export.Database.Path)
	cfg.Export.Database.Host = expandEnvVar(cfg.Export.Database.Host)
	cfg.Export.Database.User = expandEnvVar(cfg.Export.Database.User)
	cfg.Export.Database.Password = expandEnvVar(cfg.Export.Database.Password)
	cfg.Export.Database.Database = expandEnvVar(cfg.Export.Database.Database)

	cfg.Logging.Output = expandEnvVar(cfg.Logging.Output)
}

// expandEnvVar expands environment variables in the format ${VAR} or $VAR.
func expandEnvVar(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		var varName string
		if strings.HasPrefix(match, "${") {
			varName = match[2 : len(match)-1]
		} else {
			varName = match[1:]
		}

		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		// Return original if env var not found
		return match
	})
}
