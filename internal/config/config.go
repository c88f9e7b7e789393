// Package config provides configuration structures and loading for commentetl.
package config

// Config represents the complete application configuration.
type Config struct {
	Comments     CommentsConfig     `yaml:"comments" mapstructure:"comments"`
	Merge        MergeConfig        `yaml:"merge" mapstructure:"merge"`
	Analysis     AnalysisConfig     `yaml:"analysis" mapstructure:"analysis"`
	Export       ExportConfig       `yaml:"export" mapstructure:"export"`
	Verification VerificationConfig `yaml:"verification" mapstructure:"verification"`
	Logging      LoggingConfig      `yaml:"logging" mapstructure:"logging"`
}

// CommentsConfig describes the primary comments file used by the analyze flow.
type CommentsConfig struct {
	Path       string `yaml:"path" mapstructure:"path"`
	Encoding   string `yaml:"encoding" mapstructure:"encoding"` // empty means UTF-8
	TextColumn string `yaml:"text_column" mapstructure:"text_column"`
}

// MergeConfig describes the batch of CSV files combined by the merge flow.
type MergeConfig struct {
	Directory    string `yaml:"directory" mapstructure:"directory"`
	Extension    string `yaml:"extension" mapstructure:"extension"`
	Encoding     string `yaml:"encoding" mapstructure:"encoding"`
	SkipBadLines bool   `yaml:"skip_bad_lines" mapstructure:"skip_bad_lines"`
	LazyQuotes   bool   `yaml:"lazy_quotes" mapstructure:"lazy_quotes"`
}

// AnalysisConfig holds sentiment, word cloud and emoji settings.
type AnalysisConfig struct {
	PositiveThreshold float64 `yaml:"positive_threshold" mapstructure:"positive_threshold"`
	NegativeThreshold float64 `yaml:"negative_threshold" mapstructure:"negative_threshold"`
	WordCloudWords    int     `yaml:"wordcloud_words" mapstructure:"wordcloud_words"`
	WordCloudDir      string  `yaml:"wordcloud_dir" mapstructure:"wordcloud_dir"`
	TopEmojis         int     `yaml:"top_emojis" mapstructure:"top_emojis"`
	AnnotatedPath     string  `yaml:"annotated_path" mapstructure:"annotated_path"`
}

// ExportConfig lists output destinations. An empty path disables that output.
type ExportConfig struct {
	CSVPath     string         `yaml:"csv_path" mapstructure:"csv_path"`
	CSVHeadPath string         `yaml:"csv_head_path" mapstructure:"csv_head_path"`
	JSONPath    string         `yaml:"json_path" mapstructure:"json_path"`
	HeadRows    int            `yaml:"head_rows" mapstructure:"head_rows"`
	PreviewRows int            `yaml:"preview_rows" mapstructure:"preview_rows"`
	Database    DatabaseConfig `yaml:"database" mapstructure:"database"`
}

// DatabaseConfig represents the relational export target.
// The sqlite driver uses Path; the mysql driver uses the network fields.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" mapstructure:"driver"` // sqlite, mysql, or empty to disable
	Path     string `yaml:"path" mapstructure:"path"`
	Table    string `yaml:"table" mapstructure:"table"`
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	Database string `yaml:"database" mapstructure:"database"`
	TLS      string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
}

// VerificationConfig represents export verification settings.
type VerificationConfig struct {
	Method string `yaml:"method" mapstructure:"method"` // "count", "sha256" or "skip"
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Comments: CommentsConfig{
			TextColumn: "comment",
		},
		Merge: MergeConfig{
			Extension:    ".csv",
			Encoding:     "ISO-8859-1",
			SkipBadLines: true,
		},
		Analysis: AnalysisConfig{
			PositiveThreshold: 0.05,
			NegativeThreshold: -0.05,
			WordCloudWords:    100,
			TopEmojis:         10,
		},
		Export: ExportConfig{
			HeadRows:    1000,
			PreviewRows: 5,
			Database: DatabaseConfig{
				Driver: "sqlite",
				Path:   "commentetl.db",
				Table:  "Users",
				Port:   3306,
				TLS:    "preferred",
			},
		},
		Verification: VerificationConfig{
			Method: "count",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
	}
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-zero/non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat string, headRows, previewRows int, skipVerify bool) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if headRows > 0 {
		c.Export.HeadRows = headRows
	}
	if previewRows > 0 {
		c.Export.PreviewRows = previewRows
	}
	if skipVerify {
		c.Verification.Method = "skip"
	}
}
