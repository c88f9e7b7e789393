package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/commentetl/internal/textenc"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values shared by every command.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, validateEncoding("comments.encoding", c.Comments.Encoding)...)
	errors = append(errors, validateEncoding("merge.encoding", c.Merge.Encoding)...)
	errors = append(errors, c.validateAnalysis()...)
	errors = append(errors, c.validateExport()...)
	errors = append(errors, c.validateVerification()...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateMerge checks the fields the merge command needs on top of Validate.
func (c *Config) ValidateMerge() error {
	var errors ValidationErrors

	if err := c.Validate(); err != nil {
		errors = append(errors, err.(ValidationErrors)...)
	}

	if c.Merge.Directory == "" {
		errors = append(errors, ValidationError{
			Field:   "merge.directory",
			Message: "directory is required",
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

// ValidateAnalyze checks the fields the analyze command needs on top of Validate.
func (c *Config) ValidateAnalyze() error {
	var errors ValidationErrors

	if err := c.Validate(); err != nil {
		errors = append(errors, err.(ValidationErrors)...)
	}

	if c.Comments.Path == "" {
		errors = append(errors, ValidationError{
			Field:   "comments.path",
			Message: "path is required",
		})
	}

	if c.Comments.TextColumn == "" {
		errors = append(errors, ValidationError{
			Field:   "comments.text_column",
			Message: "text_column is required",
		})
	}

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validateEncoding(field, name string) ValidationErrors {
	if name == "" {
		return nil
	}
	if _, err := textenc.Lookup(name); err != nil {
		return ValidationErrors{{
			Field:   field,
			Message: fmt.Sprintf("unknown encoding %q", name),
		}}
	}
	return nil
}

func (c *Config) validateAnalysis() ValidationErrors {
	var errors ValidationErrors

	if c.Analysis.PositiveThreshold < c.Analysis.NegativeThreshold {
		errors = append(errors, ValidationError{
			Field:   "analysis.positive_threshold",
			Message: "positive_threshold must not be below negative_threshold",
		})
	}

	if c.Analysis.PositiveThreshold > 1 || c.Analysis.NegativeThreshold < -1 {
		errors = append(errors, ValidationError{
			Field:   "analysis",
			Message: "thresholds must lie within [-1, 1]",
		})
	}

	if c.Analysis.WordCloudWords < 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.wordcloud_words",
			Message: "wordcloud_words cannot be negative",
		})
	}

	if c.Analysis.TopEmojis < 0 {
		errors = append(errors, ValidationError{
			Field:   "analysis.top_emojis",
			Message: "top_emojis cannot be negative",
		})
	}

	return errors
}

func (c *Config) validateExport() ValidationErrors {
	var errors ValidationErrors

	if c.Export.HeadRows <= 0 {
		errors = append(errors, ValidationError{
			Field:   "export.head_rows",
			Message: "head_rows must be positive",
		})
	}

	if c.Export.PreviewRows < 0 {
		errors = append(errors, ValidationError{
			Field:   "export.preview_rows",
			Message: "preview_rows cannot be negative",
		})
	}

	db := &c.Export.Database
	switch db.Driver {
	case "":
		// relational export disabled
	case "sqlite":
		if db.Path == "" {
			errors = append(errors, ValidationError{
				Field:   "export.database.path",
				Message: "path is required for the sqlite driver",
			})
		}
	case "mysql":
		if db.Host == "" {
			errors = append(errors, ValidationError{
				Field:   "export.database.host",
				Message: "host is required for the mysql driver",
			})
		}
		if db.Port <= 0 || db.Port > 65535 {
			errors = append(errors, ValidationError{
				Field:   "export.database.port",
				Message: "port must be between 1 and 65535",
			})
		}
		if db.User == "" {
			errors = append(errors, ValidationError{
				Field:   "export.database.user",
				Message: "user is required for the mysql driver",
			})
		}
		if db.Database == "" {
			errors = append(errors, ValidationError{
				Field:   "export.database.database",
				Message: "database name is required for the mysql driver",
			})
		}
		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[db.TLS] {
			errors = append(errors, ValidationError{
				Field:   "export.database.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	default:
		errors = append(errors, ValidationError{
			Field:   "export.database.driver",
			Message: "driver must be 'sqlite' or 'mysql'",
		})
	}

	if db.Driver != "" && db.Table == "" {
		errors = append(errors, ValidationError{
			Field:   "export.database.table",
			Message: "table is required when a driver is set",
		})
	}

	return errors
}

func (c *Config) validateVerification() ValidationErrors {
	var errors ValidationErrors

	validMethods := map[string]bool{"count": true, "sha256": true, "skip": true, "": true}
	if !validMethods[c.Verification.Method] {
		errors = append(errors, ValidationError{
			Field:   "verification.method",
			Message: "method must be 'count', 'sha256' or 'skip'",
		})
	}

	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
