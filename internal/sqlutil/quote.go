// Package sqlutil provides identifier quoting and dialect helpers for the relational exporter.
package sqlutil

import (
	"fmt"
	"regexp"
	"strings"
)

// Dialect selects identifier quoting, column types and placeholders.
type Dialect string

const (
	SQLite Dialect = "sqlite"
	MySQL  Dialect = "mysql"
)

// ParseDialect maps a database driver name to its dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "mysql":
		return MySQL, nil
	}
	return "", fmt.Errorf("unsupported database driver: %q", driver)
}

// QuoteIdentifier quotes a table or column name for the dialect, doubling any embedded quote character.
// Example (sqlite): `Unnamed: 0` -> `"Unnamed: 0"`
// Example (mysql): "my`col" -> "`my``col`"
func (d Dialect) QuoteIdentifier(name string) string {
	if d == MySQL {
		return QuoteIdentifier(name)
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// NumberType is the column type for all-numeric columns.
func (d Dialect) NumberType() string {
	if d == MySQL {
		return "DOUBLE"
	}
	return "REAL"
}

// TextType is the column type for everything else.
func (d Dialect) TextType() string {
	return "TEXT"
}

// Placeholders returns n comma separated bind markers.
func (d Dialect) Placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}

// QuoteIdentifier quotes a MySQL identifier with backticks.
// Example: "my_table" -> "`my_table`"
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// validIdentifierRegex restricts configured table names to alphanumerics and underscore.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name only contains alphanumeric characters and underscores.
// Column names come from CSV headers and are quoted instead; table names come from config and must pass this.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe validates name and quotes it for the dialect.
func (d Dialect) QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return d.QuoteIdentifier(name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}
