// Package export serializes a table as CSV, JSON and into a relational table.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dbsmedya/commentetl/internal/table"
)

// Cells renders a record as CSV fields in column order. Null is the empty field;
// numbers keep their source text.
func Cells(r *table.Record, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = r.Get(c).Text()
	}
	return out
}

// WriteCSV writes a header row followed by every record. No index column is written.
func WriteCSV(w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	columns := t.Columns()

	if err := writeRecord(cw, w, columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range t.Rows() {
		if err := writeRecord(cw, w, Cells(r, columns)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeRecord writes fields through cw. A record made of one empty field is
// written as a quoted "" line, since csv.Writer emits a blank line for it and
// readers skip blank lines.
func writeRecord(cw *csv.Writer, w io.Writer, fields []string) error {
	if len(fields) != 1 || fields[0] != "" {
		return cw.Write(fields)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(w, `""`+"\n")
	return err
}

// WriteCSVFile writes t to path, creating parent directories.
func WriteCSVFile(path string, t *table.Table) error {
	return writeFile(path, func(w io.Writer) error { return WriteCSV(w, t) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
