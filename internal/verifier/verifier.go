// Package verifier checks exported data against the in-memory table.
package verifier

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dbsmedya/commentetl/internal/export"
	"github.com/dbsmedya/commentetl/internal/logger"
	"github.com/dbsmedya/commentetl/internal/table"
)

// VerificationMethod defines how to verify data integrity.
type VerificationMethod string

const (
	// MethodCount compares row counts and the column set (fast)
	MethodCount VerificationMethod = "count"
	// MethodSHA256 additionally hashes every row of the CSV export
	MethodSHA256 VerificationMethod = "sha256"
	// MethodSkip skips verification entirely
	MethodSkip VerificationMethod = "skip"
)

// VerifyResult holds verification results for a single export target.
type VerifyResult struct {
	Target        string
	Method        VerificationMethod
	ExpectedCount int64
	ActualCount   int64
	ExpectedHash  string
	ActualHash    string
	Match         bool
	ErrorMessage  string
}

// VerifyStats contains overall verification statistics.
type VerifyStats struct {
	TargetsVerified int
	TargetsPassed   int
	TargetsFailed   int
	TotalRows       int64
	Method          VerificationMethod
}

// RowCounter reports the current row count of a relational export table.
type RowCounter interface {
	CountRows(ctx context.Context) (int64, error)
}

// Request names the exports of one run.
type Request struct {
	// CSVPath is the full CSV export, compared against Table.
	CSVPath string
	Table   *table.Table

	// SQL and SQLResult describe the relational export; SQLExpected is the number of rows handed to it.
	SQL         RowCounter
	SQLResult   *export.SQLResult
	SQLExpected int
}

// Verifier handles data integrity verification of exports.
type Verifier struct {
	method VerificationMethod
	logger *logger.Logger
}

// NewVerifier creates a new verifier. An empty method defaults to count.
func NewVerifier(method VerificationMethod, log *logger.Logger) (*Verifier, error) {
	if log == nil {
		log = logger.NewDefault()
	}

	if method == "" {
		method = MethodCount
	}
	switch method {
	case MethodCount, MethodSHA256, MethodSkip:
	default:
		return nil, fmt.Errorf("unsupported verification method: %s", method)
	}

	return &Verifier{method: method, logger: log}, nil
}

// Verify checks every export named in req. The first mismatch is returned as an error.
func (v *Verifier) Verify(ctx context.Context, req Request) (*VerifyStats, error) {
	if v.method == MethodSkip {
		v.logger.Info("Verification SKIPPED (method=skip)")
		return &VerifyStats{Method: MethodSkip}, nil
	}

	stats := &VerifyStats{Method: v.method}

	type check struct {
		name string
		run  func() (*VerifyResult, error)
	}
	var checks []check
	if req.CSVPath != "" && req.Table != nil {
		checks = append(checks, check{req.CSVPath, func() (*VerifyResult, error) {
			return v.VerifyCSV(ctx, req.CSVPath, req.Table)
		}})
	}
	if req.SQL != nil && req.SQLResult != nil {
		checks = append(checks, check{req.SQLResult.Table, func() (*VerifyResult, error) {
			return v.VerifySQL(ctx, req.SQL, req.SQLResult, req.SQLExpected)
		}})
	}

	v.logger.Infof("Starting verification (method=%s) for %d targets", v.method, len(checks))

	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return stats, fmt.Errorf("verification interrupted: %w", err)
		}

		result, err := c.run()
		if err != nil {
			return stats, fmt.Errorf("verification failed for %s: %w", c.name, err)
		}

		stats.TargetsVerified++
		stats.TotalRows += result.ActualCount

		if !result.Match {
			stats.TargetsFailed++
			v.logger.Errorf("Verification FAILED for %q: %s", c.name, result.ErrorMessage)
			return stats, fmt.Errorf("verification mismatch in %s: %s", c.name, result.ErrorMessage)
		}
		stats.TargetsPassed++
		v.logger.Debugf("Verification PASSED for %q (%d rows)", c.name, result.ActualCount)
	}

	v.logger.Infof("Verification complete: %d targets verified, %d passed, %d failed, %d total rows",
		stats.TargetsVerified, stats.TargetsPassed, stats.TargetsFailed, stats.TotalRows)

	return stats, nil
}

// VerifyCSV re-reads a CSV export and compares its header, row count and, for sha256, row content with t.
func (v *Verifier) VerifyCSV(ctx context.Context, path string, t *table.Table) (*VerifyResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	result := &VerifyResult{
		Target:        path,
		Method:        v.method,
		ExpectedCount: int64(t.Len()),
	}

	columns := t.Columns()
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !slices.Equal(header, columns) {
		result.ErrorMessage = fmt.Sprintf("column mismatch: table=%v, file=%v", columns, header)
		return result, nil
	}

	var fileHash hash.Hash
	if v.method == MethodSHA256 {
		fileHash = sha256.New()
	}

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", result.ActualCount+1, err)
		}
		if fileHash != nil {
			writeRow(fileHash, header, record)
		}
		result.ActualCount++

		if result.ActualCount%10000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("hash computation interrupted: %w", err)
			}
		}
	}

	result.Match = result.ExpectedCount == result.ActualCount
	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("count mismatch: table=%d, file=%d", result.ExpectedCount, result.ActualCount)
		return result, nil
	}

	if fileHash != nil {
		result.ExpectedHash = TableHash(t)
		result.ActualHash = hex.EncodeToString(fileHash.Sum(nil))
		if result.ExpectedHash != result.ActualHash {
			result.Match = false
			result.ErrorMessage = fmt.Sprintf("hash mismatch: table=%s, file=%s", result.ExpectedHash[:16], result.ActualHash[:16])
		}
	}

	return result, nil
}

// VerifySQL checks that the relational table grew by exactly the rows handed to the exporter.
func (v *Verifier) VerifySQL(ctx context.Context, counter RowCounter, res *export.SQLResult, expected int) (*VerifyResult, error) {
	after, err := counter.CountRows(ctx)
	if err != nil {
		return nil, err
	}

	delta := after - res.RowsBefore
	result := &VerifyResult{
		Target:        res.Table,
		Method:        MethodCount,
		ExpectedCount: int64(expected),
		ActualCount:   delta,
		Match:         delta == int64(expected) && res.Inserted == int64(expected),
	}
	if !result.Match {
		result.ErrorMessage = fmt.Sprintf("count mismatch: expected=%d, inserted=%d, table delta=%d",
			expected, res.Inserted, delta)
	}
	return result, nil
}

// TableHash returns the SHA256 of t's rows serialized exactly as the CSV exporter writes them.
func TableHash(t *table.Table) string {
	h := sha256.New()
	columns := t.Columns()
	for _, r := range t.Rows() {
		writeRow(h, columns, export.Cells(r, columns))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeRow(h hash.Hash, columns, cells []string) {
	h.Write([]byte(serializeRow(columns, cells)))
	h.Write([]byte("\n"))
}

// serializeRow converts a row to a deterministic string representation for hashing.
// Format: col1=val1\x00col2=val2...
// CSV readers fold \r\n inside quoted fields to \n, so both sides are folded the same way.
func serializeRow(columns, cells []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		val := ""
		if i < len(cells) {
			val = strings.ReplaceAll(cells[i], "\r\n", "\n")
		}
		parts[i] = col + "=" + val
	}
	// Use null byte separator to avoid ambiguity with column values containing commas
	return strings.Join(parts, "\x00")
}

// GetMethod returns the configured verification method.
func (v *Verifier) GetMethod() VerificationMethod {
	return v.method
}
