package export

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dbsmedya/commentetl/internal/logger"
	"github.com/dbsmedya/commentetl/internal/sqlutil"
	"github.com/dbsmedya/commentetl/internal/table"
)

// SQLResult reports one relational export.
type SQLResult struct {
	Table      string
	RowsBefore int64
	Inserted   int64
}

// SQLExporter appends tables to a relational table, creating it when missing.
type SQLExporter struct {
	db      *sql.DB
	dialect sqlutil.Dialect
	table   string
	quoted  string
	logger  *logger.Logger
}

// NewSQLExporter validates the table name and returns an exporter.
func NewSQLExporter(db *sql.DB, dialect sqlutil.Dialect, tableName string, log *logger.Logger) (*SQLExporter, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	quoted, err := dialect.QuoteIdentifierSafe(tableName)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &SQLExporter{db: db, dialect: dialect, table: tableName, quoted: quoted, logger: log}, nil
}

// CreateTableSQL returns the CREATE TABLE IF NOT EXISTS statement for t's columns.
// A column is numeric when every non-null value is a number; anything else is text.
func (e *SQLExporter) CreateTableSQL(t *table.Table) string {
	defs := make([]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		typ := e.dialect.TextType()
		if t.ColumnKind(c) == table.KindNumber {
			typ = e.dialect.NumberType()
		}
		defs = append(defs, e.dialect.QuoteIdentifier(c)+" "+typ)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)",
		e.quoted, strings.Join(defs, ", "))
}

// InsertSQL returns the parameterized INSERT statement for t's columns.
func (e *SQLExporter) InsertSQL(t *table.Table) string {
	cols := make([]string, 0, len(t.Columns()))
	for _, c := range t.Columns() {
		cols = append(cols, e.dialect.QuoteIdentifier(c))
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		e.quoted, strings.Join(cols, ", "), e.dialect.Placeholders(len(cols)))
}

// Export creates the table if needed and appends every row of t in one transaction.
func (e *SQLExporter) Export(ctx context.Context, t *table.Table) (result *SQLResult, err error) {
	if len(t.Columns()) == 0 {
		return nil, fmt.Errorf("cannot export a table with no columns")
	}

	result = &SQLResult{Table: e.table}

	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure rollback on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				e.logger.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, e.CreateTableSQL(t)); err != nil {
		return nil, fmt.Errorf("failed to create table %s: %w", e.table, err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", e.quoted)
	if err = tx.QueryRowContext(ctx, countQuery).Scan(&result.RowsBefore); err != nil {
		return nil, fmt.Errorf("failed to count rows in %s: %w", e.table, err)
	}

	stmt, err := tx.PrepareContext(ctx, e.InsertSQL(t))
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	columns := t.Columns()
	for i, r := range t.Rows() {
		values := table.Values(r, columns)
		args := make([]interface{}, len(values))
		for j, v := range values {
			args[j] = v.Interface()
		}

		res, execErr := stmt.ExecContext(ctx, args...)
		if execErr != nil {
			err = fmt.Errorf("failed to insert row %d: %w", i, execErr)
			return nil, err
		}
		if n, raErr := res.RowsAffected(); raErr == nil {
			result.Inserted += n
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	e.logger.WithTable(e.table).Infof("Exported %d rows (table had %d)", result.Inserted, result.RowsBefore)
	return result, nil
}

// CountRows returns the current row count of the export table.
func (e *SQLExporter) CountRows(ctx context.Context) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", e.quoted)
	if err := e.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", e.table, err)
	}
	return n, nil
}
