package table

import (
	"strings"
)

// RowKey returns a canonical encoding of a record over the given columns.
// Two records have equal keys exactly when every column value is Equal.
func RowKey(r *Record, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		b.WriteString(r.Get(c).key())
		b.WriteByte(0)
	}
	return b.String()
}

// Dedupe returns a table without exact-duplicate rows and the number of rows removed.
// Rows are compared across the whole column set (absent columns are Null) and the
// first occurrence is kept.
func (t *Table) Dedupe() (*Table, int) {
	columns := t.Columns()
	seen := make(map[string]struct{}, len(t.rows))
	out := New(columns...)
	removed := 0

	for _, r := range t.rows {
		k := RowKey(r, columns)
		if _, dup := seen[k]; dup {
			removed++
			continue
		}
		seen[k] = struct{}{}
		out.rows = append(out.rows, r)
	}

	return out, removed
}
