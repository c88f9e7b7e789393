package table

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Table is an ordered sequence of Records sharing a column set.
// The column set is the union of every appended record's columns, in first-seen order.
// A column a record lacks reads as Null.
type Table struct {
	columns *orderedmap.OrderedMap[string, int]
	rows    []*Record
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	t := &Table{columns: orderedmap.NewOrderedMap[string, int]()}
	for _, c := range columns {
		t.AddColumn(c)
	}
	return t
}

// AddColumn adds a column to the column set if absent.
func (t *Table) AddColumn(name string) {
	if _, ok := t.columns.Get(name); ok {
		return
	}
	t.columns.Set(name, t.columns.Len())
}

// HasColumn reports whether the column set contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.columns.Get(name)
	return ok
}

// Columns returns the column set in order.
func (t *Table) Columns() []string {
	return t.columns.Keys()
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.rows)
}

// Shape returns (rows, columns).
func (t *Table) Shape() (int, int) {
	return len(t.rows), t.columns.Len()
}

// Rows returns the records in order. The slice must not be modified.
func (t *Table) Rows() []*Record {
	return t.rows
}

// Row returns the i-th record.
func (t *Table) Row(i int) *Record {
	return t.rows[i]
}

// AppendRecord adds a record, extending the column set with any new columns.
func (t *Table) AppendRecord(r *Record) {
	for _, c := range r.Columns() {
		t.AddColumn(c)
	}
	t.rows = append(t.rows, r)
}

// Append concatenates other onto t: column union, rows in order.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	for _, c := range other.Columns() {
		t.AddColumn(c)
	}
	t.rows = append(t.rows, other.rows...)
}

// Concat combines tables in order into a new table. No rows are transformed.
func Concat(tables ...*Table) *Table {
	out := New()
	for _, tb := range tables {
		out.Append(tb)
	}
	return out
}

// Head returns a table with the first n rows. The column set is kept whole.
func (t *Table) Head(n int) *Table {
	if n < 0 {
		n = 0
	}
	if n > len(t.rows) {
		n = len(t.rows)
	}
	out := New(t.Columns()...)
	out.rows = append(out.rows, t.rows[:n]...)
	return out
}

// Filter returns a table with the rows for which keep returns true.
func (t *Table) Filter(keep func(*Record) bool) *Table {
	out := New(t.Columns()...)
	for _, r := range t.rows {
		if keep(r) {
			out.rows = append(out.rows, r)
		}
	}
	return out
}

// Values returns the record's values aligned to the given columns.
func Values(r *Record, columns []string) []Value {
	vals := make([]Value, len(columns))
	for i, c := range columns {
		vals[i] = r.Get(c)
	}
	return vals
}

// Column returns every row's value for one column.
func (t *Table) Column(name string) []Value {
	vals := make([]Value, len(t.rows))
	for i, r := range t.rows {
		vals[i] = r.Get(name)
	}
	return vals
}

// ColumnKind returns KindNumber when every non-null value of the column is a number,
// KindNull when the column holds only nulls, and KindString otherwise.
func (t *Table) ColumnKind(name string) Kind {
	kind := KindNull
	for _, r := range t.rows {
		switch r.Get(name).Kind() {
		case KindString:
			return KindString
		case KindNumber:
			kind = KindNumber
		}
	}
	return kind
}
