package table

import (
	"github.com/elliotchance/orderedmap/v2"
)

// Record is one parsed row: column name to Value, in header order.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// NewRecord creates an empty Record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.NewOrderedMap[string, Value]()}
}

// RecordOf builds a Record from parallel column and value slices.
// Extra columns without a value are set to Null.
func RecordOf(columns []string, values []Value) *Record {
	r := NewRecord()
	for i, col := range columns {
		if i < len(values) {
			r.Set(col, values[i])
		} else {
			r.Set(col, Null())
		}
	}
	return r
}

// Set assigns a value to a column, appending the column if it is new.
func (r *Record) Set(column string, v Value) {
	r.fields.Set(column, v)
}

// Get returns the value of a column, or Null when the record has no such column.
func (r *Record) Get(column string) Value {
	v, ok := r.fields.Get(column)
	if !ok {
		return Null()
	}
	return v
}

// Has reports whether the record carries the column.
func (r *Record) Has(column string) bool {
	_, ok := r.fields.Get(column)
	return ok
}

// Columns returns the record's own columns in order.
func (r *Record) Columns() []string {
	return r.fields.Keys()
}

// Len returns the number of fields in the record.
func (r *Record) Len() int {
	return r.fields.Len()
}
