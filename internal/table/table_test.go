package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(kv ...string) *Record {
	r := NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i], Parse(kv[i+1]))
	}
	return r
}

func TestRecordGetMissingIsNull(t *testing.T) {
	r := row("a", "1")
	assert.True(t, r.Get("b").IsNull())
	assert.False(t, r.Has("b"))
	assert.Equal(t, []string{"a"}, r.Columns())
}

func TestRecordOfPadsMissingValues(t *testing.T) {
	r := RecordOf([]string{"a", "b", "c"}, []Value{Parse("1")})
	assert.Equal(t, 3, r.Len())
	assert.True(t, r.Get("c").IsNull())
}

func TestConcatUnionsColumns(t *testing.T) {
	first := New()
	first.AppendRecord(row("a", "1", "b", "2"))
	second := New()
	second.AppendRecord(row("b", "3", "c", "x"))
	second.AppendRecord(row("b", "4", "c", "y"))

	combined := Concat(first, second)

	rows, cols := combined.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, []string{"a", "b", "c"}, combined.Columns())
	assert.True(t, combined.Row(0).Get("c").IsNull())
	assert.True(t, combined.Row(1).Get("a").IsNull())
	assert.Equal(t, "4", combined.Row(2).Get("b").Text())
}

func TestConcatEmpty(t *testing.T) {
	combined := Concat()
	rows, cols := combined.Shape()
	assert.Equal(t, 0, rows)
	assert.Equal(t, 0, cols)
}

func TestHead(t *testing.T) {
	tb := New("a")
	for i := 0; i < 5; i++ {
		tb.AppendRecord(row("a", "1"))
	}
	assert.Equal(t, 3, tb.Head(3).Len())
	assert.Equal(t, 5, tb.Head(100).Len())
	assert.Equal(t, 0, tb.Head(-1).Len())
	assert.Equal(t, []string{"a"}, tb.Head(0).Columns())
}

func TestFilterAndColumn(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("n", "1"))
	tb.AppendRecord(row("n", "2"))
	tb.AppendRecord(row("n", "3"))

	odd := tb.Filter(func(r *Record) bool {
		f, _ := r.Get("n").Float()
		return int(f)%2 == 1
	})
	require.Equal(t, 2, odd.Len())
	vals := odd.Column("n")
	assert.Equal(t, "1", vals[0].Text())
	assert.Equal(t, "3", vals[1].Text())
}

func TestColumnKind(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("num", "1", "txt", "a", "empty", ""))
	tb.AppendRecord(row("num", "", "txt", "2", "empty", ""))

	assert.Equal(t, KindNumber, tb.ColumnKind("num"))
	assert.Equal(t, KindString, tb.ColumnKind("txt"))
	assert.Equal(t, KindNull, tb.ColumnKind("empty"))
}

func TestDedupe(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("a", "1", "b", "2"))
	tb.AppendRecord(row("a", "1", "b", "2"))
	tb.AppendRecord(row("a", "1", "b", "3"))

	out, removed := tb.Dedupe()

	assert.Equal(t, 1, removed)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, "2", out.Row(0).Get("b").Text())
	assert.Equal(t, "3", out.Row(1).Get("b").Text())
}

func TestDedupeIsIdempotent(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("a", "x", "b", ""))
	tb.AppendRecord(row("a", "x"))
	tb.AppendRecord(row("a", "y", "b", "1"))
	tb.AppendRecord(row("a", "y", "b", "1.0"))

	once, removedOnce := tb.Dedupe()
	twice, removedTwice := once.Dedupe()

	assert.Equal(t, 2, removedOnce)
	assert.Equal(t, 0, removedTwice)
	assert.Equal(t, once.Len(), twice.Len())
	for i := range once.Rows() {
		assert.Equal(t, RowKey(once.Row(i), once.Columns()), RowKey(twice.Row(i), twice.Columns()))
	}
}

func TestDedupeKeepsDistinctKinds(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("a", "1"))
	r := NewRecord()
	r.Set("a", String("1"))
	tb.AppendRecord(r)

	out, removed := tb.Dedupe()
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, out.Len())
}

func TestDedupeSignedZero(t *testing.T) {
	tb := New()
	tb.AppendRecord(row("a", "0"))
	tb.AppendRecord(row("a", "-0"))
	tb.AppendRecord(row("a", "0.0"))

	require.True(t, Parse("0").Equal(Parse("-0")))
	assert.Equal(t, RowKey(tb.Row(0), tb.Columns()), RowKey(tb.Row(1), tb.Columns()))

	out, removed := tb.Dedupe()
	assert.Equal(t, 2, removed)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "0", out.Row(0).Get("a").Text())
}

func TestRowKeyNoSeparatorCollision(t *testing.T) {
	a := NewRecord()
	a.Set("x", String("ab"))
	a.Set("y", String("c"))
	b := NewRecord()
	b.Set("x", String("a"))
	b.Set("y", String("bc"))
	cols := []string{"x", "y"}
	assert.NotEqual(t, RowKey(a, cols), RowKey(b, cols))
}
