package ingest

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/commentetl/internal/table"
)

func parseString(t *testing.T, data string, opts Options) (*table.Table, ParseStats, error) {
	t.Helper()
	return Parse("test.csv", strings.NewReader(data), opts)
}

func TestParseBasic(t *testing.T) {
	tb, stats, err := parseString(t, "id,comment,likes\n1,great video,10\n2,\"hello, world\",\n", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "comment", "likes"}, tb.Columns())
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 0, stats.BadLines)
	require.Equal(t, 2, tb.Len())

	assert.Equal(t, table.KindNumber, tb.Row(0).Get("id").Kind())
	assert.Equal(t, "hello, world", tb.Row(1).Get("comment").Text())
	assert.True(t, tb.Row(1).Get("likes").IsNull())
}

func TestParseSkipsBadLines(t *testing.T) {
	data := "a,b\n1,2\n3,4,5\n6\n7,\"8\n"
	tb, stats, err := parseString(t, data, Options{SkipBadLines: true})
	require.NoError(t, err)

	// "3,4,5" has too many fields; the unterminated quote on the last line is rejected.
	assert.Equal(t, 2, stats.BadLines)
	require.Equal(t, 2, tb.Len())
	assert.Equal(t, "1", tb.Row(0).Get("a").Text())
	assert.Equal(t, "6", tb.Row(1).Get("a").Text())
	assert.True(t, tb.Row(1).Get("b").IsNull(), "short rows are padded with null")
}

func TestParseBadLineFailsWithoutSkip(t *testing.T) {
	_, _, err := parseString(t, "a,b\n1,2\n3,4,5\n", Options{SkipBadLines: false})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, KindMalformed, KindOf(err))
	assert.Contains(t, err.Error(), "expected 2 fields, saw 3")
}

func TestParseBareQuoteFailsWithoutSkip(t *testing.T) {
	_, _, err := parseString(t, "a,b\n1,x\"y\n", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseLazyQuotes(t *testing.T) {
	tb, _, err := parseString(t, "a,b\n1,x\"y\n", Options{LazyQuotes: true})
	require.NoError(t, err)
	assert.Equal(t, `x"y`, tb.Row(0).Get("b").Text())
}

func TestParseEmpty(t *testing.T) {
	_, _, err := parseString(t, "", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, KindEmpty, KindOf(err))
}

func TestParseHeaderOnly(t *testing.T) {
	tb, stats, err := parseString(t, "a,b\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, tb.Len())
	assert.Equal(t, []string{"a", "b"}, stats.Columns)
}

func TestParseStripsUTF8BOM(t *testing.T) {
	tb, _, err := parseString(t, "\xEF\xBB\xBFname\nx\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tb.Columns())
}

func TestParseInvalidUTF8(t *testing.T) {
	_, _, err := parseString(t, "name\ncaf\xE9\n", Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoding)
	assert.Equal(t, KindEncoding, KindOf(err))
}

func TestParseLatin1(t *testing.T) {
	tb, _, err := parseString(t, "name\ncaf\xE9\n", Options{Encoding: "ISO-8859-1"})
	require.NoError(t, err)
	assert.Equal(t, "café", tb.Row(0).Get("name").Text())
}

func TestParseUnknownEncoding(t *testing.T) {
	_, _, err := parseString(t, "a\n1\n", Options{Encoding: "martian"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncoding)
}

func TestParseFileMissing(t *testing.T) {
	_, _, err := ParseFile(filepath.Join(t.TempDir(), "gone.csv"), Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreadable)

	var fe *FileError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, KindUnreadable, fe.Kind)
}

func TestHeaderColumns(t *testing.T) {
	tests := []struct {
		name   string
		header []string
		want   []string
	}{
		{name: "unique", header: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "repeats", header: []string{"a", "a", "a"}, want: []string{"a", "a.1", "a.2"}},
		{name: "repeat collides with literal", header: []string{"a", "a.1", "a"}, want: []string{"a", "a.1", "a.2"}},
		{name: "unnamed", header: []string{"", "b", ""}, want: []string{"Unnamed: 0", "b", "Unnamed: 2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, headerColumns(tt.header))
		})
	}
}
