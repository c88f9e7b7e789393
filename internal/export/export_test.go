package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/commentetl/internal/ingest"
	"github.com/dbsmedya/commentetl/internal/table"
)

func sampleTable() *table.Table {
	t := table.New("author", "comment", "likes")
	t.AppendRecord(table.RecordOf(t.Columns(), []table.Value{table.String("ana"), table.String("great, really"), table.Parse("12")}))
	t.AppendRecord(table.RecordOf(t.Columns(), []table.Value{table.String("bo"), table.String(`say "hi"`), table.Null()}))
	t.AppendRecord(table.RecordOf(t.Columns(), []table.Value{table.String("cy"), table.Null(), table.Parse("3.50")}))
	return t
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	expected := "author,comment,likes\n" +
		"ana,\"great, really\",12\n" +
		"bo,\"say \"\"hi\"\"\",\n" +
		"cy,,3.50\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteCSV_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.New("a", "b")))
	assert.Equal(t, "a,b\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	src := sampleTable()
	path := filepath.Join(t.TempDir(), "nested", "merged.csv")
	require.NoError(t, WriteCSVFile(path, src))

	got, stats, err := ingest.ParseFile(path, ingest.Options{})
	require.NoError(t, err)
	assert.Equal(t, src.Len(), got.Len())
	assert.Equal(t, src.Columns(), got.Columns())
	assert.Equal(t, 0, stats.BadLines)

	for i := range src.Rows() {
		for _, c := range src.Columns() {
			assert.True(t, src.Row(i).Get(c).Equal(got.Row(i).Get(c)), "row %d column %s", i, c)
		}
	}
}

func TestWriteCSV_SingleColumnNull(t *testing.T) {
	src := table.New("comment")
	for _, v := range []table.Value{table.String("hello"), table.Parse("NA"), table.String("world")} {
		src.AppendRecord(table.RecordOf(src.Columns(), []table.Value{v}))
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, src))
	assert.Equal(t, "comment\nhello\n\"\"\nworld\n", buf.String())

	got, stats, err := ingest.Parse("single.csv", &buf, ingest.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	assert.Equal(t, 0, stats.BadLines)
	assert.True(t, got.Row(1).Get("comment").IsNull())
}

func TestWriteCSV_SingleEmptyHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, table.New("")))
	assert.Equal(t, "\"\"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleTable()))

	expected := "[\n" +
		`{"author":"ana","comment":"great, really","likes":12},` + "\n" +
		`{"author":"bo","comment":"say \"hi\"","likes":null},` + "\n" +
		`{"author":"cy","comment":null,"likes":3.5}` + "\n" +
		"]\n"
	assert.Equal(t, expected, buf.String())

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded, 3)
	assert.Equal(t, float64(12), decoded[0]["likes"])
	assert.Nil(t, decoded[2]["comment"])
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, table.New("a")))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "head.json")
	require.NoError(t, WriteJSONFile(path, sampleTable().Head(1)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "ana", decoded[0]["author"])
}

func TestWriteCSVFile_BadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := WriteCSVFile(filepath.Join(blocker, "out.csv"), sampleTable())
	assert.Error(t, err)
}
