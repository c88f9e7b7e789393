package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirPartialFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "01_first.csv", []byte("user,comment\nann,nice\nbob,meh\n"))
	writeFile(t, dir, "02_empty.csv", []byte(""))
	writeFile(t, dir, "03_second.csv", []byte("user,likes\ncid,3\nann,nice,extra\n"))
	writeFile(t, dir, "04_badutf8.csv", []byte("user\n\xff\xfe\n"))
	writeFile(t, dir, "readme.md", []byte("# not data"))

	loader := NewLoader(Options{SkipBadLines: true}, nil)
	batch, err := loader.LoadDir(context.Background(), dir, ".csv")
	require.NoError(t, err)

	require.Len(t, batch.Results, 4)
	assert.Len(t, batch.Loaded(), 2)
	failed := batch.Failed()
	require.Len(t, failed, 2)
	assert.Equal(t, KindEmpty, failed[0].Kind())
	assert.Equal(t, KindEncoding, failed[1].Kind())

	assert.Equal(t, 3, batch.SourceRows())
	assert.Equal(t, batch.SourceRows(), batch.Table.Len())
	assert.Equal(t, []string{"user", "comment", "likes"}, batch.Table.Columns())
	assert.Equal(t, 1, batch.Results[2].BadLines)

	last := batch.Table.Row(2)
	assert.Equal(t, "cid", last.Get("user").Text())
	assert.True(t, last.Get("comment").IsNull())
}

func TestLoadDirEmpty(t *testing.T) {
	batch, err := NewLoader(Options{}, nil).LoadDir(context.Background(), t.TempDir(), ".csv")
	require.NoError(t, err)
	assert.Empty(t, batch.Results)
	assert.Equal(t, 0, batch.Table.Len())
	assert.Empty(t, batch.Table.Columns())
}

func TestLoadDirMissing(t *testing.T) {
	_, err := NewLoader(Options{}, nil).LoadDir(context.Background(), filepath.Join(t.TempDir(), "x"), ".csv")
	assert.Error(t, err)
}

func TestLoadFilesCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.csv", []byte("a\n1\n"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(Options{}, nil).LoadFiles(ctx, []string{path})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	second := writeFile(t, dir, "b.csv", []byte("n\n2\n3\n"))
	first := writeFile(t, dir, "a.csv", []byte("n\n1\n"))

	batch, err := NewLoader(Options{}, nil).LoadFiles(context.Background(), []string{second, first})
	require.NoError(t, err)

	vals := batch.Table.Column("n")
	require.Len(t, vals, 3)
	assert.Equal(t, "2", vals[0].Text())
	assert.Equal(t, "3", vals[1].Text())
	assert.Equal(t, "1", vals[2].Text())
}
