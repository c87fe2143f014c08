package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/laptop-specs/constants"
)

func touch(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestListDocuments_NonRecursivePDFOnly(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "ThinkPad_E14.pdf", "a")
	touch(t, dir, "HP_ProBook.PDF", "b")
	touch(t, dir, "notes.txt", "c")
	touch(t, dir, ".hidden.pdf", "d")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
	touch(t, filepath.Join(dir, "nested"), "inner.pdf", "e")

	got, err := ListDocuments(context.Background(), dir, ListOptions{SkipHidden: true})
	require.NoError(t, err)

	var names []string
	for _, d := range got.Documents {
		names = append(names, d.Name)
		assert.Equal(t, "pdf", d.Ext)
	}
	assert.ElementsMatch(t, []string{"ThinkPad_E14.pdf", "HP_ProBook.PDF"}, names)
	assert.Equal(t, uint32(5), got.Stats.Scanned)
	assert.Equal(t, uint32(2), got.Stats.Matched)
	assert.Equal(t, uint32(1), got.Stats.Hidden)
	assert.Empty(t, got.Failures)
}

func TestListDocuments_Dedupe(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.pdf", "same bytes")
	touch(t, dir, "b.pdf", "same bytes")
	touch(t, dir, "c.pdf", "other bytes")

	got, err := ListDocuments(context.Background(), dir, ListOptions{Dedupe: true})
	require.NoError(t, err)

	assert.Len(t, got.Documents, 2)
	assert.Equal(t, uint32(1), got.Stats.Deduplicated)
	require.Len(t, got.Skipped, 1)
	assert.Contains(t, got.Skipped[0].Err, "duplicate of")
	for _, d := range got.Documents {
		assert.Len(t, d.HashHex, 64)
	}
}

func TestListDocuments_HTMLExts(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "hp.html", "<html></html>")
	touch(t, dir, "lenovo.htm", "<html></html>")
	touch(t, dir, "sheet.pdf", "%PDF")

	got, err := ListDocuments(context.Background(), dir, ListOptions{Exts: constants.HTMLExtensions})
	require.NoError(t, err)
	assert.Len(t, got.Documents, 2)
}

func TestListDocuments_Errors(t *testing.T) {
	_, err := ListDocuments(context.Background(), "  ", ListOptions{})
	assert.Error(t, err)

	_, err = ListDocuments(context.Background(), filepath.Join(t.TempDir(), "missing"), ListOptions{})
	assert.Error(t, err)

	dir := t.TempDir()
	touch(t, dir, "a.pdf", "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ListDocuments(ctx, dir, ListOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden("/a/.b.pdf"))
	assert.False(t, IsHidden("/a/b.pdf"))
}
