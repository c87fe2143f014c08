package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_EmitsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, _, err := Watch(ctx, WatchConfig{Dir: dir, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	touch(t, dir, "notes.txt", "ignored")
	touch(t, dir, "ProBook.pdf", "x")

	select {
	case batch := <-events:
		assert.Contains(t, batch, filepath.Join(dir, "ProBook.pdf"))
		for _, p := range batch {
			assert.Equal(t, ".pdf", filepath.Ext(p))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event")
	}

	cancel()
	for range events {
	}
}

func TestWatch_RequiresDir(t *testing.T) {
	_, _, err := Watch(context.Background(), WatchConfig{})
	assert.Error(t, err)

	_, _, err = Watch(context.Background(), WatchConfig{Dir: filepath.Join(os.TempDir(), "does-not-exist-laptop-specs")})
	assert.Error(t, err)
}
