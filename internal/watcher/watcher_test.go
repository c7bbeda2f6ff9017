package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the source watcher:
// - Source file writes arrive as a debounced batch
// - Non-source files are filtered out
// - Rapid successive writes collapse into one callback
// - Close is idempotent

func TestSourceWatcher_ReportsSourceChanges(t *testing.T) {
	dir := t.TempDir()

	sw, err := New([]string{dir}, 50*time.Millisecond)
	require.NoError(t, err)
	defer sw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	go sw.Run(ctx, func(files []string) {
		batches <- files
	})

	// Give the watch loop a moment to start.
	time.Sleep(50 * time.Millisecond)

	tsFile := filepath.Join(dir, "index.ts")
	require.NoError(t, os.WriteFile(tsFile, []byte("const a = 1;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	select {
	case files := <-batches:
		assert.Contains(t, files, tsFile)
		for _, f := range files {
			assert.NotContains(t, f, "notes.txt")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}
}

func TestSourceWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	sw, err := New([]string{dir}, 200*time.Millisecond)
	require.NoError(t, err)
	defer sw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	go sw.Run(ctx, func(files []string) {
		batches <- files
	})
	time.Sleep(50 * time.Millisecond)

	file := filepath.Join(dir, "burst.ts")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(file, []byte("let x = 1;"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case files := <-batches:
		// The burst collapses into one batch with one unique file.
		assert.Equal(t, []string{file}, files)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
	}
}

func TestSourceWatcher_CloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	sw, err := New([]string{dir}, 0)
	require.NoError(t, err)
	require.NoError(t, sw.Close())
	assert.NoError(t, sw.Close())
}

func TestWatchableEvent(t *testing.T) {
	t.Parallel()

	assert.True(t, watchableEvent(fsnotify.Event{Name: "a.ts", Op: fsnotify.Write}))
	assert.True(t, watchableEvent(fsnotify.Event{Name: "b.TSX", Op: fsnotify.Create}))
	assert.False(t, watchableEvent(fsnotify.Event{Name: "c.md", Op: fsnotify.Write}))
	assert.False(t, watchableEvent(fsnotify.Event{Name: "d.ts", Op: fsnotify.Chmod}))
}
