package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string) (<-chan []string, context.CancelFunc) {
	t.Helper()

	w, err := New(root, 50*time.Millisecond, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	go func() {
		_ = w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	// Give the event loop a moment to start before mutating the tree.
	time.Sleep(100 * time.Millisecond)
	return batches, cancel
}

func waitForBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestRunBatchesBurstsIntoOneCallback(t *testing.T) {
	root := t.TempDir()
	batches, cancel := startWatcher(t, root)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package b\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o644))

	batch := waitForBatch(t, batches)
	assert.Contains(t, batch, "a.go")
	assert.Contains(t, batch, "b.go")
	assert.IsIncreasing(t, batch, "batch paths are sorted")
}

func TestRunDeduplicatesRepeatedWrites(t *testing.T) {
	root := t.TempDir()
	batches, cancel := startWatcher(t, root)
	defer cancel()

	path := filepath.Join(root, "main.go")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("package main\n"), 0o644))
	}

	batch := waitForBatch(t, batches)
	count := 0
	for _, p := range batch {
		if p == "main.go" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestRunSeesFilesInNewDirectories(t *testing.T) {
	root := t.TempDir()
	batches, cancel := startWatcher(t, root)
	defer cancel()

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// Let the new directory's watch land before writing into it.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "pkg.go"), []byte("package pkg\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-batches:
			for _, p := range batch {
				if p == "pkg/pkg.go" {
					return
				}
			}
		case <-deadline:
			t.Fatal("never saw the file created in the new directory")
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	root := t.TempDir()

	w, err := New(root, 50*time.Millisecond, nil)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, func([]string) {}) }()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
