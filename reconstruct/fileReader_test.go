package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInputFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ROOT", "a.root", "notes.txt", "a_reco.h5"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.root"), 0o755))

	files, err := listInputFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.root"), filepath.Join(dir, "b.ROOT")}, files)
}

type handledInput struct {
	name string
	size int64
}

func startWatching(t *testing.T, dir string, settle time.Duration) (<-chan handledInput, context.CancelFunc, <-chan error) {
	t.Helper()
	watcher, err := newDirectoryWatcher(dir)
	require.NoError(t, err)
	t.Cleanup(func() { watcher.Close() })

	handled := make(chan handledInput, 10)
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		errs <- watchInputs(ctx, watcher, settle, func(name string) {
			var size int64 = -1
			if info, err := os.Stat(name); err == nil {
				size = info.Size()
			}
			handled <- handledInput{name: name, size: size}
		})
	}()
	t.Cleanup(cancel)
	return handled, cancel, errs
}

func TestWatchInputsWaitsForWritesToSettle(t *testing.T) {
	dir := t.TempDir()
	handled, cancel, errs := startWatching(t, dir, 300*time.Millisecond)

	filename := filepath.Join(dir, "kl_3pi.root")
	f, err := os.Create(filename)
	require.NoError(t, err)
	chunk := make([]byte, 1024)
	for i := 0; i < 5; i++ {
		_, err := f.Write(chunk)
		require.NoError(t, err)
		require.NoError(t, f.Sync())
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case input := <-handled:
		assert.Equal(t, filename, input.name)
		assert.Equal(t, int64(5*len(chunk)), input.size)
	case <-time.After(5 * time.Second):
		t.Fatal("file was never handled")
	}

	select {
	case input := <-handled:
		t.Fatalf("unexpected second call for %s", input.name)
	case <-time.After(600 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-errs:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchInputsDropsRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	handled, _, _ := startWatching(t, dir, 300*time.Millisecond)

	filename := filepath.Join(dir, "partial.root")
	require.NoError(t, os.WriteFile(filename, []byte("x"), 0o644))
	require.NoError(t, os.Remove(filename))

	select {
	case input := <-handled:
		t.Fatalf("removed file %s was handled", input.name)
	case <-time.After(800 * time.Millisecond):
	}
}

func TestCheckInputMode(t *testing.T) {
	assert.NoError(t, checkInputMode("/data", true, true))
	assert.NoError(t, checkInputMode("/data/a.root", false, false))
	assert.Error(t, checkInputMode("/data/a.root", false, true))
}
