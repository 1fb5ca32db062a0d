package watch

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

func TestWatcher_ReportsNewFile(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 50*time.Millisecond)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paths, err := w.Watch(ctx)
	require.NoError(t, err)

	target := filepath.Join(dir, "report.pdf")
	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, ".hidden"), []byte("x"), 0644)
		_ = os.WriteFile(target, []byte("content"), 0644)
	}()

	select {
	case path := <-paths:
		assert.Equal(t, target, path)
	case <-time.After(3 * time.Second):
		t.Fatal("timeout waiting for file")
	}
}

func TestWatcher_ClosesChannelOnCancel(t *testing.T) {
	w := New(t.TempDir(), 0)
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())

	paths, err := w.Watch(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-paths:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed")
	}
}

func TestWatcher_Errors(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), 0).Watch(context.Background())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = New(file, 0).Watch(context.Background())
	assert.Error(t, err)

	w := New(t.TempDir(), 0)
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, err = w.Watch(ctx)
	require.NoError(t, err)
	_, err = w.Watch(ctx)
	assert.ErrorIs(t, err, ErrAlreadyWatching)
}

func TestWatcher_CloseIdempotent(t *testing.T) {
	w := New(t.TempDir(), 0)
	assert.NoError(t, w.Close())
	assert.Equal(t, DefaultSettle, w.settle)
}

func TestHandleEvent(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, 0)

	tests := []struct {
		name string
		path string
		op   fsnotify.Op
		want bool
	}{
		{"create", filepath.Join(dir, "a.pdf"), fsnotify.Create, true},
		{"write", filepath.Join(dir, "a.pdf"), fsnotify.Write, true},
		{"remove", filepath.Join(dir, "a.pdf"), fsnotify.Remove, false},
		{"rename", filepath.Join(dir, "a.pdf"), fsnotify.Rename, false},
		{"chmod", filepath.Join(dir, "a.pdf"), fsnotify.Chmod, false},
		{"hidden", filepath.Join(dir, ".a.pdf"), fsnotify.Create, false},
		{"editor backup", filepath.Join(dir, "a.pdf~"), fsnotify.Write, false},
		{"nested", filepath.Join(dir, "sub", "a.pdf"), fsnotify.Create, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, ok := w.handleEvent(fsnotify.Event{Name: tt.path, Op: tt.op})
			assert.Equal(t, tt.want, ok)
			if ok {
				assert.Equal(t, tt.path, path)
			}
		})
	}
}
