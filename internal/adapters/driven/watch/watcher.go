// Package watch reports files dropped into a directory so they can be
// uploaded to the backend.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alma-hanif/infinitag/internal/logger"
)

// DefaultSettle is how long a file must stay unchanged before it is reported.
const DefaultSettle = 500 * time.Millisecond

// ErrAlreadyWatching is returned when Watch is called twice.
var ErrAlreadyWatching = errors.New("watch: already watching")

// Watcher reports new or rewritten regular files in a single directory.
// Hidden files and subdirectories are ignored.
type Watcher struct {
	dir    string
	settle time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
}

// New creates a watcher for dir. A non-positive settle uses DefaultSettle.
func New(dir string, settle time.Duration) *Watcher {
	if settle <= 0 {
		settle = DefaultSettle
	}
	return &Watcher{dir: dir, settle: settle}
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Watch starts watching and returns a channel of file paths.
// The channel is closed when ctx is done or the watcher is closed.
func (w *Watcher) Watch(ctx context.Context) (<-chan string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return nil, ErrAlreadyWatching
	}

	info, err := os.Stat(w.dir)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch %s: not a directory", w.dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(w.dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.watcher = fw

	out := make(chan string)
	go w.loop(ctx, fw, out)
	return out, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher == nil {
		return nil
	}
	err := w.watcher.Close()
	w.watcher = nil
	return err
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- string) {
	defer close(out)

	// pending maps a path to the time of its last event.
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(w.settle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if path, ok := w.handleEvent(event); ok {
				pending[path] = time.Now()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", w.dir, err)
		case now := <-ticker.C:
			for path, last := range pending {
				if now.Sub(last) < w.settle {
					continue
				}
				delete(pending, path)
				if !isRegularFile(path) {
					continue
				}
				select {
				case out <- path:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// handleEvent returns the path to report for a create or write event.
func (w *Watcher) handleEvent(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return "", false
	}
	if isHidden(event.Name) {
		return "", false
	}
	if filepath.Dir(event.Name) != filepath.Clean(w.dir) {
		return "", false
	}
	return event.Name, true
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~")
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
