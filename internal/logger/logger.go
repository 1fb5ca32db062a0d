// Package logger writes diagnostic output for infinitag. Nothing is
// printed unless verbose mode is on (the --verbose flag); user-facing
// messages go through notifications instead.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose turns verbose output on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether verbose output is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects verbose output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

func logf(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, format, args...)
	}
}

func Debug(format string, args ...any) { logf("[DEBUG] "+format+"\n", args...) }

func Info(format string, args ...any) { logf("[INFO] "+format+"\n", args...) }

func Warn(format string, args ...any) { logf("[WARN] "+format+"\n", args...) }

// Section prints a header separating phases such as a bulk run.
func Section(name string) { logf("\n=== %s ===\n", name) }

// Request traces one backend call. status is 0 when no response arrived.
func Request(method, path string, status int, elapsed time.Duration, err error) {
	elapsed = elapsed.Round(time.Millisecond)
	switch {
	case err != nil && status == 0:
		logf("[WARN] %s %s failed after %s: %v\n", method, path, elapsed, err)
	case err != nil:
		logf("[WARN] %s %s -> %d in %s: %v\n", method, path, status, elapsed, err)
	default:
		logf("[DEBUG] %s %s -> %d in %s\n", method, path, status, elapsed)
	}
}
