// ABOUTME: Polling file watcher used to hot-reload settings while the TUI runs
// ABOUTME: Compares mtimes every interval; the loop lives until its context is cancelled

package config

import (
	"context"
	"os"
	"time"
)

// DefaultWatchInterval is the polling interval used when none is given.
const DefaultWatchInterval = 2 * time.Second

// Watcher monitors files for changes by polling mtime at regular intervals.
// A file appearing, disappearing, or changing mtime counts as a change.
type Watcher struct {
	paths    []string
	onChange func()
	interval time.Duration
	mtimes   map[string]time.Time
}

// NewWatcher creates a watcher over paths. A non-positive interval selects
// DefaultWatchInterval. The current mtimes are the baseline.
func NewWatcher(interval time.Duration, onChange func(), paths ...string) *Watcher {
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	w := &Watcher{
		paths:    paths,
		onChange: onChange,
		interval: interval,
		mtimes:   make(map[string]time.Time),
	}
	w.Check()
	return w
}

// Run polls until ctx is done. onChange runs on the Run goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.Check() {
				w.onChange()
			}
		}
	}
}

// Check refreshes the stored mtimes and reports whether anything changed
// since the previous check. Not safe to call concurrently with Run.
func (w *Watcher) Check() bool {
	changed := false
	for _, path := range w.paths {
		info, err := os.Stat(path)
		prev, existed := w.mtimes[path]
		if err != nil {
			if existed {
				delete(w.mtimes, path)
				changed = true
			}
			continue
		}
		if !existed || !info.ModTime().Equal(prev) {
			w.mtimes[path] = info.ModTime()
			changed = true
		}
	}
	return changed
}
