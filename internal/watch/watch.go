// Package watch reports changes of Go source files in package directories.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher batches changes of Go files in a set of directories. Changes
// closer to each other than the debounce are reported together.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	ignore   map[string]bool
	log      *slog.Logger
}

// New watches the given directories, not recursively. Files named in ignore,
// like the generated output, never trigger a change.
func New(dirs []string, debounce time.Duration, ignore ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: debounce,
		ignore:   make(map[string]bool, len(ignore)),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, name := range ignore {
		w.ignore[name] = true
	}
	return w, nil
}

// SetLogger sets the logger to report watch errors.
func (w *Watcher) SetLogger(log *slog.Logger) { w.log = log }

// Close stops watching.
func (w *Watcher) Close() error { return w.fsw.Close() }

// Run calls fn with the sorted paths of changed files after each quiet
// period. It blocks until ctx is done or the watcher is closed. fn runs on
// the calling goroutine, so changes made during fn are batched for the next
// call.
func (w *Watcher) Run(ctx context.Context, fn func(changed []string)) error {
	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("file changed", "file", ev.Name, "op", ev.Op.String())
			pending[ev.Name] = true
			timer.Reset(w.debounce)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := slices.Sorted(maps.Keys(pending))
			clear(pending)
			fn(changed)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}

// relevant reports whether ev changes the content of a Go source file.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	return filepath.Ext(base) == ".go" && !w.ignore[base]
}
