package runner

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors the schema file and document paths and triggers a rerun
// whenever any of them change.
type Watcher struct {
	paths  []string
	logger *slog.Logger
	Ready  chan struct{}

	newWatcher func() (*fsnotify.Watcher, error)
}

// NewWatcher creates a Watcher over the given files and directories.
func NewWatcher(paths []string, logger *slog.Logger) *Watcher {
	return &Watcher{
		paths:      paths,
		logger:     logger.With("component", "watcher"),
		Ready:      make(chan struct{}),
		newWatcher: fsnotify.NewWatcher,
	}
}

// Watch blocks until the context is cancelled, invoking callback (debounced)
// after each relevant filesystem change.
func (w *Watcher) Watch(ctx context.Context, callback func()) error {
	watcher, err := w.newWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, p := range w.paths {
		// Watch the containing directory for files: editors often replace
		// files on save, which drops a watch set on the file itself.
		target := p
		if info, statErr := os.Stat(p); statErr == nil && !info.IsDir() {
			target = filepath.Dir(p)
		}
		if addErr := watcher.Add(target); addErr != nil {
			return addErr
		}
	}

	w.logger.Info("Watching for changes", "paths", w.paths)
	if w.Ready != nil {
		close(w.Ready)
	}

	var timer *time.Timer
	const debounceDuration = 100 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case watchErr := <-watcher.Errors:
			w.logger.Error("Watcher error", "error", watchErr)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("Change detected", "file", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, callback)
		}
	}
}

// relevant filters events down to JSON file writes, creations and removals.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Ext(event.Name) == ".json"
}
