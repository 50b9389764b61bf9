// Package watcher implements file watching for proactive cache invalidation.
package watcher

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/tajima/internal/core/domain"
	"go.trai.ch/tajima/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Watcher = (*Watcher)(nil)

// Watcher implements ports.Watcher using fsnotify. Editors commonly replace
// files with a rename-over-write dance that produces a burst of events, so
// raw events are funneled through a debouncer before reaching the callback.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer

	mu      sync.Mutex
	watched map[string]bool
	started bool
}

// NewWatcher creates a new file system watcher with the given debounce
// window.
func NewWatcher(debouncer *Debouncer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, domain.Wrap(domain.ErrWatchFailed, err)
	}
	return &Watcher{
		fsWatcher: fsw,
		debouncer: debouncer,
		watched:   make(map[string]bool),
	}, nil
}

// Watch starts observing path. fsnotify loses the watch when an editor
// replaces the file, so the containing directory is watched and events are
// filtered down to the registered files.
func (w *Watcher) Watch(ctx context.Context, path string, onChange func(paths []string)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return zerr.With(domain.Wrap(domain.ErrWatchFailed, err), "path", path)
	}

	w.mu.Lock()
	w.watched[abs] = true
	w.debouncer.SetCallback(onChange)
	firstWatch := !w.started
	w.started = true
	w.mu.Unlock()

	if err := w.fsWatcher.Add(filepath.Dir(abs)); err != nil {
		return zerr.With(domain.Wrap(domain.ErrWatchFailed, err), "path", path)
	}

	if firstWatch {
		go w.processEvents(ctx)
	}
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	w.debouncer.Flush()
	return w.fsWatcher.Close()
}

// processEvents filters raw fsnotify events down to the watched files and
// feeds them to the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	relevant := fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevant == 0 {
				continue
			}

			w.mu.Lock()
			watched := w.watched[event.Name]
			w.mu.Unlock()

			if watched {
				w.debouncer.Add(event.Name)
			}
		case _, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			// Transient inotify errors are not actionable here; the
			// cache stays correct because invalidation is identity
			// based either way.
		}
	}
}
