package theme

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/chatter/keycast/internal/logger"
)

// Watcher watches a theme file for changes. Events are coalesced: one
// pending notification at most, so bursts of writes trigger one reload.
type Watcher struct {
	watcher   *fsnotify.Watcher
	changed   chan struct{}
	done      chan struct{}
	closeOnce sync.Once
	log       *logger.Logger
	path      string
}

// NewWatcher creates a watcher for the given theme file. The file's
// directory is watched so editors that replace the file (write to temp,
// rename over) are picked up too.
func NewWatcher(path string, log *logger.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving theme path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error("failed to create fsnotify watcher", "err", err)

		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		log.Error("failed to watch theme directory", "path", dir, "err", err)
		watcher.Close()

		return nil, fmt.Errorf("watching theme directory: %w", err)
	}

	log.Info("theme watcher started", "path", abs)

	self := &Watcher{
		watcher: watcher,
		changed: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
		path:    abs,
	}

	go self.filterEvents()

	return self, nil
}

// Events returns the channel signalled when the theme file changes.
func (w *Watcher) Events() <-chan struct{} {
	return w.changed
}

// Close stops the watcher. Idempotent; calls after the first are no-ops.
func (w *Watcher) Close() error {
	var err error

	w.closeOnce.Do(func() {
		close(w.done)

		if cerr := w.watcher.Close(); cerr != nil {
			err = fmt.Errorf("closing fsnotify watcher: %w", cerr)
		}
	})

	return err
}

func (w *Watcher) filterEvents() {
	defer close(w.changed)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if !w.shouldForward(event) {
				continue
			}

			w.log.Debug("theme change detected", "path", event.Name, "op", event.Op.String())

			// Non-blocking send: a pending notification already covers
			// this change.
			select {
			case w.changed <- struct{}{}:
			default:
			}
		case err := <-w.watcher.Errors:
			if err != nil {
				w.log.Warn("theme watcher error", "err", err)
			}
		}
	}
}

// shouldForward reports whether an event concerns the theme file itself.
func (w *Watcher) shouldForward(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}

	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}
