// Package watcher reports changes to a single file on disk.
package watcher

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 100 * time.Millisecond

// Event reports that the watched file changed.
type Event struct {
	Path string
	Op   fsnotify.Op
}

// Watcher watches one file by watching its directory, so editors that save
// through a temporary file and rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	events    chan Event
	done      chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
	timer     *time.Timer
	stopped   bool
}

// New creates a watcher for path. Its directory must exist.
func New(path string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("resolve watched path: %w", err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(absPath),
		debounce:  defaultDebounce,
		events:    make(chan Event, 1),
		done:      make(chan struct{}),
	}, nil
}

// Events returns the channel of debounced change events. It is closed by Stop.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start begins watching.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	log.Printf("[watcher] watching %s", w.path)

	go w.processEvents()
	return nil
}

// Stop stops watching and closes Events.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.mu.Lock()
		defer w.mu.Unlock()
		w.stopped = true
		if w.timer != nil {
			w.timer.Stop()
		}
		close(w.events)
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.deliver(Event{Path: w.path, Op: event.Op})
	})
}

// deliver keeps at most one pending event; a reload reads the latest content anyway.
func (w *Watcher) deliver(event Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	select {
	case w.events <- event:
	default:
	}
}
