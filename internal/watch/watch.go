// Package watch reports changes to a single input file so its layout can be
// recomputed.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before a change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// Change is a debounced modification of the watched file.
type Change struct {
	Path    string
	Removed bool // The file no longer exists.
}

// Watcher monitors one file using fsnotify. The parent directory is watched
// rather than the file itself so editors that save by rename are still seen.
type Watcher struct {
	Path    string
	Changes <-chan Change // Read-only external channel

	changes  chan Change // Internal write channel
	stop     chan struct{}
	done     chan struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// New creates a watcher for the file at path. A non-positive debounce uses
// DefaultDebounce.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	ch := make(chan Change, 16)
	return &Watcher{
		Path:     abs,
		Changes:  ch,
		changes:  ch,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		debounce: debounce,
		watcher:  fw,
	}, nil
}

// Start begins watching for changes.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. A change still waiting
// for a reader is dropped.
func (w *Watcher) Stop() {
	close(w.stop)
	w.watcher.Close()
	<-w.done // Wait for loop to exit
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	var pending time.Time
	ticker := time.NewTicker(max(w.debounce/2, time.Millisecond))
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				if !pending.IsZero() {
					w.emit()
				}
				return
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if !pending.IsZero() && time.Since(pending) >= w.debounce {
				w.emit()
				pending = time.Time{}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Ignore watch errors; they're non-fatal.
		}
	}
}

func (w *Watcher) emit() {
	_, err := os.Stat(w.Path)
	select {
	case w.changes <- Change{Path: w.Path, Removed: os.IsNotExist(err)}:
	case <-w.stop:
	}
}
