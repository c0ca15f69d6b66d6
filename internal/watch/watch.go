// Package watch reports when any of a fixed set of data files changes.
package watch

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a file must be quiet before a change is reported.
const DefaultDebounce = 100 * time.Millisecond

// Change lists the watched files touched since the previous Change.
type Change struct {
	Files []string
}

// Watcher monitors files for writes, creations, renames and removals. The
// parent directories are watched rather than the files themselves so that
// editors replacing a file by rename are still noticed.
type Watcher struct {
	Changes  <-chan Change
	Debounce time.Duration

	changes chan Change
	files   map[string]bool
	done    chan struct{}
	watcher *fsnotify.Watcher
	started atomic.Bool
	stop    sync.Once
}

// New creates a watcher for the given files. Empty paths are ignored.
func New(paths ...string) (*Watcher, error) {
	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		files[abs] = true
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	ch := make(chan Change, 1)
	return &Watcher{
		Changes:  ch,
		Debounce: DefaultDebounce,
		changes:  ch,
		files:    files,
		done:     make(chan struct{}),
		watcher:  fw,
	}, nil
}

// Start begins watching. On error the watcher is stopped.
func (w *Watcher) Start() error {
	var dirs []string
	for f := range w.files {
		dir := filepath.Dir(f)
		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.Stop()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w.started.Store(true)
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel. It is safe to call
// without a successful Start, and more than once.
func (w *Watcher) Stop() {
	w.stop.Do(func() {
		w.watcher.Close()
		if w.started.Load() {
			<-w.done
		}
		close(w.changes)
	})
}

func (w *Watcher) loop() {
	defer close(w.done)

	pending := make(map[string]bool)
	var last time.Time
	ticker := time.NewTicker(w.Debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				pending[name] = true
				last = time.Now()
			}

		case <-ticker.C:
			if len(pending) == 0 || time.Since(last) < w.Debounce {
				continue
			}
			w.emit(pending)
			pending = make(map[string]bool)

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event retries.
		}
	}
}

// emit sends a change unless one is already waiting to be read, in which
// case the caller will pick up the latest file contents anyway.
func (w *Watcher) emit(pending map[string]bool) {
	files := make([]string, 0, len(pending))
	for f := range pending {
		files = append(files, f)
	}
	slices.Sort(files)

	select {
	case w.changes <- Change{Files: files}:
	default:
	}
}
