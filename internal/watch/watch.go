// Package watch calls back when watched files change on disk.
//
// Editors often replace a file instead of writing it in place, which removes
// the inode a per-file watch is attached to. The Watcher therefore watches
// the parent directory of every registered file and filters events by name.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the Watcher waits for a burst of events on one
// file to settle before calling back.
const DefaultDebounce = 100 * time.Millisecond

// Watcher dispatches file change events to per-file callbacks.
type Watcher struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration

	log     logrus.FieldLogger
	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	files   map[string]func()
	dirs    map[string]bool
	pending map[string]*time.Timer
}

// New creates a Watcher. A nil logger uses the logrus standard logger.
func New(log logrus.FieldLogger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Watcher{
		log:     log,
		fsw:     fsw,
		files:   make(map[string]func()),
		dirs:    make(map[string]bool),
		pending: make(map[string]*time.Timer),
	}, nil
}

// Add registers fn to be called after path is written, created or renamed.
// Registering a path again replaces its callback.
func (w *Watcher) Add(path string, fn func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.files[abs] = fn
	w.log.WithField("path", abs).Debug("watching file")
	return nil
}

// Run dispatches events until ctx is done or the Watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithField("error", err).Warn("watch error")
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	name := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	fn, ok := w.files[name]
	if !ok {
		return
	}
	if t, ok := w.pending[name]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce(), func() {
		w.expire(name, timer)
		w.log.WithFields(logrus.Fields{"path": name, "op": ev.Op.String()}).Debug("file changed")
		fn()
	})
	w.pending[name] = timer
}

// expire forgets the pending timer for name if it is still t. A newer timer
// registered after t fired is left for Close to stop.
func (w *Watcher) expire(name string, t *time.Timer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending[name] == t {
		delete(w.pending, name)
	}
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return DefaultDebounce
}

// Close stops watching and cancels callbacks that have not fired yet.
func (w *Watcher) Close() error {
	w.mu.Lock()
	for name, t := range w.pending {
		t.Stop()
		delete(w.pending, name)
	}
	w.mu.Unlock()
	return w.fsw.Close()
}
