// Package watcher reports changes to individual files using fsnotify.
//
// The parent directory of every file is watched rather than the file itself,
// so files replaced by rename (as most editors save) keep being reported.
// Bursts of events are coalesced per file before the handler runs.
package watcher

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/datefield/internal/logging"
)

// ErrClosed is returned when adding a file to a closed watcher.
var ErrClosed = errors.New("watcher: closed")

// Op is a set of file operations.
type Op uint8

// Operations reported in an Event. A coalesced event may carry several.
const (
	// OpCreate means the file appeared, including as the target of a rename.
	OpCreate Op = 1 << iota
	// OpWrite means the file contents changed.
	OpWrite
	// OpRemove means the file was deleted.
	OpRemove
	// OpRename means the file was moved away from its path.
	OpRename
)

// Has reports whether op shares any operation with other.
func (op Op) Has(other Op) bool { return op&other != 0 }

func (op Op) String() string {
	var parts []string
	for _, o := range []struct {
		op   Op
		name string
	}{{OpCreate, "create"}, {OpWrite, "write"}, {OpRemove, "remove"}, {OpRename, "rename"}} {
		if op.Has(o.op) {
			parts = append(parts, o.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Event is a coalesced change to one watched file.
type Event struct {
	Path string
	Op   Op
}

// Handler receives events on the watcher goroutine.
type Handler func(Event)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long events for a file are collected before the
// handler runs. Zero delivers every event immediately.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger for watch errors.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// Watcher watches a set of files.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
	handler Handler
	closed  bool

	debounce time.Duration
	logger   *logging.Logger

	done chan struct{}
	wg   sync.WaitGroup
}

// New starts a watcher that calls handler for changes to added files.
func New(handler Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
		handler:  handler,
		debounce: 100 * time.Millisecond,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrDefault(w.logger).WithComponent("watcher")

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Add watches path. The file does not need to exist yet, its directory does.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrClosed
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
		w.dirs[dir] = true
	}
	w.files[abs] = true
	return nil
}

// Files returns the watched files in sorted order.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Close stops the watcher. Pending events are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.done)
	w.mu.Unlock()

	w.wg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) watched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path]
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	pending := make(map[string]Op)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			path := filepath.Clean(ev.Name)
			op := convertOp(ev.Op)
			if op == 0 || !w.watched(path) {
				continue
			}
			pending[path] |= op

			if w.debounce == 0 {
				w.flush(pending)
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.flush(pending)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		}
	}
}

func (w *Watcher) flush(pending map[string]Op) {
	paths := make([]string, 0, len(pending))
	for p := range pending {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		ev := Event{Path: p, Op: pending[p]}
		delete(pending, p)
		w.logger.Debug("%s %s", ev.Op, ev.Path)
		if w.handler != nil {
			w.handler(ev)
		}
	}
}

func convertOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	return out
}
