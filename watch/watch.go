// Package watch reports external changes to open files.
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Debounce is the quiet period before collected events are delivered.
const Debounce = 100 * time.Millisecond

// Event is one coalesced change to a watched file.
type Event struct {
	Path string
	Op   fsnotify.Op
}

func (e Event) Removed() bool  { return e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 }
func (e Event) Modified() bool { return e.Op&(fsnotify.Write|fsnotify.Create) != 0 }

// Watcher watches the parent directories of registered files, since editors
// and save workers replace files by rename.
type Watcher struct {
	fs     *fsnotify.Watcher
	notify func(Event)
	log    *slog.Logger

	mu    sync.Mutex
	files map[string]int
	dirs  map[string]int
	done  chan struct{}
}

func New(log *slog.Logger, notify func(Event)) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	w := &Watcher{
		fs:     fw,
		notify: notify,
		log:    log,
		files:  make(map[string]int),
		dirs:   make(map[string]int),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// Add starts reporting changes to path. Calls are reference counted so
// split panes showing one file can each Add and Remove it.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++
	w.files[abs]++
	return nil
}

func (w *Watcher) Remove(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.files[abs] == 0 {
		return
	}
	if w.files[abs]--; w.files[abs] == 0 {
		delete(w.files, abs)
	}
	if w.dirs[dir]--; w.dirs[dir] == 0 {
		delete(w.dirs, dir)
		w.fs.Remove(dir)
	}
}

func (w *Watcher) Watching(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[abs] > 0
}

func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)

	timer := time.NewTimer(Debounce)
	timer.Stop()
	pending := make(map[string]fsnotify.Op)
	var order []string

	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.Watching(ev.Name) {
				continue
			}
			if _, seen := pending[ev.Name]; !seen {
				order = append(order, ev.Name)
			}
			pending[ev.Name] |= ev.Op
			timer.Reset(Debounce)

		case <-timer.C:
			for _, name := range order {
				if w.notify != nil {
					w.notify(Event{Path: name, Op: pending[name]})
				}
			}
			clear(pending)
			order = order[:0]

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "err", err)
		}
	}
}
