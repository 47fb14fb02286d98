// Package save writes detached buffer snapshots to disk in the background.
package save

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Request is an immutable snapshot handed over by a session.
type Request struct {
	Path     string
	Data     []byte
	Revision uint64
}

// Result reports the outcome of one Request.
type Result struct {
	Path     string
	Revision uint64
	Bytes    int
	ModTime  time.Time
	Err      error
}

// Worker runs each save on its own goroutine. With Serialize set, saves to
// the same path run one after another in submission order; otherwise
// overlapping saves race and the last writer wins.
type Worker struct {
	Serialize bool
	OnDone    func(Result)

	log  *slog.Logger
	wg   sync.WaitGroup
	mu   sync.Mutex
	tail map[string]chan struct{}
}

func NewWorker(log *slog.Logger, serialize bool, onDone func(Result)) *Worker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		Serialize: serialize,
		OnDone:    onDone,
		log:       log,
		tail:      make(map[string]chan struct{}),
	}
}

// Submit starts writing req and returns immediately.
func (w *Worker) Submit(req Request) {
	var prev, done chan struct{}
	if w.Serialize {
		prev, done = w.enqueue(req.Path)
	}
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if prev != nil {
			<-prev
		}
		res := w.write(req)
		if res.Err != nil {
			w.log.Error("save failed", "path", req.Path, "err", res.Err)
		} else {
			w.log.Debug("saved", "path", req.Path, "bytes", res.Bytes, "revision", req.Revision)
		}
		if w.OnDone != nil {
			w.OnDone(res)
		}
		if done != nil {
			w.dequeue(req.Path, done)
		}
	}()
}

// Wait blocks until every submitted save has finished.
func (w *Worker) Wait() {
	w.wg.Wait()
}

// enqueue chains a save behind the previous one on the same path.
func (w *Worker) enqueue(path string) (prev, done chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	prev = w.tail[path]
	done = make(chan struct{})
	w.tail[path] = done
	return prev, done
}

func (w *Worker) dequeue(path string, done chan struct{}) {
	close(done)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tail[path] == done {
		delete(w.tail, path)
	}
}

func (w *Worker) write(req Request) Result {
	res := Result{Path: req.Path, Revision: req.Revision, Bytes: len(req.Data)}
	if err := WriteFile(req.Path, req.Data); err != nil {
		res.Err = err
		return res
	}
	if info, err := os.Stat(req.Path); err == nil {
		res.ModTime = info.ModTime()
	}
	return res
}

// WriteFile replaces path with data through a temporary file in the same
// directory, keeping the existing file mode.
func WriteFile(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Chmod(name, mode); err != nil {
		os.Remove(name)
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
