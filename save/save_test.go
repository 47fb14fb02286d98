package save

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestWorkerWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	var got []Result
	var mu sync.Mutex
	w := NewWorker(nil, false, func(r Result) {
		mu.Lock()
		got = append(got, r)
		mu.Unlock()
	})

	w.Submit(Request{Path: path, Data: []byte("hello\n"), Revision: 7})
	w.Wait()

	if len(got) != 1 || got[0].Err != nil || got[0].Revision != 7 || got[0].Bytes != 6 {
		t.Fatalf("unexpected results %+v", got)
	}
	on, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(on) != "hello\n" {
		t.Fatalf("unexpected content %q", on)
	}
}

func TestSerializedSavesKeepSubmissionOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "order.txt")
	var order []uint64
	var mu sync.Mutex
	w := NewWorker(nil, true, func(r Result) {
		mu.Lock()
		order = append(order, r.Revision)
		mu.Unlock()
	})
	for i := 1; i <= 20; i++ {
		w.Submit(Request{Path: path, Data: []byte(fmt.Sprintf("rev %d", i)), Revision: uint64(i)})
	}
	w.Wait()

	on, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(on) != "rev 20" {
		t.Fatalf("expected last submission to win, got %q", on)
	}
	if len(order) != 20 {
		t.Fatalf("expected 20 results, got %d", len(order))
	}
	for i, rev := range order {
		if rev != uint64(i+1) {
			t.Fatalf("result %d has revision %d", i, rev)
		}
	}
	if len(w.tail) != 0 {
		t.Fatalf("expected path queue drained, got %d", len(w.tail))
	}
}

func TestWriteFileKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.sh")
	if err := os.WriteFile(path, []byte("old"), 0755); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := WriteFile(path, []byte("new")); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0755 {
		t.Fatalf("expected mode 0755, got %v", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("expected temp file cleaned up, found %d entries", len(entries))
	}
}

func TestWorkerReportsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.txt")
	var res Result
	w := NewWorker(nil, true, func(r Result) { res = r })
	w.Submit(Request{Path: path, Data: []byte("x"), Revision: 1})
	w.Wait()
	if res.Err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
