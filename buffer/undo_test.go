package buffer

import (
	"strconv"
	"testing"
)

func TestHistoryUndoRedoRoundTrip(t *testing.T) {
	h := NewHistory(0)
	b := NewGapBufferFrom([]byte("S0"))

	if _, ok := h.Undo(); ok {
		t.Fatalf("fresh history should have nothing to undo")
	}

	h.Push(b, 2, 1)
	b.InsertString(2, "+S1")
	h.Push(b, 5, 2)

	s, ok := h.Undo()
	if !ok || s.Buffer.String() != "S0" || s.Cursor != 2 || s.Revision != 1 {
		t.Fatalf("undo returned %q cursor %d rev %d", s.Buffer.String(), s.Cursor, s.Revision)
	}
	r, ok := h.Redo()
	if !ok || r.Buffer.String() != "S0+S1" {
		t.Fatalf("redo returned %q", r.Buffer.String())
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("no redo expected at the tip")
	}
}

func TestHistoryPushDiscardsRedoBranch(t *testing.T) {
	h := NewHistory(0)
	b := NewGapBufferFrom([]byte("a"))
	h.Push(b, 0, 1)
	b.InsertString(1, "b")
	h.Push(b, 0, 2)
	b.InsertString(2, "c")
	h.Push(b, 0, 3)

	h.Undo()
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected redo after undo")
	}
	h.Push(NewGapBufferFrom([]byte("z")), 0, 4)
	if h.CanRedo() {
		t.Fatalf("push after undo must discard the redo branch")
	}
	if h.Depth() != 2 {
		t.Fatalf("expected depth 2, got %d", h.Depth())
	}
}

func TestHistoryReturnsIndependentClones(t *testing.T) {
	h := NewHistory(0)
	h.Push(NewGapBufferFrom([]byte("keep")), 0, 1)
	h.Push(NewGapBufferFrom([]byte("next")), 0, 2)

	s, _ := h.Undo()
	s.Buffer.InsertString(0, "mutated ")
	h.Redo()
	again, _ := h.Undo()
	if again.Buffer.String() != "keep" {
		t.Fatalf("history snapshot was aliased: %q", again.Buffer.String())
	}
}

func TestHistoryDepthBound(t *testing.T) {
	h := NewHistory(MaxUndoDepth)
	for i := 0; i < MaxUndoDepth+100; i++ {
		h.Push(NewGapBufferFrom([]byte(strconv.Itoa(i))), i, uint64(i))
		if h.Depth() > MaxUndoDepth {
			t.Fatalf("depth %d exceeds bound", h.Depth())
		}
	}
	if h.Depth() != MaxUndoDepth {
		t.Fatalf("expected depth %d, got %d", MaxUndoDepth, h.Depth())
	}

	var oldest Snapshot
	steps := 0
	for {
		s, ok := h.Undo()
		if !ok {
			break
		}
		oldest = s
		steps++
	}
	if steps != MaxUndoDepth-1 {
		t.Fatalf("expected %d undo steps, got %d", MaxUndoDepth-1, steps)
	}
	// The first 100 pushes were evicted.
	if oldest.Buffer.String() != "100" {
		t.Fatalf("expected oldest retained snapshot 100, got %q", oldest.Buffer.String())
	}
}

func TestHistoryMinimumLimit(t *testing.T) {
	h := NewHistory(1)
	if h.Limit() != 2 {
		t.Fatalf("expected limit clamped to 2, got %d", h.Limit())
	}
}
