package buffer

// MaxUndoDepth is the number of snapshots a History retains by default.
const MaxUndoDepth = 512

// Snapshot is a full copy of buffer content plus the cursor at capture time.
// Revision identifies the content so callers can compare it with a save point.
type Snapshot struct {
	Buffer   *GapBuffer
	Cursor   int
	Revision uint64
}

type undoNode struct {
	snap       Snapshot
	prev, next *undoNode
}

// History is a linear chain of snapshots. Pushing after an undo drops the
// redo branch; pushing past the limit evicts the oldest snapshot.
type History struct {
	head    *undoNode
	current *undoNode
	depth   int
	limit   int
}

func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = MaxUndoDepth
	}
	if limit < 2 {
		limit = 2
	}
	return &History{limit: limit}
}

// Push records a clone of b. The caller keeps ownership of b.
func (h *History) Push(b *GapBuffer, cursor int, revision uint64) {
	node := &undoNode{snap: Snapshot{Buffer: b.Clone(), Cursor: cursor, Revision: revision}}
	if h.current == nil {
		h.head = node
		h.current = node
		h.depth = 1
		return
	}

	h.DiscardRedo()
	h.current.next = node
	node.prev = h.current
	h.current = node
	h.depth++

	for h.depth > h.limit {
		old := h.head
		h.head = old.next
		h.head.prev = nil
		old.next = nil
		old.snap.Buffer = nil
		h.depth--
	}
}

// DiscardRedo frees every snapshot after the current one.
func (h *History) DiscardRedo() {
	if h.current == nil {
		return
	}
	for n := h.current.next; n != nil; {
		next := n.next
		n.prev, n.next = nil, nil
		n.snap.Buffer = nil
		n = next
		h.depth--
	}
	h.current.next = nil
}

// SetCursor updates the cursor stored with the current snapshot.
func (h *History) SetCursor(cursor int) {
	if h.current != nil {
		h.current.snap.Cursor = cursor
	}
}

func (h *History) CanUndo() bool { return h.current != nil && h.current.prev != nil }
func (h *History) CanRedo() bool { return h.current != nil && h.current.next != nil }

// Depth is the number of retained snapshots.
func (h *History) Depth() int { return h.depth }

func (h *History) Limit() int { return h.limit }

// Undo steps back one snapshot and returns an independent copy of it.
func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.current = h.current.prev
	return h.current.snap.clone(), true
}

// Redo steps forward one snapshot and returns an independent copy of it.
func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.current = h.current.next
	return h.current.snap.clone(), true
}

// Reset forgets every snapshot.
func (h *History) Reset() {
	h.head, h.current, h.depth = nil, nil, 0
}

func (s Snapshot) clone() Snapshot {
	return Snapshot{Buffer: s.Buffer.Clone(), Cursor: s.Cursor, Revision: s.Revision}
}
