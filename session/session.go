// Package session ties a gap buffer, its line index, undo history,
// highlighter and search results into one editable document with a cursor.
package session

import (
	"errors"
	"unicode/utf8"

	"gapedit/buffer"
	"gapedit/highlight"
	"gapedit/search"
)

var ErrNoPath = errors.New("session has no file name")

type Options struct {
	IndentWidth  int
	UseTabs      bool
	AutoPair     bool
	AutoIndent   bool
	DetectIndent bool // infer IndentWidth/UseTabs from loaded content
	UndoDepth    int
	ScrollMargin int
}

func DefaultOptions() Options {
	return Options{
		IndentWidth:  4,
		AutoPair:     true,
		AutoIndent:   true,
		UndoDepth:    buffer.MaxUndoDepth,
		ScrollMargin: 3,
	}
}

// Clipboard is an optional system clipboard mirrored by Copy, Cut and Paste.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}

// Viewport is the scroll state of the window showing the session.
type Viewport struct {
	Top, Left  int // first visible line and byte column
	Rows, Cols int
}

// Session is one open document. It is not safe for concurrent use.
type Session struct {
	opts Options

	buf     *buffer.GapBuffer
	lines   *buffer.LineIndex
	history *buffer.History
	hl      *highlight.Highlighter
	matches *search.MatchSet

	cursor    int
	pos       buffer.Cursor
	anchor    int
	selecting bool
	clip      []byte
	sysClip   Clipboard
	view      Viewport

	path string

	revision   uint64
	nextRev    uint64
	savedRev   uint64
	tipPending bool // live buffer differs from the history's current node
}

func New(opts Options) *Session {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 4
	}
	if opts.ScrollMargin < 0 {
		opts.ScrollMargin = 0
	}
	s := &Session{
		opts:    opts,
		buf:     buffer.NewGapBuffer(buffer.DefaultCapacity),
		lines:   buffer.NewLineIndex(),
		history: buffer.NewHistory(opts.UndoDepth),
		hl:      highlight.New(highlight.Plain),
		matches: search.NewMatchSet(),
	}
	s.reset(nil)
	return s
}

// Load replaces the document with content read from path. The session keeps
// its own copy of content. The language is detected from the name and the
// first bytes.
func (s *Session) Load(path string, content []byte) {
	s.path = path
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	s.hl.SetLanguage(highlight.Detect(path, head))
	if s.opts.DetectIndent {
		if width, tabs, ok := DetectIndentation(content); ok {
			s.opts.IndentWidth, s.opts.UseTabs = width, tabs
		}
	}
	s.reset(content)
}

// Reload swaps in new content for the same file, keeping the cursor where
// possible. History restarts and the session becomes clean.
func (s *Session) Reload(content []byte) {
	cursor := s.cursor
	s.reset(content)
	s.setCursor(cursor)
	s.scrollToCursor()
}

func (s *Session) reset(content []byte) {
	s.buf = buffer.NewGapBufferFrom(content)
	s.lines.MarkDirty()
	s.lines.Rebuild(s.buf)
	s.hl.MarkDirtyFrom(0)
	s.matches.Clear()
	s.hl.SetSearchWord("")
	s.cursor = 0
	s.selecting = false
	s.view.Top, s.view.Left = 0, 0
	s.revision = s.freshRevision()
	s.savedRev = s.revision
	s.history.Reset()
	s.history.Push(s.buf, 0, s.revision)
	s.tipPending = false
	s.updatePosition()
}

func (s *Session) freshRevision() uint64 {
	s.nextRev++
	return s.nextRev
}

func (s *Session) Path() string { return s.path }

func (s *Session) Language() highlight.Language { return s.hl.Language() }

func (s *Session) SetLanguage(lang highlight.Language) { s.hl.SetLanguage(lang) }

func (s *Session) Options() Options { return s.opts }

func (s *Session) SetOptions(opts Options) {
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = s.opts.IndentWidth
	}
	s.opts = opts
}

// SetClipboard mirrors the session clipboard to c. nil disables mirroring.
func (s *Session) SetClipboard(c Clipboard) { s.sysClip = c }

func (s *Session) Len() int { return s.buf.Len() }

// Content returns an owned copy of the document.
func (s *Session) Content() []byte { return s.buf.Bytes() }

func (s *Session) ByteAt(i int) byte { return s.buf.ByteAt(i) }

func (s *Session) Modified() bool { return s.revision != s.savedRev }

func (s *Session) Revision() uint64 { return s.revision }

// Cursor is the logical byte offset of the cursor.
func (s *Session) Cursor() int { return s.cursor }

// Position is the cursor's line and byte column.
func (s *Session) Position() buffer.Cursor { return s.pos }

// checkpoint records the pre-edit state. When the live buffer is already the
// history's current node only the redo branch is dropped.
func (s *Session) checkpoint() {
	if s.tipPending {
		s.history.Push(s.buf, s.cursor, s.revision)
		return
	}
	s.history.DiscardRedo()
	s.history.SetCursor(s.cursor)
}

// edited runs the invalidation protocol after a mutation at offset at.
func (s *Session) edited(at int) {
	s.revision = s.freshRevision()
	s.tipPending = true
	s.lines.MarkDirty()
	line := s.lines.LineOf(at)
	s.hl.MarkDirtyFrom(line - 1)
	s.lines.Rebuild(s.buf)
	s.updatePosition()
}

func (s *Session) updatePosition() {
	if s.lines.Dirty() {
		s.lines.Rebuild(s.buf)
	}
	if s.cursor > s.buf.Len() {
		s.cursor = s.buf.Len()
	}
	line := s.lines.LineOf(s.cursor)
	s.pos = buffer.Cursor{Line: line, Col: s.cursor - s.lines.LineStart(line)}
}

func (s *Session) setCursor(off int) {
	if off < 0 {
		off = 0
	}
	if n := s.buf.Len(); off > n {
		off = n
	}
	s.cursor = off
	s.updatePosition()
}

// Undo restores the previous snapshot. It reports false when there is none.
func (s *Session) Undo() bool {
	if s.tipPending {
		// Keep the live state so Redo can return to it.
		s.history.Push(s.buf, s.cursor, s.revision)
		s.tipPending = false
	}
	snap, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

// Redo re-applies the snapshot undone last. It reports false when there is
// none.
func (s *Session) Redo() bool {
	if s.tipPending {
		return false
	}
	snap, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(snap)
	return true
}

func (s *Session) CanUndo() bool { return s.tipPending || s.history.CanUndo() }
func (s *Session) CanRedo() bool { return !s.tipPending && s.history.CanRedo() }

func (s *Session) restore(snap buffer.Snapshot) {
	s.buf = snap.Buffer
	s.revision = snap.Revision
	s.selecting = false
	s.lines.MarkDirty()
	s.lines.Rebuild(s.buf)
	s.hl.MarkDirtyFrom(0)
	s.setCursor(snap.Cursor)
	s.scrollToCursor()
}

// SaveRequest is a detached copy of the document for the save worker.
type SaveRequest struct {
	Path     string
	Data     []byte
	Revision uint64
}

// SaveSnapshot prepares a save. A non-empty path renames the session first
// and re-detects its language.
func (s *Session) SaveSnapshot(path string) (SaveRequest, error) {
	if path != "" && path != s.path {
		s.path = path
		s.hl.SetLanguage(highlight.Detect(path, s.buf.Range(0, 512)))
	}
	if s.path == "" {
		return SaveRequest{}, ErrNoPath
	}
	return SaveRequest{Path: s.path, Data: s.buf.Bytes(), Revision: s.revision}, nil
}

// MarkSaved records that revision reached disk. Later edits keep the session
// modified.
func (s *Session) MarkSaved(revision uint64) {
	s.savedRev = revision
}

func isContinuation(c byte) bool { return c&0xC0 == 0x80 }

// runeBefore returns the size of the UTF-8 sequence ending at off.
func (s *Session) runeBefore(off int) int {
	if off <= 0 {
		return 0
	}
	start := off - 1
	for start > 0 && off-start < utf8.UTFMax && isContinuation(s.buf.ByteAt(start)) {
		start--
	}
	return off - start
}

// runeAfter returns the size of the UTF-8 sequence starting at off.
func (s *Session) runeAfter(off int) int {
	n := s.buf.Len()
	if off >= n {
		return 0
	}
	end := off + 1
	for end < n && end-off < utf8.UTFMax && isContinuation(s.buf.ByteAt(end)) {
		end++
	}
	return end - off
}
