package session

import (
	"gapedit/buffer"
	"gapedit/highlight"
)

// MoveBy moves the cursor dy lines and dx characters. Vertical moves keep the
// byte column, clamped to the target line's length.
func (s *Session) MoveBy(dy, dx int) {
	s.move(dy, dx)
	s.scrollToCursor()
}

func (s *Session) move(dy, dx int) {
	if dy != 0 {
		target := s.pos.Line + dy
		target = max(0, min(target, s.lines.LineCount()-1))
		start := s.lines.LineStart(target)
		length := s.lines.LineEnd(target, s.buf) - start
		s.cursor = start + min(s.pos.Col, length)
	}
	for ; dx > 0; dx-- {
		s.cursor += s.runeAfter(s.cursor)
	}
	for ; dx < 0; dx++ {
		s.cursor -= s.runeBefore(s.cursor)
	}
	s.updatePosition()
}

// MoveTo places the cursor at line and byte column, clamping both.
func (s *Session) MoveTo(line, col int) {
	line = max(0, min(line, s.lines.LineCount()-1))
	start := s.lines.LineStart(line)
	length := s.lines.LineEnd(line, s.buf) - start
	s.setCursor(start + max(0, min(col, length)))
	s.scrollToCursor()
}

// MoveToOffset places the cursor at a logical byte offset.
func (s *Session) MoveToOffset(off int) {
	s.setCursor(off)
	s.scrollToCursor()
}

func (s *Session) MoveLineStart() {
	s.setCursor(s.lines.LineStart(s.pos.Line))
	s.scrollToCursor()
}

func (s *Session) MoveLineEnd() {
	s.setCursor(s.lines.LineEnd(s.pos.Line, s.buf))
	s.scrollToCursor()
}

func (s *Session) pageStep() int {
	return max(1, s.view.Rows/2)
}

// PageUp and PageDown move by half the viewport height.
func (s *Session) PageUp()   { s.MoveBy(-s.pageStep(), 0) }
func (s *Session) PageDown() { s.MoveBy(s.pageStep(), 0) }

// SetAnchor starts a selection at the cursor unless one is active.
func (s *Session) SetAnchor() {
	if !s.selecting {
		s.selecting = true
		s.anchor = s.cursor
	}
}

// ExtendBy moves the cursor while keeping (or starting) the selection.
func (s *Session) ExtendBy(dy, dx int) {
	s.SetAnchor()
	s.MoveBy(dy, dx)
}

func (s *Session) ClearSelection() { s.selecting = false }

func (s *Session) SelectAll() {
	s.selecting = true
	s.anchor = 0
	s.setCursor(s.buf.Len())
	s.scrollToCursor()
}

// Selection returns the half-open selected range.
func (s *Session) Selection() (start, end int, ok bool) {
	if !s.selecting {
		return 0, 0, false
	}
	sel := buffer.NewSelection(min(s.anchor, s.buf.Len()), s.cursor)
	return sel.Start, sel.End, !sel.Empty()
}

func (s *Session) HasSelection() bool {
	_, _, ok := s.Selection()
	return ok
}

// SetViewSize sets the text area size used for scrolling.
func (s *Session) SetViewSize(rows, cols int) {
	s.view.Rows, s.view.Cols = rows, cols
	s.scrollToCursor()
}

func (s *Session) View() Viewport { return s.view }

// SetView restores a saved scroll position.
func (s *Session) SetView(top, left int) {
	s.view.Top = max(0, min(top, s.lines.LineCount()-1))
	s.view.Left = max(0, left)
}

// scrollToCursor keeps the cursor ScrollMargin lines away from the viewport
// edges and horizontally visible.
func (s *Session) scrollToCursor() {
	v := &s.view
	margin := s.opts.ScrollMargin
	if v.Rows > 0 {
		if margin*2 >= v.Rows {
			margin = (v.Rows - 1) / 2
		}
		if s.pos.Line < v.Top+margin {
			v.Top = max(0, s.pos.Line-margin)
		}
		if s.pos.Line >= v.Top+v.Rows-margin {
			v.Top = s.pos.Line - v.Rows + margin + 1
		}
	}
	if s.pos.Col < v.Left {
		v.Left = s.pos.Col
	}
	if v.Cols > 0 && s.pos.Col >= v.Left+v.Cols {
		v.Left = s.pos.Col - v.Cols + 1
	}
}

func (s *Session) LineCount() int { return s.lines.LineCount() }

// LineBounds returns the byte range of line k, excluding its terminator.
func (s *Session) LineBounds(k int) (start, end int) {
	if k < 0 || k >= s.lines.LineCount() {
		return 0, 0
	}
	return s.lines.LineStart(k), s.lines.LineEnd(k, s.buf)
}

// LineText returns a copy of line k without its terminator.
func (s *Session) LineText(k int) []byte {
	start, end := s.LineBounds(k)
	return s.buf.Range(start, end-start)
}

// Tokens returns the highlighter's classification of line k.
func (s *Session) Tokens(k int) []highlight.TokenType {
	return s.hl.EnsureLine(k, s.buf, s.lines)
}

// PrepareView lexes every line above the viewport so continuation state
// reaching the first visible line is current.
func (s *Session) PrepareView() {
	s.hl.Prefetch(s.view.Top, s.buf, s.lines)
}
