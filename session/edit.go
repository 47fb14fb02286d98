package session

import (
	"bytes"
	"strings"

	"gapedit/highlight"
)

const (
	openers = "{([\"'"
	closers = "})]\"'"
)

func closerFor(c byte) (byte, bool) {
	if i := strings.IndexByte(openers, c); i >= 0 {
		return closers[i], true
	}
	return 0, false
}

func isCloser(c byte) bool { return strings.IndexByte(closers, c) >= 0 }

// removeSelection deletes the selected range without recording history. It
// reports whether anything was removed.
func (s *Session) removeSelection() bool {
	start, end, ok := s.Selection()
	s.selecting = false
	if !ok {
		return false
	}
	s.buf.Delete(start, end-start)
	s.cursor = start
	s.lines.MarkDirty()
	s.updatePosition()
	return true
}

// InsertChar types one byte. Opening brackets and quotes are paired when
// AutoPair is on, and typing a closer directly before the same closer steps
// over it.
func (s *Session) InsertChar(c byte) {
	if c == '\n' {
		s.Newline()
		return
	}
	if s.opts.AutoPair && !s.HasSelection() && isCloser(c) && s.cursor < s.buf.Len() && s.buf.ByteAt(s.cursor) == c {
		s.setCursor(s.cursor + 1)
		s.scrollToCursor()
		return
	}

	s.checkpoint()
	s.removeSelection()
	at := s.cursor
	if closer, ok := closerFor(c); ok && s.opts.AutoPair {
		s.buf.Insert(at, []byte{c, closer})
	} else {
		s.buf.InsertByte(at, c)
	}
	s.cursor = at + 1
	s.edited(at)
	s.scrollToCursor()
}

// InsertText inserts text verbatim as one undo step, replacing any selection.
// Pasted and bracketed input goes through here, so no pairing or indenting
// is applied.
func (s *Session) InsertText(text string) {
	if text == "" && !s.HasSelection() {
		return
	}
	s.checkpoint()
	s.removeSelection()
	at := s.cursor
	s.buf.InsertString(at, text)
	s.cursor = at + len(text)
	s.edited(at)
	s.scrollToCursor()
}

func (s *Session) indentUnit() string {
	if s.opts.UseTabs {
		return "\t"
	}
	return strings.Repeat(" ", s.opts.IndentWidth)
}

// IndentUnit is the text inserted for one indentation level.
func (s *Session) IndentUnit() string { return s.indentUnit() }

// InsertIndent inserts one indentation unit at the cursor.
func (s *Session) InsertIndent() {
	s.InsertText(s.indentUnit())
}

// leadingIndent returns the whitespace that starts the cursor's line, up to
// the cursor.
func (s *Session) leadingIndent() []byte {
	start := s.lines.LineStart(s.pos.Line)
	end := start
	for end < s.cursor {
		c := s.buf.ByteAt(end)
		if c != ' ' && c != '\t' {
			break
		}
		end++
	}
	return s.buf.Range(start, end-start)
}

// Newline breaks the line at the cursor. With AutoIndent the new line copies
// the current indentation, gains a level after '{' (or a Python ':'), and a
// break between "{}" opens an indented blank line between the braces.
func (s *Session) Newline() {
	s.checkpoint()
	s.removeSelection()
	at := s.cursor

	if !s.opts.AutoIndent {
		s.buf.InsertByte(at, '\n')
		s.cursor = at + 1
		s.edited(at)
		s.scrollToCursor()
		return
	}

	indent := s.leadingIndent()
	unit := s.indentUnit()
	var prev, next byte
	if at > 0 {
		prev = s.buf.ByteAt(at - 1)
	}
	if at < s.buf.Len() {
		next = s.buf.ByteAt(at)
	}

	var ins bytes.Buffer
	ins.WriteByte('\n')
	ins.Write(indent)
	switch {
	case prev == '{' && next == '}':
		ins.WriteString(unit)
		cursor := at + ins.Len()
		ins.WriteByte('\n')
		ins.Write(indent)
		s.buf.Insert(at, ins.Bytes())
		s.cursor = cursor
		s.edited(at)
		s.scrollToCursor()
		return
	case prev == '{':
		ins.WriteString(unit)
	case s.hl.Language() == highlight.Python && s.endsWithColon(at):
		ins.WriteString(unit)
	}
	s.buf.Insert(at, ins.Bytes())
	s.cursor = at + ins.Len()
	s.edited(at)
	s.scrollToCursor()
}

func (s *Session) endsWithColon(at int) bool {
	start := s.lines.LineStart(s.pos.Line)
	text := bytes.TrimSpace(s.buf.Range(start, at-start))
	return len(text) > 0 && text[len(text)-1] == ':'
}

// Backspace deletes the character before the cursor. An empty bracket or
// quote pair around the cursor is removed as a whole.
func (s *Session) Backspace() {
	if s.HasSelection() {
		s.DeleteSelection()
		return
	}
	s.selecting = false
	if s.cursor == 0 {
		return
	}
	s.checkpoint()
	n := s.runeBefore(s.cursor)
	at := s.cursor - n
	count := n
	if closer, ok := closerFor(s.buf.ByteAt(at)); ok && n == 1 && s.opts.AutoPair &&
		s.cursor < s.buf.Len() && s.buf.ByteAt(s.cursor) == closer {
		count = 2
	}
	s.buf.Delete(at, count)
	s.cursor = at
	s.edited(at)
	s.scrollToCursor()
}

// DeleteForward deletes the character under the cursor.
func (s *Session) DeleteForward() {
	if s.HasSelection() {
		s.DeleteSelection()
		return
	}
	s.selecting = false
	n := s.runeAfter(s.cursor)
	if n == 0 {
		return
	}
	s.checkpoint()
	s.buf.Delete(s.cursor, n)
	s.edited(s.cursor)
	s.scrollToCursor()
}

// DeleteSelection removes the selected range as one undo step.
func (s *Session) DeleteSelection() bool {
	if !s.HasSelection() {
		s.selecting = false
		return false
	}
	s.checkpoint()
	s.removeSelection()
	s.edited(s.cursor)
	s.scrollToCursor()
	return true
}

// KillLine deletes from the cursor to the end of the line, or only the line
// terminator when the cursor is already at the end.
func (s *Session) KillLine() {
	s.selecting = false
	end := s.lines.LineEnd(s.pos.Line, s.buf)
	n := 0
	switch {
	case s.cursor < end:
		n = end - s.cursor
	case s.cursor < s.buf.Len():
		n = 1
	}
	if n == 0 {
		return
	}
	s.checkpoint()
	s.buf.Delete(s.cursor, n)
	s.edited(s.cursor)
}

// KillWholeLine deletes the cursor's line including its terminator and
// leaves the cursor at the start of what follows.
func (s *Session) KillWholeLine() {
	s.selecting = false
	line := s.pos.Line
	start := s.lines.LineStart(line)
	end := s.buf.Len()
	if line+1 < s.lines.LineCount() {
		end = s.lines.LineStart(line + 1)
	}
	if end <= start {
		return
	}
	s.checkpoint()
	s.buf.Delete(start, end-start)
	s.cursor = start
	s.edited(start)
	s.scrollToCursor()
}
