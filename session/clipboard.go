package session

// Copy captures the selection into the clipboard and clears the selection.
// It reports false when nothing is selected.
func (s *Session) Copy() bool {
	start, end, ok := s.Selection()
	s.selecting = false
	if !ok {
		return false
	}
	s.clip = s.buf.Range(start, end-start)
	if s.sysClip != nil {
		// The session clipboard stays authoritative when the system one fails.
		_ = s.sysClip.Write(string(s.clip))
	}
	return true
}

// Cut copies the selection and then deletes it as one undo step.
func (s *Session) Cut() bool {
	start, end, ok := s.Selection()
	if !ok {
		s.selecting = false
		return false
	}
	s.Copy()
	s.checkpoint()
	s.buf.Delete(start, end-start)
	s.cursor = start
	s.edited(start)
	s.scrollToCursor()
	return true
}

// Paste inserts the clipboard at the cursor, replacing any selection. A
// non-empty system clipboard takes precedence over the session copy.
func (s *Session) Paste() bool {
	text := string(s.clip)
	if s.sysClip != nil {
		if sys, err := s.sysClip.Read(); err == nil && sys != "" {
			text = sys
		}
	}
	if text == "" {
		return false
	}
	s.InsertText(text)
	return true
}

// Clipboard returns the session clipboard contents.
func (s *Session) Clipboard() []byte { return s.clip }
