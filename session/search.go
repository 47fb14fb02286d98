package session

import "gapedit/search"

// Find searches for query. A new query (or one whose results predate the
// last edit) is evaluated afresh and the cursor jumps to the first match;
// repeating the current query cycles to the next match. It returns the
// number of matches.
func (s *Session) Find(query string) int {
	if query == "" {
		s.ClearSearch()
		return 0
	}
	if query == s.matches.Query && !s.matches.Stale(s.revision) {
		s.FindNext()
		return s.matches.Len()
	}
	n := s.matches.Search(query, s.buf.Bytes(), s.revision)
	s.hl.SetSearchWord(query)
	if off, ok := s.matches.Current(); ok {
		s.jump(off)
	}
	return n
}

// FindNext moves to the next match, wrapping around.
func (s *Session) FindNext() bool {
	if s.refresh() {
		return s.seek(false)
	}
	off, ok := s.matches.Next()
	if ok {
		s.jump(off)
	}
	return ok
}

// FindPrev moves to the previous match, wrapping around.
func (s *Session) FindPrev() bool {
	if s.refresh() {
		return s.seek(true)
	}
	off, ok := s.matches.Prev()
	if ok {
		s.jump(off)
	}
	return ok
}

// refresh re-runs a stale search and reports whether it did.
func (s *Session) refresh() bool {
	if !s.matches.Stale(s.revision) {
		return false
	}
	s.matches.Search(s.matches.Query, s.buf.Bytes(), s.revision)
	return true
}

func (s *Session) seek(backward bool) bool {
	off, ok := s.matches.Seek(s.cursor, backward)
	if ok {
		s.jump(off)
	}
	return ok
}

func (s *Session) jump(off int) {
	s.selecting = false
	s.setCursor(off)
	s.scrollToCursor()
}

// ClearSearch drops the query and its highlighting.
func (s *Session) ClearSearch() {
	s.matches.Clear()
	s.hl.SetSearchWord("")
}

// Matches exposes the current result set.
func (s *Session) Matches() *search.MatchSet { return s.matches }
