// Package search finds literal substrings with Boyer-Moore-Horspool and keeps
// a cyclic cursor over the results.
package search

import "sort"

// Find returns the start offsets of every non-overlapping occurrence of query
// in text, in ascending order. An empty query, or one longer than text, has no
// matches.
func Find(text, query []byte) []int {
	n, m := len(text), len(query)
	if m == 0 || m > n {
		return nil
	}

	var skip [256]int
	for i := range skip {
		skip[i] = m
	}
	for i := 0; i < m-1; i++ {
		skip[query[i]] = m - 1 - i
	}

	var matches []int
	i := m - 1
	for i < n {
		j, k := m-1, i
		for j >= 0 && text[k] == query[j] {
			j--
			k--
		}
		if j < 0 {
			matches = append(matches, k+1)
			i += m
			continue
		}
		i += skip[text[i]]
	}
	return matches
}

// MatchSet is the result of one query evaluation plus a cyclic cursor.
// Current is -1 when there are no matches.
type MatchSet struct {
	Query    string
	Matches  []int
	current  int
	revision uint64
}

func NewMatchSet() *MatchSet {
	return &MatchSet{current: -1}
}

// Search evaluates query against text and resets the cursor to the first
// match. revision tags the text so callers can tell when results are stale.
func (s *MatchSet) Search(query string, text []byte, revision uint64) int {
	s.Query = query
	s.Matches = Find(text, []byte(query))
	s.revision = revision
	s.current = -1
	if len(s.Matches) > 0 {
		s.current = 0
	}
	return len(s.Matches)
}

// Stale reports whether the set was computed for a different revision.
func (s *MatchSet) Stale(revision uint64) bool {
	return s.Query != "" && s.revision != revision
}

func (s *MatchSet) Len() int { return len(s.Matches) }

// Index is the position of the cursor within Matches, or -1.
func (s *MatchSet) Index() int { return s.current }

// Current returns the offset under the cursor.
func (s *MatchSet) Current() (int, bool) {
	if s.current < 0 || s.current >= len(s.Matches) {
		return 0, false
	}
	return s.Matches[s.current], true
}

// Next advances the cursor, wrapping to the first match.
func (s *MatchSet) Next() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.current = (s.current + 1) % len(s.Matches)
	return s.Matches[s.current], true
}

// Prev moves the cursor back, wrapping to the last match.
func (s *MatchSet) Prev() (int, bool) {
	if len(s.Matches) == 0 {
		return 0, false
	}
	s.current = (s.current - 1 + len(s.Matches)) % len(s.Matches)
	return s.Matches[s.current], true
}

// Seek moves the cursor to the first match after off, or with backward to the
// last match before it, wrapping at either end.
func (s *MatchSet) Seek(off int, backward bool) (int, bool) {
	n := len(s.Matches)
	if n == 0 {
		return 0, false
	}
	if backward {
		i := sort.SearchInts(s.Matches, off) - 1
		if i < 0 {
			i = n - 1
		}
		s.current = i
	} else {
		i := sort.SearchInts(s.Matches, off+1)
		if i >= n {
			i = 0
		}
		s.current = i
	}
	return s.Matches[s.current], true
}

func (s *MatchSet) Clear() {
	s.Query = ""
	s.Matches = nil
	s.current = -1
	s.revision = 0
}
