package search

import (
	"bytes"
	"math/rand"
	"reflect"
	"testing"
)

func naiveFind(text, query []byte) []int {
	if len(query) == 0 {
		return nil
	}
	var out []int
	for i := 0; i+len(query) <= len(text); {
		if bytes.Equal(text[i:i+len(query)], query) {
			out = append(out, i)
			i += len(query)
			continue
		}
		i++
	}
	return out
}

func TestFindMatchesNaiveScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 2000; round++ {
		text := make([]byte, rng.Intn(200))
		for i := range text {
			text[i] = "aab"[rng.Intn(3)]
		}
		query := make([]byte, 1+rng.Intn(4))
		for i := range query {
			query[i] = "ab"[rng.Intn(2)]
		}
		got := Find(text, query)
		want := naiveFind(text, query)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("Find(%q, %q) = %v, want %v", text, query, got, want)
		}
	}
}

func TestFindNonOverlapping(t *testing.T) {
	got := Find([]byte("aaaa"), []byte("aa"))
	if !reflect.DeepEqual(got, []int{0, 2}) {
		t.Fatalf("expected [0 2], got %v", got)
	}
}

func TestFindDegenerateQueries(t *testing.T) {
	if got := Find([]byte("abc"), nil); len(got) != 0 {
		t.Fatalf("empty query should not match, got %v", got)
	}
	if got := Find([]byte("ab"), []byte("abc")); len(got) != 0 {
		t.Fatalf("oversized query should not match, got %v", got)
	}
}

func TestMatchSetCycles(t *testing.T) {
	s := NewMatchSet()
	if n := s.Search("x", []byte("x.x.x"), 1); n != 3 {
		t.Fatalf("expected 3 matches, got %d", n)
	}
	if off, _ := s.Current(); off != 0 {
		t.Fatalf("expected first match at 0, got %d", off)
	}
	for _, want := range []int{2, 4, 0} {
		if off, _ := s.Next(); off != want {
			t.Fatalf("next: expected %d, got %d", want, off)
		}
	}
	if off, _ := s.Prev(); off != 4 {
		t.Fatalf("prev should wrap to 4, got %d", off)
	}
}

func TestMatchSetEmptyNavigationIsNoop(t *testing.T) {
	s := NewMatchSet()
	s.Search("zz", []byte("abc"), 1)
	if _, ok := s.Next(); ok {
		t.Fatalf("next on empty set should fail")
	}
	if _, ok := s.Prev(); ok {
		t.Fatalf("prev on empty set should fail")
	}
	if s.Index() != -1 {
		t.Fatalf("expected index -1, got %d", s.Index())
	}
}

func TestMatchSetStale(t *testing.T) {
	s := NewMatchSet()
	if s.Stale(5) {
		t.Fatalf("a cleared set is never stale")
	}
	s.Search("a", []byte("a"), 1)
	if s.Stale(1) || !s.Stale(2) {
		t.Fatalf("stale tracking is wrong")
	}
}
