package buffer

import (
	"math/rand"
	"strings"
	"testing"
)

func TestGapBufferInsertDeleteMatchesStringModel(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGapBuffer(8)
	model := ""
	alphabet := "ab\ncd{}"

	for step := 0; step < 4000; step++ {
		if rng.Intn(3) > 0 || len(model) == 0 {
			pos := rng.Intn(len(model) + 1)
			n := 1 + rng.Intn(20)
			var sb strings.Builder
			for i := 0; i < n; i++ {
				sb.WriteByte(alphabet[rng.Intn(len(alphabet))])
			}
			g.InsertString(pos, sb.String())
			model = model[:pos] + sb.String() + model[pos:]
		} else {
			pos := rng.Intn(len(model) + 1)
			n := rng.Intn(30)
			removed := g.Delete(pos, n)
			end := min(pos+n, len(model))
			if removed != end-pos {
				t.Fatalf("step %d: delete(%d, %d) removed %d, want %d", step, pos, n, removed, end-pos)
			}
			model = model[:pos] + model[end:]
		}
		if g.Len() != len(model) {
			t.Fatalf("step %d: len %d, want %d", step, g.Len(), len(model))
		}
	}
	if got := g.String(); got != model {
		t.Fatalf("content diverged from model:\n got %q\nwant %q", got, model)
	}
}

func TestGapBufferClampsPositions(t *testing.T) {
	g := NewGapBufferFrom([]byte("abc"))
	g.InsertString(99, "!")
	g.InsertString(-5, ">")
	if got := g.String(); got != ">abc!" {
		t.Fatalf("expected >abc!, got %q", got)
	}
	if n := g.Delete(3, 100); n != 2 {
		t.Fatalf("expected 2 bytes removed, got %d", n)
	}
	if n := g.Delete(50, 1); n != 0 {
		t.Fatalf("expected no-op delete past end, got %d", n)
	}
	if got := g.String(); got != ">ab" {
		t.Fatalf("expected >ab, got %q", got)
	}
	if c := g.ByteAt(10); c != 0 {
		t.Fatalf("expected 0 for out of range ByteAt, got %q", c)
	}
}

func TestGapBufferRangeAcrossGap(t *testing.T) {
	g := NewGapBufferFrom([]byte("hello world"))
	g.InsertString(5, ",")
	if got := string(g.Range(3, 6)); got != "lo, wo" {
		t.Fatalf("expected %q, got %q", "lo, wo", got)
	}
	if got := string(g.Range(8, 100)); got != "orld" {
		t.Fatalf("expected clamped range orld, got %q", got)
	}
	if got := g.Range(4, -1); len(got) != 0 {
		t.Fatalf("expected empty range, got %q", got)
	}
	for i, want := range []byte("hello, world") {
		if c := g.ByteAt(i); c != want {
			t.Fatalf("ByteAt(%d) = %q, want %q", i, c, want)
		}
	}
}

func TestGapBufferGrowsPastCapacity(t *testing.T) {
	g := NewGapBuffer(4)
	big := strings.Repeat("x", 20000)
	g.InsertString(0, "ab")
	g.InsertString(1, big)
	if g.Len() != len(big)+2 {
		t.Fatalf("expected len %d, got %d", len(big)+2, g.Len())
	}
	if g.ByteAt(0) != 'a' || g.ByteAt(g.Len()-1) != 'b' {
		t.Fatalf("growth lost the surrounding content")
	}
}

func TestGapBufferCloneIsIndependent(t *testing.T) {
	g := NewGapBufferFrom([]byte("abc"))
	c := g.Clone()
	g.InsertString(1, "XYZ")
	c.Delete(0, 1)
	if g.String() != "aXYZbc" {
		t.Fatalf("original changed unexpectedly: %q", g.String())
	}
	if c.String() != "bc" {
		t.Fatalf("clone changed unexpectedly: %q", c.String())
	}
}

func TestGapBufferIndexByte(t *testing.T) {
	g := NewGapBufferFrom([]byte("ab\ncd\nef"))
	g.InsertString(4, "-")
	if i := g.IndexByte(0, '\n'); i != 2 {
		t.Fatalf("expected 2, got %d", i)
	}
	if i := g.IndexByte(3, '\n'); i != 6 {
		t.Fatalf("expected 6, got %d", i)
	}
	if i := g.IndexByte(7, '\n'); i != -1 {
		t.Fatalf("expected -1, got %d", i)
	}
}
