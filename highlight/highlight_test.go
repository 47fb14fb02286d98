package highlight

import (
	"testing"

	"gapedit/buffer"
)

func load(text string) (*buffer.GapBuffer, *buffer.LineIndex) {
	b := buffer.NewGapBufferFrom([]byte(text))
	li := buffer.NewLineIndex()
	li.Rebuild(b)
	return b, li
}

func allOf(tokens []TokenType, t TokenType) bool {
	for _, tok := range tokens {
		if tok != t {
			return false
		}
	}
	return true
}

func TestEnsureLineIsMemoized(t *testing.T) {
	b, li := load("int x = 42;")
	h := New(C)
	first := append([]TokenType(nil), h.EnsureLine(0, b, li)...)
	second := h.EnsureLine(0, b, li)
	if len(first) != len(second) {
		t.Fatalf("token length changed between calls")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d changed: %v -> %v", i, first[i], second[i])
		}
	}
	if first[0] != Type || first[4] != Ident || first[8] != Number || first[10] != Operator {
		t.Fatalf("unexpected classification %v", first)
	}
}

func TestBlockCommentPropagatesAcrossLines(t *testing.T) {
	b, li := load("/* foo\nbar */")
	h := New(C)
	h.EnsureLine(0, b, li)
	second := h.EnsureLine(1, b, li)
	if !allOf(second, Comment) {
		t.Fatalf("expected second line fully comment, got %v", second)
	}

	// Close the comment on the first line.
	b.InsertString(6, " */")
	li.MarkDirty()
	li.Rebuild(b)
	h.MarkDirtyFrom(0)

	h.EnsureLine(0, b, li)
	second = h.EnsureLine(1, b, li)
	if second[0] != Ident || second[1] != Ident || second[2] != Ident {
		t.Fatalf("expected bar to be code after closing the comment, got %v", second)
	}
}

func TestOutboundStateChangeDirtiesNextLine(t *testing.T) {
	b, li := load("x\ny")
	h := New(C)
	h.Prefetch(2, b, li)
	if got := h.EnsureLine(1, b, li); got[0] != Ident {
		t.Fatalf("expected ident, got %v", got)
	}

	// Open a comment on line 0 and only mark line 0 dirty: the state change
	// alone must invalidate line 1.
	b.InsertString(0, "/*")
	li.MarkDirty()
	li.Rebuild(b)
	h.lines[0].dirty = true
	h.EnsureLine(0, b, li)
	if got := h.EnsureLine(1, b, li); got[0] != Comment {
		t.Fatalf("expected comment after state change, got %v", got)
	}
}

func TestPythonTripleStringSpansLines(t *testing.T) {
	b, li := load("s = \"\"\"doc\nstill doc\n\"\"\"\nx = 1")
	h := New(Python)
	h.Prefetch(li.LineCount(), b, li)
	if got := h.EnsureLine(1, b, li); !allOf(got, String) {
		t.Fatalf("expected string line, got %v", got)
	}
	if _, out, _ := h.StateAt(2); out != StateNormal {
		t.Fatalf("expected triple string closed on line 2, got state %d", out)
	}
	if got := h.EnsureLine(3, b, li); got[0] != Ident || got[4] != Number {
		t.Fatalf("expected code after string, got %v", got)
	}
}

func TestCStringContinuesUnclosed(t *testing.T) {
	b, li := load("char *s = \"abc\nstill\";")
	h := New(C)
	h.EnsureLine(0, b, li)
	got := h.EnsureLine(1, b, li)
	for i := 0; i < len("still\""); i++ {
		if got[i] != String {
			t.Fatalf("byte %d: expected string, got %v", i, got[i])
		}
	}
	if got[len(got)-1] != Operator {
		t.Fatalf("expected trailing ; to be operator, got %v", got[len(got)-1])
	}
}

func TestSearchOverlayNonOverlapping(t *testing.T) {
	b, li := load("aaaa b")
	h := New(Plain)
	h.SetSearchWord("aa")
	got := h.EnsureLine(0, b, li)
	for i := 0; i < 4; i++ {
		if got[i] != Match {
			t.Fatalf("byte %d: expected match, got %v", i, got[i])
		}
	}
	if got[5] != Normal {
		t.Fatalf("expected b normal, got %v", got[5])
	}

	b2, li2 := load("aaa")
	h2 := New(Plain)
	h2.SetSearchWord("aa")
	got = h2.EnsureLine(0, b2, li2)
	if got[2] != Normal {
		t.Fatalf("third a overlaps the first match and must not be stamped, got %v", got)
	}
}

func TestSearchWordChangeInvalidates(t *testing.T) {
	b, li := load("foo bar")
	h := New(Plain)
	h.EnsureLine(0, b, li)
	h.SetSearchWord("bar")
	got := h.EnsureLine(0, b, li)
	if got[4] != Match || got[0] != Normal {
		t.Fatalf("expected overlay after word change, got %v", got)
	}
	h.SetSearchWord("")
	got = h.EnsureLine(0, b, li)
	if got[4] != Normal {
		t.Fatalf("expected overlay cleared, got %v", got)
	}
}

func TestPlainClassifiesEverythingNormal(t *testing.T) {
	b, li := load("int /* x */ \"y\"")
	h := New(Plain)
	if got := h.EnsureLine(0, b, li); !allOf(got, Normal) {
		t.Fatalf("expected all normal, got %v", got)
	}
}

func TestLanguageSpecificRules(t *testing.T) {
	cases := []struct {
		lang Language
		text string
		at   int
		want TokenType
	}{
		{C, "#include <stdio.h>", 10, Preproc},
		{C, "return 0;", 0, Keyword},
		{SQL, "select * from t", 0, Keyword},
		{SQL, "-- note", 3, Comment},
		{Assembly, "MOV eax, 0x1F", 0, Keyword},
		{Assembly, "MOV eax, 0x1F", 10, Number},
		{Assembly, "mov %eax", 4, Preproc},
		{Shell, "echo $HOME", 5, Preproc},
		{Shell, "# comment", 2, Comment},
		{Python, "def f():", 0, Keyword},
		{JavaScript, "let x = `t`", 8, String},
		{JSON, `{"a": true}`, 6, Keyword},
		{CSS, "@media screen", 0, Preproc},
		{HTML, "<div class=\"x\">", 1, Keyword},
		{PHP, "$x = 1;", 0, Preproc},
		{CSharp, "namespace App", 0, Keyword},
		{CPP, "std::vector<int> v;", 5, Type},
	}
	for _, tc := range cases {
		b, li := load(tc.text)
		h := New(tc.lang)
		got := h.EnsureLine(0, b, li)
		if got[tc.at] != tc.want {
			t.Fatalf("%s %q byte %d: expected %v, got %v", tc.lang, tc.text, tc.at, tc.want, got[tc.at])
		}
	}
}

func TestLinesPastEndReturnNil(t *testing.T) {
	b, li := load("one")
	h := New(C)
	if got := h.EnsureLine(3, b, li); got != nil {
		t.Fatalf("expected nil tokens past end, got %v", got)
	}
}
