package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, w, h int) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init failed: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func rowText(screen tcell.Screen, y, w int) string {
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestStatusBarText(t *testing.T) {
	s := NewStatusBar()
	s.Line, s.Lines, s.Col, s.Language = 2, 10, 4, "C"
	if got := s.Text(); got != " Ln 3/10  Col 5  [C] " {
		t.Fatalf("unexpected status %q", got)
	}
	s.Query, s.MatchIndex, s.MatchCount, s.LineNumbers = "foo", 0, 3, true
	if got := s.Text(); got != ` Ln 3/10  Col 5  [C] | "foo" [1/3]  [LN] ` {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestStatusBarRendersMessageOnRight(t *testing.T) {
	screen := newScreen(t, 60, 1)
	s := NewStatusBar()
	s.Lines, s.Language = 1, "Plain"
	s.Message = "Saved a.txt"
	s.Render(screen, 0, 0, 60)

	row := rowText(screen, 0, 60)
	if !strings.HasPrefix(row, " Ln 1/1  Col 1  [Plain]") {
		t.Fatalf("unexpected row %q", row)
	}
	if !strings.HasSuffix(strings.TrimRight(row, " "), "Saved a.txt") {
		t.Fatalf("expected message at the right edge, got %q", row)
	}
}

func TestTitleBarShowsModifiedAndPanes(t *testing.T) {
	tb := NewTitleBar()
	tb.Panes = []PaneTitle{{Path: "/a.c", Modified: true}, {Path: "/b.c", ExternallyModified: true}}
	if got := tb.Title(); got != " gapedit  |  /a.c *  |  pane 1/2  |  ^A for shortcuts" {
		t.Fatalf("unexpected title %q", got)
	}
	tb.Active = 1
	if !strings.Contains(tb.Title(), "/b.c !") {
		t.Fatalf("expected external marker, got %q", tb.Title())
	}
	tb.ShowShortcuts = true
	if tb.Title() != Shortcuts {
		t.Fatalf("expected shortcut bar")
	}

	screen := newScreen(t, 20, 1)
	tb.ShowShortcuts = false
	tb.Panes = nil
	tb.Render(screen, 0, 0, 20)
	if got := rowText(screen, 0, 20); got != " gapedit  |  [No Fil" {
		t.Fatalf("unexpected clipped title %q", got)
	}
}

func TestPromptEditing(t *testing.T) {
	var submitted string
	p := NewPrompt(PromptSearch, "ab")
	p.OnSubmit = func(v string) { submitted = v }

	p.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'X', tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnd, 0, tcell.ModNone))
	p.HandleKey(tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone))
	p.Insert("c\nd")
	p.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	if submitted != "aXcd" {
		t.Fatalf("unexpected submission %q", submitted)
	}
	if p.HandleKey(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl)) {
		t.Fatalf("prompt should not consume unrelated control keys")
	}
}

func TestGotoPromptAcceptsDigitsOnly(t *testing.T) {
	p := NewPrompt(PromptGoto, "")
	p.Insert("1a2")
	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if p.Input != "12" {
		t.Fatalf("unexpected input %q", p.Input)
	}
}

func TestPromptRender(t *testing.T) {
	screen := newScreen(t, 40, 1)
	p := NewPrompt(PromptSaveAs, "out.txt")
	p.Info = "[1/2]"
	p.Render(screen, 0, 0, 40)
	row := rowText(screen, 0, 40)
	if !strings.HasPrefix(row, " Save As: out.txt") || !strings.Contains(row, "[1/2]") {
		t.Fatalf("unexpected prompt row %q", row)
	}
}

func TestOutputPanelScroll(t *testing.T) {
	screen := newScreen(t, 20, 4)
	o := NewOutputPanel()
	o.SetText("run", "one\ntwo\nthree\nfour\nfive\n")
	o.Render(screen, 0, 0, 20, 4)
	if got := strings.TrimRight(rowText(screen, 1, 20), " "); got != "one" {
		t.Fatalf("unexpected first line %q", got)
	}
	o.ScrollBy(10)
	o.Render(screen, 0, 0, 20, 4)
	if got := strings.TrimRight(rowText(screen, 3, 20), " "); got != "five" {
		t.Fatalf("unexpected last line %q", got)
	}
	o.ScrollBy(-10)
	if o.scroll != 0 {
		t.Fatalf("expected scroll clamped at 0, got %d", o.scroll)
	}
	if len(o.Lines()) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(o.Lines()))
	}
}
