package editor

import (
	"log/slog"
	"path/filepath"
	"slices"

	"gapedit/session"
	"gapedit/ui"
	"gapedit/watch"

	"github.com/gdamore/tcell/v2"
)

// Pane shows one session. Horizontal scroll is kept here in display
// columns; the session tracks the vertical viewport.
type Pane struct {
	sess        *session.Session
	scrollX     int
	rows        int // text rows last given to the session
	lineNumbers bool
	external    bool // changed on disk while the session had unsaved edits

	// Screen area of the text, set by the last render.
	textX, textY, textW, textH int
}

func newPane(sess *session.Session, lineNumbers bool) *Pane {
	return &Pane{sess: sess, lineNumbers: lineNumbers}
}

func (p *Pane) title() string {
	if p.sess.Path() == "" {
		return "[No File]"
	}
	return filepath.Base(p.sess.Path())
}

func (p *Pane) paneTitle() ui.PaneTitle {
	return ui.PaneTitle{
		Path:               p.sess.Path(),
		Modified:           p.sess.Modified(),
		ExternallyModified: p.external,
	}
}

func (p *Pane) attach(w *watch.Watcher, log *slog.Logger) {
	if w == nil || p.sess.Path() == "" {
		return
	}
	if err := w.Add(p.sess.Path()); err != nil {
		log.Warn("watch failed", "path", p.sess.Path(), "err", err)
	}
}

func (p *Pane) detach(w *watch.Watcher) {
	p.detachPath(w, p.sess.Path())
}

func (p *Pane) detachPath(w *watch.Watcher, path string) {
	if w == nil || path == "" {
		return
	}
	w.Remove(path)
}

// contains reports whether screen cell (x, y) is in the pane's text area.
func (p *Pane) contains(x, y int) bool {
	return x >= p.textX && x < p.textX+p.textW && y >= p.textY && y < p.textY+p.textH
}

// split re-reads the active file into a new pane to its right, keeping the
// cursor and scroll position.
func (e *Editor) split() {
	cur := e.activePane()
	if cur == nil {
		return
	}
	if len(e.panes) >= MaxPanes {
		e.setTemporaryError("Maximum number of splits reached")
		return
	}
	path := cur.sess.Path()
	var sess *session.Session
	if path == "" {
		sess = e.newSession("")
		sess.InsertText(string(cur.sess.Content()))
	} else {
		loaded, err := e.loadSession(path)
		if err != nil {
			e.setTemporaryError("Error: " + err.Error())
			return
		}
		sess = loaded
	}
	pos := cur.sess.Position()
	view := cur.sess.View()
	sess.MoveTo(pos.Line, pos.Col)
	sess.SetView(view.Top, view.Left)

	p := newPane(sess, cur.lineNumbers)
	p.scrollX = cur.scrollX
	p.attach(e.watcher, e.log)

	e.active++
	e.panes = slices.Insert(e.panes, e.active, p)
	e.setTemporaryMessage("Split " + p.title())
}

// closeSplit closes the active pane unless it is the last one.
func (e *Editor) closeSplit() {
	if len(e.panes) <= 1 {
		e.setTemporaryError("No split to close")
		return
	}
	p := e.activePane()
	if p.sess.Modified() && !e.sharedPath(p) {
		e.setTemporaryError("Unsaved changes in " + p.title() + ", save before closing")
		return
	}
	p.detach(e.watcher)
	e.panes = append(e.panes[:e.active], e.panes[e.active+1:]...)
	if e.active >= len(e.panes) {
		e.active = len(e.panes) - 1
	}
}

// sharedPath reports whether another pane shows the same file as p.
func (e *Editor) sharedPath(p *Pane) bool {
	if p.sess.Path() == "" {
		return false
	}
	for _, q := range e.panes {
		if q != p && q.sess.Path() == p.sess.Path() {
			return true
		}
	}
	return false
}

func (e *Editor) focusNext() {
	if len(e.panes) > 1 {
		e.active = (e.active + 1) % len(e.panes)
	}
}

// layout splits the screen into title, panes, output panel, status and
// prompt rows.
type layout struct {
	titleY        int
	textY, textH  int
	outputY, outH int
	statusY       int
	promptY       int // -1 when no prompt is shown
	width         int
	paneX, paneW  []int
}

func (e *Editor) layout() layout {
	w, h := e.screen.Size()
	l := layout{width: w, textY: 1, promptY: -1}
	bottom := h - 1
	if e.prompt != nil {
		l.promptY = bottom
		bottom--
	}
	l.statusY = bottom
	l.textH = max(0, l.statusY-l.textY)
	if e.output.Visible && l.textH > 4 {
		l.outH = max(3, l.textH/3)
		l.textH -= l.outH
		l.outputY = l.textY + l.textH
	}

	n := max(1, len(e.panes))
	paneW := max(1, (w-(n-1))/n)
	x := 0
	for i := 0; i < n; i++ {
		pw := paneW
		if i == n-1 {
			pw = max(1, w-x)
		}
		l.paneX = append(l.paneX, x)
		l.paneW = append(l.paneW, pw)
		x += pw + 1
	}
	return l
}

// paneAt returns the index of the pane whose text area holds (x, y).
func (e *Editor) paneAt(x, y int) int {
	for i, p := range e.panes {
		if p.contains(x, y) {
			return i
		}
	}
	return -1
}

func (e *Editor) borderStyle() tcell.Style {
	theme := e.cfg.GetTheme()
	return tcell.StyleDefault.Background(theme.Background).Foreground(theme.PaneBorder)
}
