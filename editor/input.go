package editor

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"gapedit/ui"

	"github.com/gdamore/tcell/v2"
)

// ctrlKey maps a rune reported with the Ctrl modifier to its control key,
// so terminals that report ^S as 's'+Ctrl behave like the rest.
func ctrlKey(ev *tcell.EventKey) tcell.Key {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModCtrl == 0 {
		return ev.Key()
	}
	r := ev.Rune()
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r >= 'a' && r <= 'z' {
		return tcell.KeyCtrlA + tcell.Key(r-'a')
	}
	return ev.Key()
}

func (e *Editor) handleKey(ev *tcell.EventKey) {
	key := ctrlKey(ev)

	// Reset the confirm states on any other key.
	if key != tcell.KeyCtrlQ {
		e.quitPending = false
	}
	if key != tcell.KeyCtrlW {
		e.wipePending = false
	}

	if e.prompt != nil {
		e.handlePromptKey(ev, key)
		return
	}

	switch key {
	case tcell.KeyCtrlQ:
		e.handleQuit()
		return
	case tcell.KeyCtrlA:
		e.titleBar.ShowShortcuts = !e.titleBar.ShowShortcuts
		return
	case tcell.KeyCtrlL:
		e.split()
		return
	case tcell.KeyCtrlE:
		e.focusNext()
		return
	case tcell.KeyCtrlD:
		e.closeSplit()
		return
	case tcell.KeyF2:
		e.openPrompt(ui.PromptOpen, "")
		return
	}

	p := e.activePane()
	if p == nil {
		return
	}
	sess := p.sess
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch key {
	case tcell.KeyCtrlS:
		e.save("", false)
	case tcell.KeyCtrlO:
		e.openPrompt(ui.PromptSaveAs, sess.Path())
	case tcell.KeyCtrlF:
		e.openPrompt(ui.PromptSearch, sess.Matches().Query)
	case tcell.KeyCtrlG:
		e.openPrompt(ui.PromptGoto, "")
	case tcell.KeyCtrlN:
		if !sess.FindNext() {
			e.setTemporaryMessage("No matches")
		}
	case tcell.KeyCtrlP:
		if !sess.FindPrev() {
			e.setTemporaryMessage("No matches")
		}
	case tcell.KeyCtrlB:
		e.saveAndRun()
	case tcell.KeyCtrlR:
		p.lineNumbers = !p.lineNumbers
	case tcell.KeyCtrlW:
		e.handleWipe()

	case tcell.KeyCtrlZ:
		if !sess.Undo() {
			e.setTemporaryMessage("Nothing to undo")
		}
	case tcell.KeyCtrlY:
		if !sess.Redo() {
			e.setTemporaryMessage("Nothing to redo")
		}
	case tcell.KeyCtrlC:
		if sess.Copy() {
			e.setTemporaryMessage("Copied")
		}
	case tcell.KeyCtrlX:
		if sess.Cut() {
			e.setTemporaryMessage("Cut")
		}
	case tcell.KeyCtrlV:
		sess.Paste()
	case tcell.KeyCtrlK:
		sess.KillWholeLine()
	case tcell.KeyCtrlT:
		sess.KillLine()

	case tcell.KeyEscape:
		sess.ClearSearch()
		sess.ClearSelection()
		e.output.Visible = false

	case tcell.KeyUp:
		e.move(shift, -1, 0)
	case tcell.KeyDown:
		e.move(shift, 1, 0)
	case tcell.KeyLeft:
		e.move(shift, 0, -1)
	case tcell.KeyRight:
		e.move(shift, 0, 1)
	case tcell.KeyHome:
		e.moveWith(shift, sess.MoveLineStart)
	case tcell.KeyEnd:
		e.moveWith(shift, sess.MoveLineEnd)
	case tcell.KeyPgUp:
		if e.output.Visible && ev.Modifiers()&tcell.ModAlt != 0 {
			e.output.ScrollBy(-5)
			return
		}
		e.moveWith(shift, sess.PageUp)
	case tcell.KeyPgDn:
		if e.output.Visible && ev.Modifiers()&tcell.ModAlt != 0 {
			e.output.ScrollBy(5)
			return
		}
		e.moveWith(shift, sess.PageDown)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		sess.Backspace()
	case tcell.KeyDelete:
		sess.DeleteForward()
	case tcell.KeyEnter:
		sess.Newline()
	case tcell.KeyTab:
		sess.InsertIndent()
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return
		}
		e.typeRune(ev.Rune())
	}
}

func (e *Editor) typeRune(r rune) {
	sess := e.activeSession()
	if r < utf8.RuneSelf {
		sess.InsertChar(byte(r))
		return
	}
	sess.InsertText(string(r))
}

func (e *Editor) move(extend bool, dy, dx int) {
	sess := e.activeSession()
	if extend {
		sess.ExtendBy(dy, dx)
		return
	}
	sess.ClearSelection()
	sess.MoveBy(dy, dx)
}

func (e *Editor) moveWith(extend bool, motion func()) {
	sess := e.activeSession()
	if extend {
		sess.SetAnchor()
	} else {
		sess.ClearSelection()
	}
	motion()
}

func (e *Editor) handleQuit() {
	if e.anyModified() && !e.quitPending {
		e.setStatusMessage("Unsaved changes! Press Ctrl+Q again to force quit.")
		e.quitPending = true
		return
	}
	e.quit = true
}

func (e *Editor) handleWipe() {
	sess := e.activeSession()
	if sess.Path() == "" {
		e.setTemporaryError("No file to wipe")
		return
	}
	if !e.wipePending {
		e.wipePending = true
		e.setStatusMessage("Securely delete " + filepath.Base(sess.Path()) + "? Press Ctrl+W again to confirm.")
		return
	}
	e.wipePending = false
	e.wipe()
}

func (e *Editor) openPrompt(kind ui.PromptKind, prefill string) {
	p := ui.NewPrompt(kind, prefill)
	p.Theme = e.cfg.GetTheme()
	p.OnSubmit = func(value string) { e.submitPrompt(kind, value) }
	p.OnCancel = func() { e.cancelPrompt(kind) }
	e.prompt = p
}

func (e *Editor) closePrompt() {
	e.prompt = nil
}

func (e *Editor) handlePromptKey(ev *tcell.EventKey, key tcell.Key) {
	p := e.prompt
	// Search stays open while cycling through matches.
	if p.Kind == ui.PromptSearch {
		switch key {
		case tcell.KeyCtrlN, tcell.KeyDown:
			e.activeSession().FindNext()
			return
		case tcell.KeyCtrlP, tcell.KeyUp:
			e.activeSession().FindPrev()
			return
		}
	}
	if key == tcell.KeyCtrlQ {
		e.closePrompt()
		e.handleQuit()
		return
	}
	p.HandleKey(ev)
}

func (e *Editor) submitPrompt(kind ui.PromptKind, value string) {
	sess := e.activeSession()
	switch kind {
	case ui.PromptSaveAs:
		e.closePrompt()
		value = strings.TrimSpace(value)
		runAfter := e.runAfterAs
		e.runAfterAs = false
		if value == "" {
			e.setTemporaryError("No file name given")
			return
		}
		abs, err := filepath.Abs(value)
		if err != nil {
			abs = value
		}
		e.save(abs, runAfter)

	case ui.PromptSearch:
		if sess == nil {
			return
		}
		if value == "" {
			sess.ClearSearch()
			return
		}
		if sess.Find(value) == 0 {
			e.setTemporaryError("Not found: " + value)
		}

	case ui.PromptOpen:
		e.closePrompt()
		value = strings.TrimSpace(value)
		if value != "" {
			e.openFile(value, false)
		}

	case ui.PromptGoto:
		e.closePrompt()
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || sess == nil {
			e.setTemporaryError("Invalid line number")
			return
		}
		sess.ClearSelection()
		sess.MoveTo(n-1, 0)
	}
}

func (e *Editor) cancelPrompt(kind ui.PromptKind) {
	e.closePrompt()
	switch kind {
	case ui.PromptSearch:
		if sess := e.activeSession(); sess != nil {
			sess.ClearSearch()
		}
	case ui.PromptSaveAs:
		e.runAfterAs = false
	}
}

// handlePaste tracks bracketed paste markers. The text in between is
// inserted as one edit when the end marker arrives.
func (e *Editor) handlePaste(ev *tcell.EventPaste) {
	if ev.Start() {
		e.pasting = true
		e.pasted.Reset()
		return
	}
	if !e.pasting {
		return
	}
	e.pasting = false
	text := e.pasted.String()
	e.pasted.Reset()
	if text == "" {
		return
	}
	if e.prompt != nil {
		e.prompt.Insert(text)
		return
	}
	if sess := e.activeSession(); sess != nil {
		sess.InsertText(text)
	}
}

func (e *Editor) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		e.pasted.WriteRune(ev.Rune())
	case tcell.KeyEnter:
		e.pasted.WriteByte('\n')
	case tcell.KeyTab:
		e.pasted.WriteByte('\t')
	}
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	mx, my := ev.Position()
	btn := ev.Buttons()

	if btn&(tcell.WheelUp|tcell.WheelDown) != 0 {
		delta := 3
		if btn&tcell.WheelUp != 0 {
			delta = -3
		}
		if e.output.Visible {
			l := e.layout()
			if my >= l.outputY && my < l.outputY+l.outH {
				e.output.ScrollBy(delta)
				return
			}
		}
		idx := e.paneAt(mx, my)
		if idx < 0 {
			idx = e.active
		}
		if idx >= 0 && idx < len(e.panes) {
			sess := e.panes[idx].sess
			v := sess.View()
			sess.SetView(v.Top+delta, v.Left)
		}
		return
	}

	if btn&tcell.Button1 == 0 {
		if e.mouseDown {
			e.mouseDown = false
			if sess := e.activeSession(); sess != nil && !sess.HasSelection() {
				sess.ClearSelection()
			}
		}
		return
	}

	idx := e.active
	if !e.mouseDown {
		idx = e.paneAt(mx, my)
		if idx < 0 {
			return
		}
	}
	e.active = idx
	p := e.panes[idx]
	line := max(0, min(p.sess.View().Top+my-p.textY, p.sess.LineCount()-1))
	col := byteColAt(p.sess.LineText(line), max(0, mx-p.textX+p.scrollX), p.tabWidth())

	if !e.mouseDown {
		// Press: a shift-click extends, a plain click starts a new anchor.
		e.mouseDown = true
		if ev.Modifiers()&tcell.ModShift == 0 {
			p.sess.ClearSelection()
			p.sess.MoveTo(line, col)
		}
		p.sess.SetAnchor()
	}
	p.sess.MoveTo(line, col)
}
