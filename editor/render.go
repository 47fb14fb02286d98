package editor

import (
	"fmt"
	"unicode/utf8"

	"gapedit/config"
	"gapedit/highlight"
	"gapedit/ui"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// cellWidth is the number of screen cells r takes when drawn at display
// column col. Tabs stop at multiples of tabWidth; control bytes and invalid
// sequences take one cell.
func cellWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		return tabWidth - col%tabWidth
	}
	if w := runewidth.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// displayCol converts a byte column of line to a display column.
func displayCol(line []byte, byteCol, tabWidth int) int {
	col := 0
	for i := 0; i < byteCol && i < len(line); {
		r, size := utf8.DecodeRune(line[i:])
		col += cellWidth(r, col, tabWidth)
		i += size
	}
	return col
}

// byteColAt converts a display column to the byte column of the character
// covering it. Columns past the end map to the line length.
func byteColAt(line []byte, target, tabWidth int) int {
	col := 0
	for i := 0; i < len(line); {
		r, size := utf8.DecodeRune(line[i:])
		w := cellWidth(r, col, tabWidth)
		if col+w > target {
			return i
		}
		col += w
		i += size
	}
	return len(line)
}

// mergeStyle lays a token style over the pane's base colours, keeping the
// base where the token leaves a colour unset.
func mergeStyle(tok, base tcell.Style) tcell.Style {
	fg, bg, attr := tok.Decompose()
	st := base.Attributes(attr)
	if fg != tcell.ColorDefault {
		st = st.Foreground(fg)
	}
	if bg != tcell.ColorDefault {
		st = st.Background(bg)
	}
	return st
}

func digits(n int) int {
	d := 1
	for ; n >= 10; n /= 10 {
		d++
	}
	return d
}

func (p *Pane) tabWidth() int {
	return max(1, p.sess.Options().IndentWidth)
}

// ensureCursorVisible scrolls horizontally so the cursor stays inside the
// text width.
func (p *Pane) ensureCursorVisible(textW int) {
	pos := p.sess.Position()
	col := displayCol(p.sess.LineText(pos.Line), pos.Col, p.tabWidth())
	if col < p.scrollX {
		p.scrollX = col
	}
	if textW > 0 && col >= p.scrollX+textW {
		p.scrollX = col - textW + 1
	}
}

func (e *Editor) render() {
	theme := e.cfg.GetTheme()
	e.screen.SetStyle(tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground))
	e.screen.Clear()
	e.screen.HideCursor()

	l := e.layout()
	e.updateStatus()

	e.titleBar.Theme = theme
	e.titleBar.Render(e.screen, 0, l.titleY, l.width)

	for i, p := range e.panes {
		e.renderPane(p, l.paneX[i], l.textY, l.paneW[i], l.textH, i == e.active, theme)
		if i > 0 {
			bx := l.paneX[i] - 1
			for row := l.textY; row < l.textY+l.textH; row++ {
				e.screen.SetContent(bx, row, tcell.RuneVLine, nil, e.borderStyle())
			}
		}
	}

	if l.outH > 0 {
		e.output.Theme = theme
		e.output.Render(e.screen, 0, l.outputY, l.width, l.outH)
	}

	e.statusBar.Theme = theme
	e.statusBar.Render(e.screen, 0, l.statusY, l.width)

	if e.prompt != nil && l.promptY >= 0 {
		e.prompt.Theme = theme
		e.prompt.Render(e.screen, 0, l.promptY, l.width)
	}

	e.screen.Show()
}

func (e *Editor) renderPane(p *Pane, x, y, w, h int, focused bool, theme *config.ColorScheme) {
	sess := p.sess
	if p.rows != h {
		p.rows = h
		sess.SetViewSize(h, 0)
	}

	gutter := 0
	if p.lineNumbers {
		gutter = digits(sess.LineCount()) + 1
		if gutter >= w {
			gutter = 0
		}
	}
	p.textX, p.textY, p.textW, p.textH = x+gutter, y, w-gutter, h
	p.ensureCursorVisible(p.textW)

	tokens := highlight.ThemeFor(e.cfg.Theme)
	base := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	numStyle := base.Foreground(theme.LineNumber)
	numActive := base.Foreground(theme.LineNumberActive).Bold(true)
	tabWidth := p.tabWidth()

	sess.PrepareView()
	view := sess.View()
	pos := sess.Position()
	selStart, selEnd, hasSel := sess.Selection()

	for row := 0; row < h; row++ {
		line := view.Top + row
		if line >= sess.LineCount() {
			break
		}
		sy := y + row

		if gutter > 0 {
			st := numStyle
			if line == pos.Line {
				st = numActive
			}
			num := fmt.Sprintf("%*d", gutter-1, line+1)
			for i, r := range num {
				e.screen.SetContent(x+i, sy, r, nil, st)
			}
		}

		text := sess.LineText(line)
		toks := sess.Tokens(line)
		start, _ := sess.LineBounds(line)
		col := 0
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRune(text[i:])
			cells := cellWidth(r, col, tabWidth)
			st := base
			if i < len(toks) {
				st = mergeStyle(tokens.Style(toks[i]), base)
			}
			if hasSel && start+i >= selStart && start+i < selEnd {
				st = st.Background(theme.Selection)
			}
			e.drawCells(p, sy, col, cells, r, st)
			col += cells
			i += size
		}
		// A selected line break shows as one highlighted cell.
		if hasSel && start+len(text) >= selStart && start+len(text) < selEnd {
			e.drawCells(p, sy, col, 1, ' ', base.Background(theme.Selection))
		}
	}

	if focused && e.prompt == nil {
		row := pos.Line - view.Top
		cx := displayCol(sess.LineText(pos.Line), pos.Col, tabWidth) - p.scrollX
		if row >= 0 && row < h && cx >= 0 && cx < p.textW {
			e.screen.ShowCursor(p.textX+cx, y+row)
		}
	}
}

// drawCells draws r at display column col of a pane row, clipped to the
// text area after horizontal scroll.
func (e *Editor) drawCells(p *Pane, sy, col, cells int, r rune, st tcell.Style) {
	sx := col - p.scrollX
	if sx+cells <= 0 || sx >= p.textW {
		return
	}
	switch {
	case r == '\t':
		for c := 0; c < cells; c++ {
			if sx+c >= 0 && sx+c < p.textW {
				e.screen.SetContent(p.textX+sx+c, sy, ' ', nil, st)
			}
		}
		return
	case r == utf8.RuneError || r < ' ' || r == 0x7f || runewidth.RuneWidth(r) == 0:
		r = '?'
	}
	if sx < 0 || sx+cells > p.textW {
		// Wide character cut by an edge.
		for c := 0; c < cells; c++ {
			if sx+c >= 0 && sx+c < p.textW {
				e.screen.SetContent(p.textX+sx+c, sy, ' ', nil, st)
			}
		}
		return
	}
	e.screen.SetContent(p.textX+sx, sy, r, nil, st)
}

// updateStatus copies the active pane's state into the bars.
func (e *Editor) updateStatus() {
	e.titleBar.Panes = e.titleBar.Panes[:0]
	for _, p := range e.panes {
		e.titleBar.Panes = append(e.titleBar.Panes, p.paneTitle())
	}
	e.titleBar.Active = e.active

	sb := e.statusBar
	sess := e.activeSession()
	if sess == nil {
		sb.Line, sb.Lines, sb.Col, sb.Language = 0, 1, 0, highlight.Plain.String()
		sb.Query, sb.MatchIndex, sb.MatchCount = "", -1, 0
		return
	}
	pos := sess.Position()
	sb.Line, sb.Lines, sb.Col = pos.Line, sess.LineCount(), pos.Col
	sb.Language = sess.Language().String()
	sb.LineNumbers = e.activePane().lineNumbers
	m := sess.Matches()
	sb.Query, sb.MatchIndex, sb.MatchCount = m.Query, m.Index(), m.Len()

	if e.prompt != nil && e.prompt.Kind == ui.PromptSearch {
		if m.Query == "" {
			e.prompt.Info = ""
		} else {
			e.prompt.Info = fmt.Sprintf("[%d/%d]", m.Index()+1, m.Len())
		}
	}
}
