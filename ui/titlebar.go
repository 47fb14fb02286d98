package ui

import (
	"fmt"

	"gapedit/config"

	"github.com/gdamore/tcell/v2"
)

const Shortcuts = " ^O:Save  ^K:DelLine  ^T:KillLine  ^B:Run  ^F:Find  ^Z:Undo  ^R:LineNums  ^W:Wipe  ^L:Split  ^A:Help  ^Q:Quit"

type PaneTitle struct {
	Path               string
	Modified           bool
	ExternallyModified bool // file changed on disk while the pane has unsaved changes
}

type TitleBar struct {
	Panes         []PaneTitle
	Active        int
	ShowShortcuts bool
	Theme         *config.ColorScheme
}

func NewTitleBar() *TitleBar {
	return &TitleBar{}
}

func paneLabel(p PaneTitle) string {
	name := p.Path
	if name == "" {
		name = "[No File]"
	}
	if p.ExternallyModified {
		return name + " !"
	}
	if p.Modified {
		return name + " *"
	}
	return name
}

func (tb *TitleBar) Title() string {
	if tb.ShowShortcuts {
		return Shortcuts
	}
	title := " gapedit  |  "
	if tb.Active >= 0 && tb.Active < len(tb.Panes) {
		title += paneLabel(tb.Panes[tb.Active])
	} else {
		title += "[No File]"
	}
	if len(tb.Panes) > 1 {
		title += fmt.Sprintf("  |  pane %d/%d", tb.Active+1, len(tb.Panes))
	}
	return title + "  |  ^A for shortcuts"
}

func (tb *TitleBar) Render(screen tcell.Screen, x, y, width int) {
	theme := tb.Theme
	if theme == nil {
		theme = config.Themes["abyss"]
	}
	style := tcell.StyleDefault.Background(theme.TitleBg).Foreground(theme.TitleFg).Bold(true)
	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	drawText(screen, x, y, x+width, tb.Title(), style)
}
