package ui

import (
	"strings"

	"gapedit/config"

	"github.com/gdamore/tcell/v2"
)

// OutputPanel shows the captured output of the last run.
type OutputPanel struct {
	Visible bool
	Title   string
	lines   []string
	scroll  int
	height  int
	Theme   *config.ColorScheme
}

func NewOutputPanel() *OutputPanel {
	return &OutputPanel{}
}

func (o *OutputPanel) SetText(title, text string) {
	o.Title = title
	o.lines = strings.Split(strings.TrimRight(text, "\n"), "\n")
	o.scroll = 0
	o.Visible = true
}

func (o *OutputPanel) Lines() []string { return o.lines }

func (o *OutputPanel) ScrollBy(delta int) {
	o.scroll += delta
	maxScroll := len(o.lines) - max(1, o.height-1)
	if o.scroll > maxScroll {
		o.scroll = maxScroll
	}
	if o.scroll < 0 {
		o.scroll = 0
	}
}

func (o *OutputPanel) Render(screen tcell.Screen, x, y, width, height int) {
	o.height = height
	if height <= 0 {
		return
	}
	theme := o.Theme
	if theme == nil {
		theme = config.Themes["abyss"]
	}
	style := tcell.StyleDefault.Background(theme.OutputBg).Foreground(theme.OutputFg)
	header := tcell.StyleDefault.Background(theme.TitleBg).Foreground(theme.TitleFg)

	for row := 0; row < height; row++ {
		st := style
		if row == 0 {
			st = header
		}
		for cx := x; cx < x+width; cx++ {
			screen.SetContent(cx, y+row, ' ', nil, st)
		}
	}
	drawText(screen, x, y, x+width, " "+o.Title, header)

	for row := 1; row < height; row++ {
		i := o.scroll + row - 1
		if i >= len(o.lines) {
			break
		}
		line := strings.ReplaceAll(o.lines[i], "\t", "    ")
		drawText(screen, x, y+row, x+width, line, style)
	}
}
