package ui

import (
	"fmt"

	"gapedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type StatusBar struct {
	Line        int // 0-indexed
	Lines       int
	Col         int // 0-indexed
	Language    string
	Query       string
	MatchIndex  int // -1 when no match is selected
	MatchCount  int
	LineNumbers bool
	Message     string // temporary status message
	IsError     bool
	Theme       *config.ColorScheme
}

func NewStatusBar() *StatusBar {
	return &StatusBar{MatchIndex: -1}
}

// Text is the cursor and search summary shown on the left.
func (s *StatusBar) Text() string {
	text := fmt.Sprintf(" Ln %d/%d  Col %d  [%s]", s.Line+1, s.Lines, s.Col+1, s.Language)
	if s.Query != "" {
		text += fmt.Sprintf(" | \"%s\" [%d/%d]", s.Query, s.MatchIndex+1, s.MatchCount)
	}
	if s.LineNumbers {
		text += "  [LN]"
	}
	return text + " "
}

func (s *StatusBar) Render(screen tcell.Screen, x, y, width int) {
	theme := s.Theme
	if theme == nil {
		theme = config.Themes["abyss"]
	}
	style := tcell.StyleDefault.Background(theme.StatusBarBg).Foreground(theme.StatusBarFg)
	msgStyle := style
	if s.IsError {
		msgStyle = style.Foreground(theme.Warning).Bold(true)
	}

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}
	col := drawText(screen, x, y, x+width, s.Text(), style)

	if s.Message == "" {
		return
	}
	msg := s.Message + " "
	start := x + width - runewidth.StringWidth(msg)
	if start < col+1 {
		start = col + 1
	}
	drawText(screen, start, y, x+width, msg, msgStyle)
}

// drawText writes text from x up to limit and returns the next column.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if x+w > limit {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
