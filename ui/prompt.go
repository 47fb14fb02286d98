package ui

import (
	"strings"

	"gapedit/config"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptSaveAs
	PromptSearch
	PromptOpen
	PromptGoto
)

var promptTitles = [...]string{"", "Save As", "Search", "Open File", "Go to Line"}

func (k PromptKind) Title() string {
	if k < 0 || int(k) >= len(promptTitles) {
		return ""
	}
	return promptTitles[k]
}

// Prompt is the single line input bar used by every non-normal mode.
type Prompt struct {
	Kind   PromptKind
	Input  string
	Cursor int // rune index
	Info   string
	Theme  *config.ColorScheme

	OnSubmit func(value string)
	OnCancel func()
}

func NewPrompt(kind PromptKind, prefill string) *Prompt {
	return &Prompt{Kind: kind, Input: prefill, Cursor: len([]rune(prefill))}
}

func (p *Prompt) Render(screen tcell.Screen, x, y, width int) {
	theme := p.Theme
	if theme == nil {
		theme = config.Themes["abyss"]
	}
	style := tcell.StyleDefault.Background(theme.PromptBg).Foreground(theme.PromptFg)
	labelStyle := style.Bold(true)

	for cx := x; cx < x+width; cx++ {
		screen.SetContent(cx, y, ' ', nil, style)
	}

	col := x
	put := func(r rune, st tcell.Style) {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
		}
		if col+w > x+width {
			return
		}
		screen.SetContent(col, y, r, nil, st)
		col += w
	}

	for _, r := range " " + p.Kind.Title() + ": " {
		put(r, labelStyle)
	}

	runes := []rune(p.Input)
	// Keep the cursor in view when the input is wider than the bar.
	avail := x + width - col - 1
	start := 0
	for start < p.Cursor && runewidth.StringWidth(string(runes[start:p.Cursor])) > avail {
		start++
	}
	for i := start; i < len(runes); i++ {
		st := style
		if i == p.Cursor {
			st = style.Reverse(true)
		}
		put(runes[i], st)
	}
	if p.Cursor >= len(runes) {
		put(' ', style.Reverse(true))
	}

	if p.Info != "" {
		infoStart := x + width - runewidth.StringWidth(p.Info) - 1
		if infoStart > col {
			col = infoStart
			for _, r := range p.Info {
				put(r, style)
			}
		}
	}
}

func (p *Prompt) HandleKey(ev *tcell.EventKey) bool {
	runes := []rune(p.Input)
	switch ev.Key() {
	case tcell.KeyEscape:
		if p.OnCancel != nil {
			p.OnCancel()
		}
	case tcell.KeyEnter:
		if p.OnSubmit != nil {
			p.OnSubmit(p.Input)
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if p.Cursor > 0 {
			p.Input = string(runes[:p.Cursor-1]) + string(runes[p.Cursor:])
			p.Cursor--
		}
	case tcell.KeyDelete:
		if p.Cursor < len(runes) {
			p.Input = string(runes[:p.Cursor]) + string(runes[p.Cursor+1:])
		}
	case tcell.KeyLeft:
		if p.Cursor > 0 {
			p.Cursor--
		}
	case tcell.KeyRight:
		if p.Cursor < len(runes) {
			p.Cursor++
		}
	case tcell.KeyHome:
		p.Cursor = 0
	case tcell.KeyEnd:
		p.Cursor = len(runes)
	case tcell.KeyRune:
		p.Insert(string(ev.Rune()))
	default:
		return false
	}
	return true
}

// Insert adds text at the cursor. Line breaks are dropped and the go to
// line prompt only accepts digits.
func (p *Prompt) Insert(text string) {
	text = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}
		if p.Kind == PromptGoto && (r < '0' || r > '9') {
			return -1
		}
		return r
	}, text)
	if text == "" {
		return
	}
	runes := []rune(p.Input)
	p.Input = string(runes[:p.Cursor]) + text + string(runes[p.Cursor:])
	p.Cursor += len([]rune(text))
}
