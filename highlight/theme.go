package highlight

import "github.com/gdamore/tcell/v2"

// Theme maps token types to terminal styles.
type Theme struct {
	Name   string
	styles [tokenCount]tcell.Style
}

func (t *Theme) Style(tok TokenType) tcell.Style {
	if int(tok) >= len(t.styles) {
		return tcell.StyleDefault
	}
	return t.styles[tok]
}

func newTheme(name string, styles map[TokenType]tcell.Style) *Theme {
	t := &Theme{Name: name}
	for i := range t.styles {
		t.styles[i] = tcell.StyleDefault
	}
	for tok, s := range styles {
		t.styles[tok] = s
	}
	return t
}

var base = tcell.StyleDefault

var Themes = map[string]*Theme{
	"abyss": newTheme("abyss", map[TokenType]tcell.Style{
		Keyword:  base.Foreground(tcell.ColorDarkCyan).Bold(true),
		Type:     base.Foreground(tcell.ColorGreen),
		Preproc:  base.Foreground(tcell.ColorDarkMagenta),
		String:   base.Foreground(tcell.ColorOlive),
		Char:     base.Foreground(tcell.ColorOlive),
		Comment:  base.Foreground(tcell.ColorNavy),
		Number:   base.Foreground(tcell.ColorMaroon),
		Match:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		Operator: base.Foreground(tcell.ColorWhite),
	}),
	"dark": newTheme("dark", map[TokenType]tcell.Style{
		Keyword:  base.Foreground(tcell.ColorBlue).Bold(true),
		Type:     base.Foreground(tcell.ColorFuchsia),
		Preproc:  base.Foreground(tcell.ColorGray).Italic(true),
		String:   base.Foreground(tcell.ColorGreen),
		Char:     base.Foreground(tcell.ColorGreen),
		Comment:  base.Foreground(tcell.ColorGray).Italic(true),
		Number:   base.Foreground(tcell.ColorDarkCyan),
		Ident:    base.Foreground(tcell.ColorWhite),
		Match:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		Operator: base.Foreground(tcell.ColorWhite),
	}),
	"light": newTheme("light", map[TokenType]tcell.Style{
		Keyword:  base.Foreground(tcell.ColorNavy).Bold(true),
		Type:     base.Foreground(tcell.ColorPurple),
		Preproc:  base.Foreground(tcell.ColorTeal),
		String:   base.Foreground(tcell.ColorDarkGreen),
		Char:     base.Foreground(tcell.ColorDarkGreen),
		Comment:  base.Foreground(tcell.ColorGray).Italic(true),
		Number:   base.Foreground(tcell.ColorMaroon),
		Match:    base.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
		Operator: base.Foreground(tcell.ColorBlack),
	}),
}

// ThemeFor returns the named theme, or abyss when the name is unknown.
func ThemeFor(name string) *Theme {
	if t, ok := Themes[name]; ok {
		return t
	}
	return Themes["abyss"]
}
