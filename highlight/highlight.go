package highlight

import (
	"gapedit/buffer"
	"gapedit/search"
)

type TokenType uint8

const (
	Normal TokenType = iota
	Keyword
	Type
	Preproc
	String
	Char
	Comment
	Number
	Ident
	Match // search overlay
	Operator

	tokenCount
)

var tokenNames = [...]string{"normal", "keyword", "type", "preproc", "string", "char", "comment", "number", "ident", "match", "operator"}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "unknown"
}

// State is the lexer's continuation state at a line boundary.
type State uint8

const (
	StateNormal State = iota
	StateBlockComment
	StateString // double-quoted literal left open
	StateChar   // single-quoted literal left open
	StateRawString
	StateTripleDouble
	StateTripleSingle
)

type lineRecord struct {
	tokens   []TokenType
	dirty    bool
	stateIn  State
	stateOut State
}

// Highlighter caches token classifications per line. Lines are lexed lazily
// and seeded with the previous line's outbound state, so lines must be
// requested top-down after an edit above them (see Prefetch).
type Highlighter struct {
	lang  Language
	rules *Rules
	lines []lineRecord
	word  []byte
}

func New(lang Language) *Highlighter {
	return &Highlighter{lang: lang, rules: RulesFor(lang)}
}

func (h *Highlighter) Language() Language { return h.lang }

// SetLanguage switches rule tables and invalidates every line.
func (h *Highlighter) SetLanguage(lang Language) {
	h.lang = lang
	h.rules = RulesFor(lang)
	h.MarkDirtyFrom(0)
}

// MarkDirtyFrom invalidates line and every line after it.
func (h *Highlighter) MarkDirtyFrom(line int) {
	if line < 0 {
		line = 0
	}
	for i := line; i < len(h.lines); i++ {
		h.lines[i].dirty = true
	}
}

// SetSearchWord sets the overlay word. Changing it invalidates every line.
func (h *Highlighter) SetSearchWord(word string) {
	if word == string(h.word) {
		return
	}
	h.word = append(h.word[:0], word...)
	h.MarkDirtyFrom(0)
}

func (h *Highlighter) SearchWord() string { return string(h.word) }

func (h *Highlighter) grow(n int) {
	for len(h.lines) < n {
		h.lines = append(h.lines, lineRecord{dirty: true})
	}
}

// EnsureLine returns the tokens for line, lexing it if its record is dirty.
// The returned slice is owned by the highlighter and is valid until the line
// is lexed again.
func (h *Highlighter) EnsureLine(line int, b *buffer.GapBuffer, li *buffer.LineIndex) []TokenType {
	count := li.LineCount()
	if line < 0 || line >= count {
		return nil
	}
	if len(h.lines) > count {
		h.lines = h.lines[:count]
	}
	h.grow(line + 1)

	rec := &h.lines[line]
	if !rec.dirty {
		return rec.tokens
	}

	start := li.LineStart(line)
	end := li.LineEnd(line, b)
	text := b.Range(start, end-start)

	in := StateNormal
	if line > 0 {
		in = h.lines[line-1].stateOut
	}

	if cap(rec.tokens) < len(text) {
		rec.tokens = make([]TokenType, len(text))
	}
	rec.tokens = rec.tokens[:len(text)]
	for i := range rec.tokens {
		rec.tokens[i] = Normal
	}

	out := StateNormal
	if h.rules != nil {
		out = lexLine(h.rules, text, in, rec.tokens)
	}

	if len(h.word) > 0 {
		for _, at := range search.Find(text, h.word) {
			for j := at; j < at+len(h.word); j++ {
				rec.tokens[j] = Match
			}
		}
	}

	rec.stateIn = in
	rec.stateOut = out
	rec.dirty = false

	if line+1 < len(h.lines) && h.lines[line+1].stateIn != out {
		h.lines[line+1].dirty = true
	}
	return rec.tokens
}

// Prefetch lexes every line in [0, upTo) in order so that continuation state
// reaching a viewport starting at upTo is current.
func (h *Highlighter) Prefetch(upTo int, b *buffer.GapBuffer, li *buffer.LineIndex) {
	if upTo > li.LineCount() {
		upTo = li.LineCount()
	}
	for k := 0; k < upTo; k++ {
		h.EnsureLine(k, b, li)
	}
}

// StateAt reports the inbound and outbound continuation state of a lexed line.
func (h *Highlighter) StateAt(line int) (in, out State, ok bool) {
	if line < 0 || line >= len(h.lines) || h.lines[line].dirty {
		return StateNormal, StateNormal, false
	}
	return h.lines[line].stateIn, h.lines[line].stateOut, true
}
