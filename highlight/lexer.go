package highlight

import (
	"bytes"
	"strings"
)

type NumberStyle uint8

const (
	NumberAlnum   NumberStyle = iota // digit, then letters, digits or '.'
	NumberDigits                     // digits only
	NumberDecimal                    // digits and '.'
	NumberHex                        // 0x prefixed hex, otherwise NumberAlnum
)

type CaseFold uint8

const (
	FoldNone CaseFold = iota
	FoldUpper
	FoldLower
)

// StringRule describes one quoted literal. A rule whose State is not
// StateNormal keeps the literal open across a line end.
type StringRule struct {
	Open   string
	Close  string
	Token  TokenType
	Escape bool
	State  State
}

// Rules is the scanning table for one language.
type Rules struct {
	LineComments []string
	BlockOpen    string
	BlockClose   string
	Strings      []StringRule // tried in order, so longer delimiters go first
	Preproc      byte         // marks the whole line when found in column 0
	Sigils       string       // single bytes classified Preproc
	IdentStart   string       // accepted as an identifier's first byte besides letters and '_'
	IdentExtra   string       // accepted inside identifiers besides letters, digits and '_'
	Keywords     []string
	Types        []string
	Fold         CaseFold
	Operators    string
	Numbers      NumberStyle

	words   map[string]TokenType
	byState map[State]*StringRule
}

func (r *Rules) compile() *Rules {
	r.words = make(map[string]TokenType, len(r.Keywords)+len(r.Types))
	for _, w := range r.Types {
		r.words[r.fold(w)] = Type
	}
	// Keywords win over types when a word is in both tables.
	for _, w := range r.Keywords {
		r.words[r.fold(w)] = Keyword
	}
	r.byState = make(map[State]*StringRule)
	for i := range r.Strings {
		if s := r.Strings[i].State; s != StateNormal {
			r.byState[s] = &r.Strings[i]
		}
	}
	return r
}

func (r *Rules) fold(w string) string {
	switch r.Fold {
	case FoldUpper:
		return strings.ToUpper(w)
	case FoldLower:
		return strings.ToLower(w)
	}
	return w
}

func (r *Rules) classify(word []byte) TokenType {
	var t TokenType
	var ok bool
	switch r.Fold {
	case FoldUpper:
		t, ok = r.words[string(bytes.ToUpper(word))]
	case FoldLower:
		t, ok = r.words[string(bytes.ToLower(word))]
	default:
		t, ok = r.words[string(word)]
	}
	if !ok {
		return Ident
	}
	return t
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }
func isHex(c byte) bool   { return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F' }

func (r *Rules) identStart(c byte) bool {
	return isAlpha(c) || c == '_' || strings.IndexByte(r.IdentStart, c) >= 0
}

func (r *Rules) identPart(c byte) bool {
	return isAlpha(c) || isDigit(c) || c == '_' || strings.IndexByte(r.IdentExtra, c) >= 0
}

func fill(out []TokenType, from, to int, t TokenType) {
	for i := from; i < to; i++ {
		out[i] = t
	}
}

// scanLiteral marks bytes as rule.Token until rule.Close and reports whether
// the literal was closed on this line.
func scanLiteral(rule *StringRule, line []byte, i int, out []TokenType) (int, bool) {
	for i < len(line) {
		if rule.Escape && line[i] == '\\' {
			out[i] = rule.Token
			i++
			if i < len(line) {
				out[i] = rule.Token
				i++
			}
			continue
		}
		if bytes.HasPrefix(line[i:], []byte(rule.Close)) {
			fill(out, i, i+len(rule.Close), rule.Token)
			return i + len(rule.Close), true
		}
		out[i] = rule.Token
		i++
	}
	return i, false
}

// lexLine classifies line into out, starting in state, and returns the state
// at the end of the line.
func lexLine(r *Rules, line []byte, state State, out []TokenType) State {
	i := 0
	for i < len(line) {
		if state == StateBlockComment {
			end := -1
			if r.BlockClose != "" {
				end = bytes.Index(line[i:], []byte(r.BlockClose))
			}
			if end < 0 {
				fill(out, i, len(line), Comment)
				return state
			}
			stop := i + end + len(r.BlockClose)
			fill(out, i, stop, Comment)
			i = stop
			state = StateNormal
			continue
		}
		if state != StateNormal {
			rule, ok := r.byState[state]
			if !ok {
				state = StateNormal
				continue
			}
			var closed bool
			i, closed = scanLiteral(rule, line, i, out)
			if closed {
				state = StateNormal
			}
			continue
		}

		rest := line[i:]
		c := line[i]

		if hasAnyPrefix(rest, r.LineComments) {
			fill(out, i, len(line), Comment)
			return state
		}
		if r.BlockOpen != "" && bytes.HasPrefix(rest, []byte(r.BlockOpen)) {
			fill(out, i, i+len(r.BlockOpen), Comment)
			i += len(r.BlockOpen)
			state = StateBlockComment
			continue
		}
		if r.Preproc != 0 && i == 0 && c == r.Preproc {
			fill(out, 0, len(line), Preproc)
			return state
		}
		if rule := r.stringAt(rest); rule != nil {
			fill(out, i, i+len(rule.Open), rule.Token)
			var closed bool
			i, closed = scanLiteral(rule, line, i+len(rule.Open), out)
			if !closed {
				state = rule.State
			}
			continue
		}
		if isDigit(c) {
			i = r.scanNumber(line, i, out)
			continue
		}
		if r.identStart(c) {
			start := i
			i++
			for i < len(line) && r.identPart(line[i]) {
				i++
			}
			fill(out, start, i, r.classify(line[start:i]))
			continue
		}
		if strings.IndexByte(r.Sigils, c) >= 0 {
			out[i] = Preproc
			i++
			continue
		}
		if strings.IndexByte(r.Operators, c) >= 0 {
			out[i] = Operator
			i++
			continue
		}
		out[i] = Normal
		i++
	}
	return state
}

func hasAnyPrefix(s []byte, prefixes []string) bool {
	for _, p := range prefixes {
		if bytes.HasPrefix(s, []byte(p)) {
			return true
		}
	}
	return false
}

func (r *Rules) stringAt(s []byte) *StringRule {
	for i := range r.Strings {
		if bytes.HasPrefix(s, []byte(r.Strings[i].Open)) {
			return &r.Strings[i]
		}
	}
	return nil
}

func (r *Rules) scanNumber(line []byte, i int, out []TokenType) int {
	start := i
	switch r.Numbers {
	case NumberDigits:
		for i < len(line) && isDigit(line[i]) {
			i++
		}
	case NumberDecimal:
		for i < len(line) && (isDigit(line[i]) || line[i] == '.') {
			i++
		}
	case NumberHex:
		if line[i] == '0' && i+1 < len(line) && (line[i+1] == 'x' || line[i+1] == 'X') {
			for i < len(line) && (isHex(line[i]) || line[i] == 'x' || line[i] == 'X') {
				i++
			}
			break
		}
		fallthrough
	default:
		for i < len(line) && (isAlpha(line[i]) || isDigit(line[i]) || line[i] == '.') {
			i++
		}
	}
	fill(out, start, i, Number)
	return i
}
