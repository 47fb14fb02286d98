package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gapedit/session"
)

// EditorConfig holds the indentation properties gapedit honours.
type EditorConfig struct {
	IndentStyle string // "tab", "space" or ""
	IndentSize  int    // 0 when unset or "tab"
	TabWidth    int
}

type ecSection struct {
	patterns []string
	props    map[string]string
}

type ecFile struct {
	dir      string
	root     bool
	sections []ecSection
}

// FindEditorConfig walks from the file's directory towards the filesystem
// root, stopping after a file declaring root = true. Closer files win.
// Returns nil when nothing applies.
func FindEditorConfig(path string) *EditorConfig {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil
	}

	var files []*ecFile
	for dir := filepath.Dir(abs); ; {
		if f := readEditorConfig(filepath.Join(dir, ".editorconfig")); f != nil {
			files = append(files, f)
			if f.root {
				break
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	props := make(map[string]string)
	for i := len(files) - 1; i >= 0; i-- {
		f := files[i]
		rel, err := filepath.Rel(f.dir, abs)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		for _, sec := range f.sections {
			if sec.matches(rel) {
				for k, v := range sec.props {
					props[k] = v
				}
			}
		}
	}
	return fromProps(props)
}

func readEditorConfig(path string) *ecFile {
	fh, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer fh.Close()

	f := &ecFile{dir: filepath.Dir(path)}
	var cur *ecSection
	sc := bufio.NewScanner(fh)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' || line[0] == ';' {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			f.sections = append(f.sections, ecSection{
				patterns: expandBraces(line[1 : len(line)-1]),
				props:    make(map[string]string),
			})
			cur = &f.sections[len(f.sections)-1]
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.ToLower(strings.TrimSpace(value))
		if cur == nil {
			if key == "root" {
				f.root = value == "true"
			}
			continue
		}
		cur.props[key] = value
	}
	return f
}

// matches applies editorconfig's rule that a pattern without a slash
// matches the base name at any depth.
func (s ecSection) matches(rel string) bool {
	for _, p := range s.patterns {
		target := rel
		if !strings.Contains(p, "/") {
			target = rel[strings.LastIndexByte(rel, '/')+1:]
		} else {
			p = strings.TrimPrefix(p, "/")
		}
		if strings.Contains(p, "**") {
			if globStar(p, target) {
				return true
			}
			continue
		}
		if ok, _ := filepath.Match(p, target); ok {
			return true
		}
	}
	return false
}

// globStar matches patterns using "**" for any run of path segments.
func globStar(pattern, name string) bool {
	head, tail, _ := strings.Cut(pattern, "**")
	if !strings.HasPrefix(name, head) {
		return false
	}
	rest := name[len(head):]
	for i := 0; i <= len(rest); i++ {
		if ok, _ := filepath.Match(tail, rest[i:]); ok {
			return true
		}
		if strings.Contains(tail, "**") && globStar(tail, rest[i:]) {
			return true
		}
	}
	return false
}

// expandBraces turns "*.{c,h}" into ["*.c", "*.h"], recursively.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	depth, end := 0, -1
	var cuts []int
	for i := open; i < len(pattern) && end < 0; i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			if depth--; depth == 0 {
				end = i
			}
		case ',':
			if depth == 1 {
				cuts = append(cuts, i)
			}
		}
	}
	if end < 0 {
		return []string{pattern}
	}

	var out []string
	start := open + 1
	for _, cut := range append(cuts, end) {
		alt := pattern[:open] + pattern[start:cut] + pattern[end+1:]
		out = append(out, expandBraces(alt)...)
		start = cut + 1
	}
	return out
}

func fromProps(props map[string]string) *EditorConfig {
	ec := &EditorConfig{}
	set := false
	if v := props["indent_style"]; v == "tab" || v == "space" {
		ec.IndentStyle = v
		set = true
	}
	if n, err := strconv.Atoi(props["indent_size"]); err == nil && n > 0 {
		ec.IndentSize = n
		set = true
	}
	if n, err := strconv.Atoi(props["tab_width"]); err == nil && n > 0 {
		ec.TabWidth = n
		set = true
	}
	if !set {
		return nil
	}
	return ec
}

// Apply overrides indentation in opts and reports whether anything changed
// the indent decision.
func (ec *EditorConfig) Apply(opts *session.Options) bool {
	changed := false
	switch ec.IndentStyle {
	case "tab":
		opts.UseTabs = true
		changed = true
	case "space":
		opts.UseTabs = false
		changed = true
	}
	switch {
	case ec.IndentSize > 0:
		opts.IndentWidth = ec.IndentSize
		changed = true
	case ec.TabWidth > 0:
		opts.IndentWidth = ec.TabWidth
		changed = true
	}
	return changed
}
