package config

import (
	"os"
	"path/filepath"
	"testing"

	"gapedit/highlight"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.IndentWidth != 4 || !cfg.AutoPair || cfg.UndoDepth != 512 || cfg.Theme != "abyss" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := Default()
	cfg.IndentWidth = 2
	cfg.UseTabs = true
	cfg.RunCommands = map[string]string{"Python": "pypy3 {file}"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.IndentWidth != 2 || !got.UseTabs || got.RunCommands["Python"] != "pypy3 {file}" {
		t.Fatalf("unexpected config %+v", got)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light","indent_width":0}`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Theme != "light" || cfg.IndentWidth != 4 || !cfg.AutoIndent {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.GetTheme().Name != "Light" {
		t.Fatalf("unexpected theme %s", cfg.GetTheme().Name)
	}
}

func TestInvalidJSONFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Theme = "nope"
	if cfg.GetTheme().Name != "Abyss" {
		t.Fatalf("expected abyss fallback, got %s", cfg.GetTheme().Name)
	}
}

func TestLanguageIndent(t *testing.T) {
	cfg := Default()
	if cfg.LanguageIndent(highlight.JSON) != 2 || cfg.LanguageIndent(highlight.C) != 4 {
		t.Fatalf("unexpected language indents")
	}
}

func TestOptionsForAppliesEditorConfig(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, ".editorconfig"), "root = true\n\n[*]\nindent_style = space\nindent_size = 8\n\n[*.{c,h}]\nindent_style = tab\n")
	writeFile(t, filepath.Join(sub, ".editorconfig"), "[*.c]\nindent_size = 2\n")

	cfg := Default()
	opts := cfg.OptionsFor(filepath.Join(sub, "main.c"))
	if !opts.UseTabs || opts.IndentWidth != 2 || opts.DetectIndent {
		t.Fatalf("unexpected options %+v", opts)
	}
	opts = cfg.OptionsFor(filepath.Join(sub, "notes.txt"))
	if opts.UseTabs || opts.IndentWidth != 8 {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestOptionsForWithoutEditorConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".editorconfig"), "root = true\n")
	opts := Default().OptionsFor(filepath.Join(dir, "app.js"))
	if opts.IndentWidth != 2 || !opts.DetectIndent {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestEditorConfigPatterns(t *testing.T) {
	sec := ecSection{patterns: expandBraces("src/**/*.{go,py}")}
	if !sec.matches("src/a/b/x.go") || !sec.matches("src/y/x.py") || sec.matches("lib/x.go") {
		t.Fatalf("unexpected glob results")
	}
	got := expandBraces("{a,{b,c}}.x")
	if len(got) != 3 || got[0] != "a.x" || got[1] != "b.x" || got[2] != "c.x" {
		t.Fatalf("unexpected expansion %v", got)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
