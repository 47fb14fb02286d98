package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"gapedit/highlight"
	"gapedit/session"

	"github.com/gdamore/tcell/v2"
)

type Config struct {
	IndentWidth           int               `json:"indent_width"`
	UseTabs               bool              `json:"use_tabs"`
	DetectIndent          bool              `json:"detect_indent"`
	AutoPair              bool              `json:"auto_pair"`
	AutoIndent            bool              `json:"auto_indent"`
	Theme                 string            `json:"theme"`
	UndoDepth             int               `json:"undo_depth"`
	ScrollMargin          int               `json:"scroll_margin"`
	ShowLineNumbers       bool              `json:"show_line_numbers"`
	SerializeSaves        bool              `json:"serialize_saves"`
	BackupIntervalSeconds int               `json:"backup_interval_seconds"`
	LogFile               string            `json:"log_file"`
	RunCommands           map[string]string `json:"run_commands,omitempty"`
}

// LanguageIndent returns the conventional indent width for a language, or
// the configured width.
func (c *Config) LanguageIndent(lang highlight.Language) int {
	switch lang {
	case highlight.JavaScript, highlight.JSON, highlight.HTML, highlight.CSS:
		return 2
	case highlight.Assembly:
		return 8
	default:
		return c.IndentWidth
	}
}

// SessionOptions converts the editing settings for a session.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		IndentWidth:  c.IndentWidth,
		UseTabs:      c.UseTabs,
		AutoPair:     c.AutoPair,
		AutoIndent:   c.AutoIndent,
		DetectIndent: c.DetectIndent,
		UndoDepth:    c.UndoDepth,
		ScrollMargin: c.ScrollMargin,
	}
}

// OptionsFor layers language conventions and .editorconfig settings for
// path over SessionOptions. Content based detection stays enabled only
// when no .editorconfig decided the indentation.
func (c *Config) OptionsFor(path string) session.Options {
	opts := c.SessionOptions()
	if path == "" {
		return opts
	}
	opts.IndentWidth = c.LanguageIndent(highlight.DetectByExtension(path))
	if ec := FindEditorConfig(path); ec != nil && ec.Apply(&opts) {
		opts.DetectIndent = false
	}
	return opts
}

func (c *Config) BackupInterval() time.Duration {
	if c.BackupIntervalSeconds <= 0 {
		return 0
	}
	return time.Duration(c.BackupIntervalSeconds) * time.Second
}

type ColorScheme struct {
	Name             string
	Background       tcell.Color
	Foreground       tcell.Color
	Selection        tcell.Color
	LineNumber       tcell.Color
	LineNumberActive tcell.Color
	TitleBg          tcell.Color
	TitleFg          tcell.Color
	StatusBarBg      tcell.Color
	StatusBarFg      tcell.Color
	PromptBg         tcell.Color
	PromptFg         tcell.Color
	OutputBg         tcell.Color
	OutputFg         tcell.Color
	PaneBorder       tcell.Color
	Warning          tcell.Color
}

var Themes = map[string]*ColorScheme{
	"abyss": {
		Name:             "Abyss",
		Background:       tcell.NewRGBColor(0, 12, 24),
		Foreground:       tcell.NewRGBColor(102, 136, 204),
		Selection:        tcell.NewRGBColor(119, 0, 0),
		LineNumber:       tcell.NewRGBColor(64, 96, 144),
		LineNumberActive: tcell.NewRGBColor(153, 187, 255),
		TitleBg:          tcell.NewRGBColor(8, 40, 80),
		TitleFg:          tcell.NewRGBColor(221, 187, 136),
		StatusBarBg:      tcell.NewRGBColor(8, 40, 80),
		StatusBarFg:      tcell.NewRGBColor(153, 187, 255),
		PromptBg:         tcell.NewRGBColor(16, 64, 128),
		PromptFg:         tcell.ColorWhite,
		OutputBg:         tcell.NewRGBColor(0, 6, 16),
		OutputFg:         tcell.NewRGBColor(34, 170, 68),
		PaneBorder:       tcell.NewRGBColor(32, 64, 112),
		Warning:          tcell.NewRGBColor(255, 160, 64),
	},
	"dark": {
		Name:             "Dark",
		Background:       tcell.ColorBlack,
		Foreground:       tcell.ColorWhite,
		Selection:        tcell.ColorDarkBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorWhite,
		TitleBg:          tcell.ColorDarkBlue,
		TitleFg:          tcell.ColorWhite,
		StatusBarBg:      tcell.ColorDarkBlue,
		StatusBarFg:      tcell.ColorWhite,
		PromptBg:         tcell.ColorBlue,
		PromptFg:         tcell.ColorWhite,
		OutputBg:         tcell.ColorBlack,
		OutputFg:         tcell.ColorGreen,
		PaneBorder:       tcell.ColorGray,
		Warning:          tcell.ColorYellow,
	},
	"light": {
		Name:             "Light",
		Background:       tcell.ColorWhite,
		Foreground:       tcell.ColorBlack,
		Selection:        tcell.ColorLightBlue,
		LineNumber:       tcell.ColorGray,
		LineNumberActive: tcell.ColorBlack,
		TitleBg:          tcell.ColorLightBlue,
		TitleFg:          tcell.ColorBlack,
		StatusBarBg:      tcell.ColorLightBlue,
		StatusBarFg:      tcell.ColorBlack,
		PromptBg:         tcell.ColorLightGray,
		PromptFg:         tcell.ColorBlack,
		OutputBg:         tcell.ColorWhite,
		OutputFg:         tcell.ColorDarkGreen,
		PaneBorder:       tcell.ColorGray,
		Warning:          tcell.ColorRed,
	},
}

func Default() *Config {
	return &Config{
		IndentWidth:           4,
		DetectIndent:          true,
		AutoPair:              true,
		AutoIndent:            true,
		Theme:                 "abyss",
		UndoDepth:             512,
		ScrollMargin:          3,
		ShowLineNumbers:       true,
		SerializeSaves:        true,
		BackupIntervalSeconds: 30,
		LogFile:               DefaultLogPath(),
	}
}

func (c *Config) GetTheme() *ColorScheme {
	theme, ok := Themes[c.Theme]
	if !ok {
		return Themes["abyss"]
	}
	return theme
}

func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gapedit", "settings.json")
}

func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gapedit")
}

func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "gapedit", "gapedit.log")
}

func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a settings file over the defaults. A missing file yields
// the defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.IndentWidth <= 0 {
		cfg.IndentWidth = 4
	}
	return cfg, nil
}

func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
