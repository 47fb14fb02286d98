package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gapedit/config"
)

// Workspace is the per-directory record of open panes.
type Workspace struct {
	WorkingDir  string      `json:"working_dir"`
	ActivePane  int         `json:"active_pane"`
	LineNumbers bool        `json:"line_numbers"`
	Files       []FileState `json:"files"`
}

type FileState struct {
	Path    string `json:"path"`
	Line    int    `json:"cursor_line"`
	Col     int    `json:"cursor_col"`
	ScrollY int    `json:"scroll_y"`
	ScrollX int    `json:"scroll_x"`
}

func workspaceDir() string {
	dir := config.DataDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "sessions")
}

func workspacePath(workDir string) string {
	hash := sha256.Sum256([]byte(workDir))
	return filepath.Join(workspaceDir(), fmt.Sprintf("%x.json", hash[:8]))
}

// SaveWorkspace records the file-backed panes for the working directory.
// With none open, any earlier record is removed so closed files do not
// come back.
func (e *Editor) SaveWorkspace() {
	wd := e.workDir
	if wd == "" {
		return
	}
	path := workspacePath(wd)

	ws := Workspace{WorkingDir: wd, ActivePane: e.active}
	for i, p := range e.panes {
		if p.sess.Path() == "" {
			if i < e.active {
				ws.ActivePane--
			}
			continue
		}
		pos := p.sess.Position()
		ws.Files = append(ws.Files, FileState{
			Path:    p.sess.Path(),
			Line:    pos.Line,
			Col:     pos.Col,
			ScrollY: p.sess.View().Top,
			ScrollX: p.scrollX,
		})
		if i == e.active {
			ws.LineNumbers = p.lineNumbers
		}
	}

	if len(ws.Files) == 0 {
		_ = os.Remove(path)
		return
	}
	ws.ActivePane = max(0, min(ws.ActivePane, len(ws.Files)-1))

	if err := os.MkdirAll(workspaceDir(), 0755); err != nil {
		e.log.Warn("workspace dir", "err", err)
		return
	}
	data, err := json.MarshalIndent(ws, "", "  ")
	if err != nil {
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		e.log.Warn("workspace save failed", "path", path, "err", err)
	}
}

// RestoreWorkspace reopens the panes recorded for the working directory.
// Files that no longer exist are skipped.
func (e *Editor) RestoreWorkspace() bool {
	if e.workDir == "" {
		return false
	}
	data, err := os.ReadFile(workspacePath(e.workDir))
	if err != nil {
		return false
	}
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		e.log.Warn("workspace unreadable", "err", err)
		return false
	}
	if ws.WorkingDir != e.workDir {
		return false
	}

	restored := 0
	for _, fs := range ws.Files {
		if restored >= MaxPanes {
			break
		}
		if _, err := os.Stat(fs.Path); err != nil {
			continue
		}
		if !e.openFile(fs.Path, restored > 0) {
			continue
		}
		p := e.activePane()
		p.sess.MoveTo(fs.Line, fs.Col)
		p.sess.SetView(fs.ScrollY, 0)
		p.scrollX = max(0, fs.ScrollX)
		p.lineNumbers = ws.LineNumbers
		restored++
	}
	if restored == 0 {
		return false
	}
	if ws.ActivePane >= 0 && ws.ActivePane < len(e.panes) {
		e.active = ws.ActivePane
	}
	return true
}
