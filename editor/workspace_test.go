package editor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"gapedit/config"
)

func setupDirs(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	wd := t.TempDir()
	t.Chdir(wd)
	got, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	return got
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s failed: %v", path, err)
	}
}

func TestSaveWorkspaceRemovesStaleFileWhenNoFilePanes(t *testing.T) {
	wd := setupDirs(t)

	stalePath := workspacePath(wd)
	if err := os.MkdirAll(filepath.Dir(stalePath), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	writeFile(t, stalePath, `{"stale":true}`)

	e := New(config.Default(), nil)
	e.openEmpty()
	e.SaveWorkspace()

	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Fatalf("expected stale workspace file to be removed, stat err=%v", err)
	}
}

func TestSaveWorkspaceWritesOpenFiles(t *testing.T) {
	wd := setupDirs(t)
	a := filepath.Join(wd, "a.txt")
	writeFile(t, a, "one\ntwo\nthree\n")

	e := New(config.Default(), nil)
	if !e.openFile(a, false) {
		t.Fatalf("open failed: %s", e.statusBar.Message)
	}
	e.activeSession().MoveTo(2, 3)
	e.activePane().scrollX = 2
	e.SaveWorkspace()

	data, err := os.ReadFile(workspacePath(wd))
	if err != nil {
		t.Fatalf("expected workspace file, read failed: %v", err)
	}
	var got Workspace
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got.ActivePane != 0 || len(got.Files) != 1 || got.Files[0].Path != a {
		t.Fatalf("unexpected workspace data: %+v", got)
	}
	if got.Files[0].Line != 2 || got.Files[0].Col != 3 || got.Files[0].ScrollX != 2 {
		t.Fatalf("unexpected file state: %+v", got.Files[0])
	}
}

func TestRestoreWorkspaceReopensPanes(t *testing.T) {
	wd := setupDirs(t)
	a := filepath.Join(wd, "a.txt")
	b := filepath.Join(wd, "b.txt")
	writeFile(t, a, "alpha\nbeta\n")
	writeFile(t, b, "gamma\ndelta\nepsilon\n")

	e := New(config.Default(), nil)
	e.openFile(a, false)
	e.openFile(b, true)
	e.activeSession().MoveTo(1, 2)
	e.SaveWorkspace()

	// A deleted file is skipped on restore.
	missing := New(config.Default(), nil)
	writeFile(t, workspacePath(wd), mustJSON(t, Workspace{
		WorkingDir: wd,
		Files:      []FileState{{Path: filepath.Join(wd, "gone.txt")}},
	}))
	if missing.RestoreWorkspace() {
		t.Fatalf("expected restore to fail when no file exists")
	}

	e.SaveWorkspace()
	r := New(config.Default(), nil)
	if !r.RestoreWorkspace() {
		t.Fatalf("expected workspace to be restored")
	}
	if len(r.panes) != 2 {
		t.Fatalf("expected 2 panes, got %d", len(r.panes))
	}
	if r.active != 1 || r.activeSession().Path() != b {
		t.Fatalf("unexpected active pane %d (%s)", r.active, r.activeSession().Path())
	}
	if pos := r.activeSession().Position(); pos.Line != 1 || pos.Col != 2 {
		t.Fatalf("unexpected cursor %+v", pos)
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	return string(data)
}
