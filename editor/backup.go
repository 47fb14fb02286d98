package editor

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gapedit/config"
	"gapedit/save"
)

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	WorkDir      string `json:"work_dir"`
	Timestamp    string `json:"timestamp"`
}

func backupDir() string {
	return filepath.Join(config.DataDir(), "backups")
}

func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	return filepath.Join(backupDir(), fmt.Sprintf("%x.bak", h[:8]))
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// backupTimer asks the event loop for a backup pass every interval until
// stop is closed. Sessions are only read on the loop's goroutine.
func (e *Editor) backupTimer(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.post(&backupTickEvent{})
		}
	}
}

// saveBackups writes the content of every modified file-backed pane.
func (e *Editor) saveBackups() {
	if err := os.MkdirAll(backupDir(), 0755); err != nil {
		e.log.Warn("backup dir", "err", err)
		return
	}
	done := make(map[string]bool)
	for _, p := range e.panes {
		path := p.sess.Path()
		if path == "" || !p.sess.Modified() || done[path] {
			continue
		}
		done[path] = true
		bpath := backupPathForFile(path)
		if err := save.WriteFile(bpath, p.sess.Content()); err != nil {
			e.log.Warn("backup failed", "path", path, "err", err)
			continue
		}
		meta := backupInfo{
			OriginalPath: path,
			WorkDir:      e.workDir,
			Timestamp:    time.Now().Format(time.RFC3339),
		}
		data, _ := json.Marshal(meta)
		if err := save.WriteFile(backupMetaPath(bpath), data); err != nil {
			e.log.Warn("backup meta failed", "path", path, "err", err)
		}
		e.log.Debug("backup written", "path", path, "backup", bpath)
	}
}

func (e *Editor) cleanBackup(path string) {
	if path == "" {
		return
	}
	bpath := backupPathForFile(path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

func (e *Editor) cleanAllBackups() {
	for _, p := range e.panes {
		e.cleanBackup(p.sess.Path())
	}
}

// recoverBackup replaces a freshly opened pane's content with a backup left
// by an earlier run, as one undoable edit. A backup equal to the file on
// disk is discarded.
func (e *Editor) recoverBackup(p *Pane) bool {
	path := p.sess.Path()
	if path == "" {
		return false
	}
	bpath := backupPathForFile(path)
	data, err := os.ReadFile(bpath)
	if err != nil {
		return false
	}
	if meta, err := os.ReadFile(backupMetaPath(bpath)); err == nil {
		var info backupInfo
		if json.Unmarshal(meta, &info) == nil && info.OriginalPath != path {
			// Hash collision with another file.
			return false
		}
	}
	if bytes.Equal(data, p.sess.Content()) {
		e.cleanBackup(path)
		return false
	}
	p.sess.SelectAll()
	p.sess.InsertText(string(data))
	p.sess.MoveToOffset(0)
	e.log.Info("backup recovered", "path", path, "backup", bpath)
	return true
}
