package editor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gapedit/clipboardx"
	"gapedit/config"
	"gapedit/fileio"
	"gapedit/run"
	"gapedit/save"
	"gapedit/session"
	"gapedit/ui"
	"gapedit/watch"

	"github.com/gdamore/tcell/v2"
)

// MaxPanes is the most side-by-side panes the editor shows.
const MaxPanes = 4

const messageTimeout = 5 * time.Second

type Editor struct {
	screen tcell.Screen
	cfg    *config.Config
	log    *slog.Logger

	panes  []*Pane
	active int

	titleBar  *ui.TitleBar
	statusBar *ui.StatusBar
	prompt    *ui.Prompt
	output    *ui.OutputPanel

	saver   *save.Worker
	watcher *watch.Watcher
	runner  *run.Runner
	clip    *clipboardx.System

	saving      []pendingSave
	runAfterAs  bool // run once the pending Save As completes
	running     bool
	stopBackups chan struct{}
	workDir     string

	// Bracketed paste accumulates keys between the start and end markers.
	pasting bool
	pasted  strings.Builder

	mouseDown bool

	quit        bool
	quitPending bool // true after first Ctrl+Q with unsaved changes
	wipePending bool // true after first Ctrl+W

	statusMessageTime time.Time
}

type pendingSave struct {
	pane     *Pane
	path     string
	revision uint64
	thenRun  bool
}

type saveDoneEvent struct {
	tcell.EventTime
	result save.Result
}

type watchEvent struct {
	tcell.EventTime
	event watch.Event
}

type runDoneEvent struct {
	tcell.EventTime
	path   string
	result run.Result
}

type backupTickEvent struct {
	tcell.EventTime
}

func New(cfg *config.Config, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	wd, _ := os.Getwd()
	theme := cfg.GetTheme()
	e := &Editor{
		cfg:       cfg,
		log:       log,
		titleBar:  ui.NewTitleBar(),
		statusBar: ui.NewStatusBar(),
		output:    ui.NewOutputPanel(),
		runner:    run.NewRunner(log, cfg.RunCommands),
		clip:      clipboardx.NewSystem(),
		workDir:   wd,
	}
	e.titleBar.Theme = theme
	e.statusBar.Theme = theme
	e.output.Theme = theme
	e.statusBar.LineNumbers = cfg.ShowLineNumbers
	return e
}

func (e *Editor) Run(files []string) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	screen.EnablePaste()
	screen.Clear()

	e.start(screen)

	if len(files) > 0 {
		for i, f := range files {
			e.openFile(f, i > 0)
		}
	} else if !e.RestoreWorkspace() {
		e.openEmpty()
	}

	for !e.quit {
		e.clearExpiredMessages()
		e.render()
		ev := screen.PollEvent()
		if ev == nil {
			break
		}
		e.handleEvent(ev)
	}

	e.shutdown()
	screen.Clear()
	screen.Fini()
	return nil
}

// start attaches the screen and the background collaborators that report
// back through screen events.
func (e *Editor) start(screen tcell.Screen) {
	e.screen = screen
	serialize := e.cfg.SerializeSaves
	e.saver = save.NewWorker(e.log, serialize, func(res save.Result) {
		e.post(&saveDoneEvent{result: res})
	})

	w, err := watch.New(e.log, func(ev watch.Event) {
		e.post(&watchEvent{event: ev})
	})
	if err != nil {
		// Continue without watching.
		e.log.Warn("file watching unavailable", "err", err)
	} else {
		e.watcher = w
	}

	e.stopBackups = make(chan struct{})
	go e.backupTimer(e.cfg.BackupInterval(), e.stopBackups)
}

func (e *Editor) shutdown() {
	e.SaveWorkspace()
	if e.stopBackups != nil {
		close(e.stopBackups)
		e.stopBackups = nil
	}
	if e.saver != nil {
		e.saver.Wait()
	}
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	e.cleanAllBackups()
}

func (e *Editor) post(ev tcell.Event) {
	if t, ok := ev.(interface{ SetEventNow() }); ok {
		t.SetEventNow()
	}
	if e.screen == nil {
		return
	}
	if err := e.screen.PostEvent(ev); err != nil {
		e.log.Warn("event dropped", "event", fmt.Sprintf("%T", ev), "err", err)
	}
}

func (e *Editor) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		e.screen.Sync()
	case *tcell.EventPaste:
		e.handlePaste(ev)
	case *tcell.EventKey:
		if e.pasting {
			e.collectPaste(ev)
			return
		}
		e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *saveDoneEvent:
		e.handleSaveDone(ev.result)
	case *watchEvent:
		e.handleWatchEvent(ev.event)
	case *runDoneEvent:
		e.handleRunDone(ev.path, ev.result)
	case *backupTickEvent:
		e.saveBackups()
	}
}

func (e *Editor) newSession(path string) *session.Session {
	sess := session.New(e.cfg.OptionsFor(path))
	sess.SetClipboard(e.clip)
	return sess
}

// loadSession reads path from disk into a fresh session.
func (e *Editor) loadSession(path string) (*session.Session, error) {
	sess := e.newSession(path)
	if _, err := fileio.Read(path, func(data []byte) {
		sess.Load(path, data)
	}); err != nil {
		return nil, err
	}
	return sess, nil
}

// openFile loads path into the active pane, or into a new pane to its right
// when split is set.
func (e *Editor) openFile(path string, split bool) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	cur := e.activePane()
	if cur != nil {
		if split && len(e.panes) >= MaxPanes {
			e.setTemporaryError(fmt.Sprintf("At most %d panes", MaxPanes))
			return false
		}
		if !split && cur.sess.Modified() {
			e.setTemporaryError("Unsaved changes in " + cur.title() + ", save first")
			return false
		}
	}

	sess, err := e.loadSession(abs)
	if err != nil {
		e.setTemporaryError("Error: " + err.Error())
		e.log.Error("open failed", "path", abs, "err", err)
		return false
	}
	p := newPane(sess, e.cfg.ShowLineNumbers)
	switch {
	case cur == nil:
		e.panes = append(e.panes, p)
		e.active = len(e.panes) - 1
	case split:
		e.active++
		e.panes = slices.Insert(e.panes, e.active, p)
	default:
		cur.detach(e.watcher)
		e.panes[e.active] = p
	}
	p.attach(e.watcher, e.log)

	if e.recoverBackup(p) {
		e.setTemporaryMessage("Recovered unsaved changes for " + filepath.Base(abs))
	} else {
		e.setTemporaryMessage("Opened " + filepath.Base(abs))
	}
	e.log.Info("opened", "path", abs, "bytes", sess.Len(), "language", sess.Language().String())
	return true
}

func (e *Editor) openEmpty() {
	p := newPane(e.newSession(""), e.cfg.ShowLineNumbers)
	e.panes = append(e.panes, p)
	e.active = len(e.panes) - 1
}

func (e *Editor) activePane() *Pane {
	if e.active < 0 || e.active >= len(e.panes) {
		return nil
	}
	return e.panes[e.active]
}

func (e *Editor) activeSession() *session.Session {
	if p := e.activePane(); p != nil {
		return p.sess
	}
	return nil
}

// save hands a snapshot of the active pane to the save worker. An empty
// path keeps the session's file name.
func (e *Editor) save(path string, thenRun bool) {
	p := e.activePane()
	if p == nil {
		return
	}
	old := p.sess.Path()
	req, err := p.sess.SaveSnapshot(path)
	if errors.Is(err, session.ErrNoPath) {
		e.runAfterAs = thenRun
		e.openPrompt(ui.PromptSaveAs, "")
		return
	}
	if err != nil {
		e.setTemporaryError("Error: " + err.Error())
		return
	}
	if req.Path != old {
		p.detachPath(e.watcher, old)
		p.attach(e.watcher, e.log)
	}
	e.saving = append(e.saving, pendingSave{pane: p, path: req.Path, revision: req.Revision, thenRun: thenRun})
	e.saver.Submit(save.Request{Path: req.Path, Data: req.Data, Revision: req.Revision})
	e.setStatusMessage("Saving " + filepath.Base(req.Path) + "...")
}

func (e *Editor) handleSaveDone(res save.Result) {
	var pending pendingSave
	found := false
	for i, s := range e.saving {
		if s.path == res.Path && s.revision == res.Revision {
			pending = s
			found = true
			e.saving = append(e.saving[:i], e.saving[i+1:]...)
			break
		}
	}
	if res.Err != nil {
		e.setTemporaryError("Error: " + res.Err.Error())
		return
	}
	if found && e.hasPane(pending.pane) {
		pending.pane.sess.MarkSaved(res.Revision)
		pending.pane.external = false
	}
	e.cleanBackup(res.Path)
	e.setTemporaryMessage(fmt.Sprintf("Saved %s (%d bytes)", filepath.Base(res.Path), res.Bytes))
	if found && pending.thenRun && e.hasPane(pending.pane) {
		e.runPane(pending.pane)
	}
}

func (e *Editor) hasPane(p *Pane) bool {
	for _, q := range e.panes {
		if q == p {
			return true
		}
	}
	return false
}

// saveAndRun saves a modified pane first; the run starts when the save
// reports back.
func (e *Editor) saveAndRun() {
	p := e.activePane()
	if p == nil {
		return
	}
	if e.running {
		e.setTemporaryError("A program is already running")
		return
	}
	if p.sess.Path() == "" || p.sess.Modified() {
		e.save("", true)
		return
	}
	e.runPane(p)
}

func (e *Editor) runPane(p *Pane) {
	if e.running {
		return
	}
	e.running = true
	path := p.sess.Path()
	lang := p.sess.Language()
	e.setStatusMessage("Running " + filepath.Base(path) + "...")
	go func() {
		res := e.runner.Run(context.Background(), lang, path)
		e.post(&runDoneEvent{path: path, result: res})
	}()
}

func (e *Editor) handleRunDone(path string, res run.Result) {
	e.running = false
	title := "Output: " + filepath.Base(path)
	if res.Command != "" {
		title += fmt.Sprintf("  (exit %d, %s)", res.ExitCode, res.Elapsed.Round(time.Millisecond))
	}
	e.output.SetText(title, res.Output)
	switch {
	case errors.Is(res.Err, run.ErrNoCommand):
		e.setTemporaryError(res.Output)
	case res.Err != nil:
		e.setTemporaryError("Error: " + res.Err.Error())
	default:
		e.setTemporaryMessage("Finished " + filepath.Base(path))
	}
}

// wipe securely deletes the active file and empties its pane.
func (e *Editor) wipe() {
	p := e.activePane()
	if p == nil {
		return
	}
	path := p.sess.Path()
	if path == "" {
		e.setTemporaryError("No file to wipe")
		return
	}
	if err := fileio.Wipe(path); err != nil {
		e.setTemporaryError("Error: " + err.Error())
		e.log.Error("wipe failed", "path", path, "err", err)
		return
	}
	e.cleanBackup(path)
	for _, q := range e.panes {
		if q.sess.Path() == path {
			q.sess.Reload(nil)
			q.external = false
		}
	}
	e.log.Info("wiped", "path", path)
	e.setTemporaryMessage("Wiped " + filepath.Base(path))
}

func (e *Editor) handleWatchEvent(ev watch.Event) {
	for _, p := range e.panes {
		if p.sess.Path() != ev.Path {
			continue
		}
		name := filepath.Base(ev.Path)
		if _, err := os.Stat(ev.Path); ev.Removed() && err != nil {
			p.external = true
			e.setTemporaryError("Warning: " + name + " was deleted externally")
			continue
		}
		var disk []byte
		if _, err := fileio.Read(ev.Path, func(data []byte) {
			disk = bytes.Clone(data)
		}); err != nil {
			continue
		}
		if bytes.Equal(disk, p.sess.Content()) {
			// Our own save, or an identical write.
			continue
		}
		if p.sess.Modified() {
			p.external = true
			e.setTemporaryError("Warning: " + name + " was modified externally (unsaved changes)")
			continue
		}
		p.sess.Reload(disk)
		p.external = false
		e.setTemporaryMessage(name + " (reloaded)")
		e.log.Info("reloaded", "path", ev.Path)
	}
}

func (e *Editor) anyModified() bool {
	for _, p := range e.panes {
		if p.sess.Modified() {
			return true
		}
	}
	return false
}

// setStatusMessage sets a status message that stays until replaced.
func (e *Editor) setStatusMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Time{}
}

func (e *Editor) setTemporaryMessage(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = false
	e.statusMessageTime = time.Now()
}

func (e *Editor) setTemporaryError(msg string) {
	e.statusBar.Message = msg
	e.statusBar.IsError = true
	e.statusMessageTime = time.Now()
}

func (e *Editor) clearExpiredMessages() {
	if !e.statusMessageTime.IsZero() && time.Since(e.statusMessageTime) > messageTimeout {
		e.statusBar.Message = ""
		e.statusBar.IsError = false
		e.statusMessageTime = time.Time{}
	}
}
