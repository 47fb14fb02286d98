// Package run builds and executes the file being edited and captures its
// combined output.
package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gapedit/highlight"

	"github.com/creack/pty"
)

// MaxOutput caps the captured output in bytes.
const MaxOutput = 64 * 1024

var ErrNoCommand = errors.New("no run command for this file type")

const (
	msgNoCommand = "(No run command for this file type)"
	msgFinished  = "(Execution finished)"
	msgExitCode  = "(Process exited with code %d)"
)

// Command templates expand {file}, {dir}, {name} and {bin}, each shell
// quoted except {name}.
var defaultCommands = map[highlight.Language]string{
	highlight.C:          "gcc {file} -o {bin} && {bin}",
	highlight.CPP:        "g++ {file} -o {bin} && {bin}",
	highlight.Python:     "python3 {file}",
	highlight.Shell:      "bash {file}",
	highlight.JavaScript: "node {file}",
	highlight.PHP:        "php -S localhost:8080 -t {dir} & sleep 0.3 && xdg-open 'http://localhost:8080/{name}'",
}

type Result struct {
	Command  string
	Output   string
	ExitCode int
	Elapsed  time.Duration
	Err      error
}

type Runner struct {
	// Overrides maps language names ("C", "Python", ...) to command templates.
	Overrides map[string]string
	Shell     string
	log       *slog.Logger
}

func NewRunner(log *slog.Logger, overrides map[string]string) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{Overrides: overrides, Shell: "sh", log: log}
}

// Command returns the shell command for path and the temporary binary it
// may produce.
func (r *Runner) Command(lang highlight.Language, path string) (string, string, error) {
	tmpl, ok := r.Overrides[lang.String()]
	if !ok || strings.TrimSpace(tmpl) == "" {
		tmpl, ok = defaultCommands[lang]
	}
	if !ok {
		return "", "", ErrNoCommand
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	bin := ""
	if strings.Contains(tmpl, "{bin}") {
		bin = filepath.Join(os.TempDir(), fmt.Sprintf("gapedit-run-%d", os.Getpid()))
	}
	cmd := strings.NewReplacer(
		"{file}", quote(abs),
		"{dir}", quote(filepath.Dir(abs)),
		"{name}", filepath.Base(abs),
		"{bin}", quote(bin),
	).Replace(tmpl)
	return cmd, bin, nil
}

// Run executes the command for path. Output keeps at most MaxOutput bytes
// with line endings normalized to "\n"; an empty output is replaced by a
// status line.
func (r *Runner) Run(ctx context.Context, lang highlight.Language, path string) Result {
	command, bin, err := r.Command(lang, path)
	if err != nil {
		return Result{Output: msgNoCommand, ExitCode: -1, Err: err}
	}
	if bin != "" {
		defer os.Remove(bin)
	}

	start := time.Now()
	res := Result{Command: command}
	out, err := r.capture(ctx, "("+command+") 2>&1")
	res.Elapsed = time.Since(start)
	res.Output = string(out)

	var exit *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exit):
		res.ExitCode = exit.ExitCode()
	default:
		res.ExitCode = -1
		res.Err = err
	}
	if res.Output == "" {
		if res.ExitCode == 0 && res.Err == nil {
			res.Output = msgFinished
		} else {
			res.Output = fmt.Sprintf(msgExitCode, res.ExitCode)
		}
	}
	r.log.Info("run finished", "command", command, "exit", res.ExitCode, "elapsed", res.Elapsed, "bytes", len(out))
	return res
}

// capture runs the command on a pseudo terminal so tools keep line
// buffering, falling back to a pipe when no pty is available.
func (r *Runner) capture(ctx context.Context, command string) ([]byte, error) {
	out := &cappedWriter{max: MaxOutput}

	cmd := exec.CommandContext(ctx, r.Shell, "-c", command)
	cmd.Env = append(os.Environ(), "TERM=dumb")
	ptmx, err := pty.Start(cmd)
	if err != nil {
		r.log.Debug("pty unavailable, using pipe", "err", err)
		cmd = exec.CommandContext(ctx, r.Shell, "-c", command)
		cmd.Stdout = out
		cmd.Stderr = out
		err = cmd.Run()
		return out.bytes(), err
	}

	copied := make(chan struct{})
	go func() {
		// Reads end with EIO once the child side closes.
		io.Copy(out, ptmx)
		close(copied)
	}()
	err = cmd.Wait()
	select {
	case <-copied:
	case <-time.After(250 * time.Millisecond):
		// A background job still holds the terminal open.
	}
	ptmx.Close()
	return out.bytes(), err
}

type cappedWriter struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, c := range p {
		if len(w.buf) >= w.max {
			break
		}
		if c != '\r' {
			w.buf = append(w.buf, c)
		}
	}
	return len(p), nil
}

func (w *cappedWriter) bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.buf...)
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
