package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gapedit/config"
	"gapedit/editor"
)

func main() {
	debug := flag.Bool("debug", false, "log debug messages")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-debug] [dir] [file ...]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	files := flag.Args()
	// A directory as first argument becomes the working directory.
	if len(files) > 0 {
		if info, err := os.Stat(files[0]); err == nil && info.IsDir() {
			if err := os.Chdir(files[0]); err != nil {
				fmt.Fprintf(os.Stderr, "error: cannot change to directory %s: %v\n", files[0], err)
				os.Exit(1)
			}
			files = files[1:]
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
		cfg = config.Default()
	}

	log, closeLog := openLog(cfg.LogFile, *debug)
	defer closeLog()
	log.Info("starting", "files", len(files))

	e := editor.New(cfg, log)
	if err := e.Run(files); err != nil {
		log.Error("editor failed", "err", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}

// openLog returns a text logger writing to path. The terminal belongs to
// the editor, so logging is discarded when the file cannot be opened.
func openLog(path string, debug bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err == nil {
			if f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				w = f
				closeFn = func() { f.Close() }
			}
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn
}
