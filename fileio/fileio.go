// Package fileio loads files for editing and securely removes them.
package fileio

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// MaxFileSize is the largest file Read will load.
const MaxFileSize = 100 * 1024 * 1024

// Read resolves path and hands its content to consume. The slice passed to
// consume may be a read-only memory mapping and is only valid during the
// call. A missing file yields empty content and no error.
func Read(path string, consume func([]byte)) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	f, err := os.Open(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			consume(nil)
			return abs, nil
		}
		return abs, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return abs, err
	}
	if info.IsDir() {
		return abs, fmt.Errorf("%s is a directory", abs)
	}
	if info.Size() > MaxFileSize {
		return abs, fmt.Errorf("file too large (%d MB), max supported is %d MB", info.Size()/(1024*1024), MaxFileSize/(1024*1024))
	}
	if info.Size() == 0 {
		consume(nil)
		return abs, nil
	}
	if err := readMapped(f, int(info.Size()), consume); err != nil {
		return abs, fmt.Errorf("read %s: %w", abs, err)
	}
	return abs, nil
}

// Wipe overwrites path with random bytes and then zeros, syncing after each
// pass, and removes it.
func Wipe(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	size := info.Size()

	chunk := make([]byte, 64*1024)
	for pass := 0; pass < 2; pass++ {
		if _, err := f.Seek(0, 0); err != nil {
			f.Close()
			return err
		}
		for left := size; left > 0; {
			n := int64(len(chunk))
			if left < n {
				n = left
			}
			buf := chunk[:n]
			if pass == 0 {
				if _, err := rand.Read(buf); err != nil {
					f.Close()
					return fmt.Errorf("wipe %s: %w", path, err)
				}
			} else {
				clear(buf)
			}
			if _, err := f.Write(buf); err != nil {
				f.Close()
				return fmt.Errorf("wipe %s: %w", path, err)
			}
			left -= n
		}
		if err := f.Sync(); err != nil {
			f.Close()
			return fmt.Errorf("wipe %s: %w", path, err)
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}
