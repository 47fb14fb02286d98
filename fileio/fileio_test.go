package fileio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestReadCopiesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.c")
	if err := os.WriteFile(path, []byte("int main;\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got []byte
	abs, err := Read(path, func(p []byte) { got = append([]byte(nil), p...) })
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if abs != path {
		t.Fatalf("expected %s, got %s", path, abs)
	}
	if string(got) != "int main;\n" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestReadMissingFileIsEmpty(t *testing.T) {
	called := false
	_, err := Read(filepath.Join(t.TempDir(), "nope.txt"), func(p []byte) {
		called = true
		if len(p) != 0 {
			t.Fatalf("expected empty content")
		}
	})
	if err != nil || !called {
		t.Fatalf("missing file should open empty, err %v called %v", err, called)
	}
}

func TestReadDirectoryFails(t *testing.T) {
	if _, err := Read(t.TempDir(), func([]byte) {}); err == nil {
		t.Fatalf("expected error for directory")
	}
}

func TestWipeRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")
	if err := os.WriteFile(path, []byte("top secret data"), 0600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := Wipe(path); err != nil {
		t.Fatalf("wipe: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected file removed, stat err %v", err)
	}
	if err := Wipe(path); err == nil {
		t.Fatalf("wiping a missing file should fail")
	}
}
