package clipboardx

import (
	"bytes"
	"testing"
)

func TestZeroValueKeepsTextInProcess(t *testing.T) {
	var s System
	if err := s.Write("hello"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := s.Read()
	if err != nil || got != "hello" {
		t.Fatalf("expected hello, got %q %v", got, err)
	}
}

func TestOSC52Encoding(t *testing.T) {
	var out bytes.Buffer
	if !writeOSC52(&out, "hi") {
		t.Fatalf("expected OSC 52 write to succeed")
	}
	if got := out.String(); got != "\x1b]52;c;aGk=\x07" {
		t.Fatalf("unexpected sequence %q", got)
	}
	if writeOSC52(&out, "") {
		t.Fatalf("empty text should not be sent")
	}
}
