package buffer

import (
	"bytes"
	"sort"
)

// LineIndex caches the offset at which each line starts. It is only ever
// derived from a GapBuffer; reads never rebuild it, so callers rebuild after
// marking it dirty.
type LineIndex struct {
	offsets []int
	dirty   bool
}

func NewLineIndex() *LineIndex {
	return &LineIndex{offsets: []int{0}}
}

func (li *LineIndex) MarkDirty() { li.dirty = true }
func (li *LineIndex) Dirty() bool { return li.dirty }

// Rebuild rescans b for newline bytes and clears the dirty flag.
func (li *LineIndex) Rebuild(b *GapBuffer) {
	offsets := li.offsets[:0]
	offsets = append(offsets, 0)
	before, after := b.Segments()
	base := 0
	for _, seg := range [][]byte{before, after} {
		rest := seg
		pos := 0
		for {
			i := bytes.IndexByte(rest, '\n')
			if i < 0 {
				break
			}
			pos += i + 1
			offsets = append(offsets, base+pos)
			rest = rest[i+1:]
		}
		base += len(seg)
	}
	li.offsets = offsets
	li.dirty = false
}

func (li *LineIndex) LineCount() int {
	return len(li.offsets)
}

// LineStart returns the offset of line k. Lines past the end report 0.
func (li *LineIndex) LineStart(k int) int {
	if k < 0 || k >= len(li.offsets) {
		return 0
	}
	return li.offsets[k]
}

// LineEnd returns the offset of line k's terminator, or the buffer length for
// the last line.
func (li *LineIndex) LineEnd(k int, b *GapBuffer) int {
	if k < 0 || k >= len(li.offsets) {
		return 0
	}
	if k+1 < len(li.offsets) {
		return li.offsets[k+1] - 1
	}
	return b.Len()
}

// LineOf returns the line containing offset.
func (li *LineIndex) LineOf(offset int) int {
	if offset <= 0 {
		return 0
	}
	// First line whose start is past offset, minus one.
	k := sort.Search(len(li.offsets), func(i int) bool { return li.offsets[i] > offset })
	return k - 1
}
