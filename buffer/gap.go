package buffer

import "bytes"

const (
	DefaultCapacity = 4096
	growthPadding   = 8192 // extra room added each time the gap is exhausted
)

// GapBuffer stores text as a byte slice with a movable empty region. Bytes
// before the gap live in data[:gapStart], bytes after it in data[gapEnd:].
// Positions are logical byte offsets; callers never see the gap.
type GapBuffer struct {
	data     []byte
	gapStart int
	gapEnd   int
}

func NewGapBuffer(capacity int) *GapBuffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &GapBuffer{data: make([]byte, capacity), gapEnd: capacity}
}

// NewGapBufferFrom copies content into a fresh buffer with the gap at the end.
func NewGapBufferFrom(content []byte) *GapBuffer {
	g := NewGapBuffer(len(content) + DefaultCapacity)
	copy(g.data, content)
	g.gapStart = len(content)
	return g
}

func (g *GapBuffer) Len() int {
	return len(g.data) - (g.gapEnd - g.gapStart)
}

func (g *GapBuffer) gapLen() int {
	return g.gapEnd - g.gapStart
}

func (g *GapBuffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if n := g.Len(); pos > n {
		return n
	}
	return pos
}

// ByteAt returns the byte at logical index i, or 0 when i is out of range.
func (g *GapBuffer) ByteAt(i int) byte {
	if i < 0 || i >= g.Len() {
		return 0
	}
	if i < g.gapStart {
		return g.data[i]
	}
	return g.data[i+g.gapLen()]
}

func (g *GapBuffer) moveGap(pos int) {
	if pos == g.gapStart {
		return
	}
	if pos < g.gapStart {
		n := g.gapStart - pos
		copy(g.data[g.gapEnd-n:g.gapEnd], g.data[pos:g.gapStart])
		g.gapStart -= n
		g.gapEnd -= n
		return
	}
	n := pos - g.gapStart
	copy(g.data[g.gapStart:g.gapStart+n], g.data[g.gapEnd:g.gapEnd+n])
	g.gapStart += n
	g.gapEnd += n
}

func (g *GapBuffer) ensureGap(needed int) {
	if needed <= g.gapLen() {
		return
	}
	extra := needed + growthPadding
	grown := make([]byte, len(g.data)+extra)
	copy(grown, g.data[:g.gapStart])
	tail := len(g.data) - g.gapEnd
	newEnd := len(grown) - tail
	copy(grown[newEnd:], g.data[g.gapEnd:])
	g.data = grown
	g.gapEnd = newEnd
}

// Insert places p at pos. The position is clamped to [0, Len()].
func (g *GapBuffer) Insert(pos int, p []byte) {
	if len(p) == 0 {
		return
	}
	pos = g.clamp(pos)
	g.moveGap(pos)
	g.ensureGap(len(p))
	copy(g.data[g.gapStart:], p)
	g.gapStart += len(p)
}

func (g *GapBuffer) InsertString(pos int, s string) {
	g.Insert(pos, []byte(s))
}

func (g *GapBuffer) InsertByte(pos int, c byte) {
	g.Insert(pos, []byte{c})
}

// Delete removes up to count bytes starting at pos and reports how many were
// removed. count is clamped to the bytes remaining after pos.
func (g *GapBuffer) Delete(pos, count int) int {
	pos = g.clamp(pos)
	if rest := g.Len() - pos; count > rest {
		count = rest
	}
	if count <= 0 {
		return 0
	}
	g.moveGap(pos)
	g.gapEnd += count
	return count
}

// Bytes returns an owned copy of the logical content.
func (g *GapBuffer) Bytes() []byte {
	out := make([]byte, g.Len())
	n := copy(out, g.data[:g.gapStart])
	copy(out[n:], g.data[g.gapEnd:])
	return out
}

func (g *GapBuffer) String() string {
	return string(g.Bytes())
}

// Range copies n bytes starting at pos. Both ends are clamped.
func (g *GapBuffer) Range(pos, n int) []byte {
	pos = g.clamp(pos)
	end := g.clamp(pos + n)
	if n < 0 || end <= pos {
		return []byte{}
	}
	out := make([]byte, 0, end-pos)
	if pos < g.gapStart {
		out = append(out, g.data[pos:min(end, g.gapStart)]...)
	}
	if end > g.gapStart {
		from := max(pos, g.gapStart) + g.gapLen()
		out = append(out, g.data[from:end+g.gapLen()]...)
	}
	return out
}

// Segments exposes the two stored regions without copying. The slices alias
// internal storage and are only valid until the next mutation.
func (g *GapBuffer) Segments() (before, after []byte) {
	return g.data[:g.gapStart], g.data[g.gapEnd:]
}

// Clone returns a deep copy that shares no storage with g.
func (g *GapBuffer) Clone() *GapBuffer {
	data := make([]byte, len(g.data))
	copy(data[:g.gapStart], g.data[:g.gapStart])
	copy(data[g.gapEnd:], g.data[g.gapEnd:])
	return &GapBuffer{data: data, gapStart: g.gapStart, gapEnd: g.gapEnd}
}

// IndexByte returns the logical index of the first c at or after from, or -1.
func (g *GapBuffer) IndexByte(from int, c byte) int {
	from = g.clamp(from)
	before, after := g.Segments()
	if from < len(before) {
		if i := bytes.IndexByte(before[from:], c); i >= 0 {
			return from + i
		}
		from = len(before)
	}
	if i := bytes.IndexByte(after[from-len(before):], c); i >= 0 {
		return from + i
	}
	return -1
}
