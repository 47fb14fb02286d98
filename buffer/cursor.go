package buffer

// Cursor is a display position: zero-based line and byte column.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

// Selection is the half-open byte range [Start, End).
type Selection struct {
	Start, End int
}

// NewSelection orders an anchor and a cursor offset into a range.
func NewSelection(anchor, cursor int) Selection {
	if anchor <= cursor {
		return Selection{Start: anchor, End: cursor}
	}
	return Selection{Start: cursor, End: anchor}
}

func (s Selection) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

func (s Selection) Empty() bool {
	return s.Start == s.End
}

func (s Selection) Len() int {
	return s.End - s.Start
}
