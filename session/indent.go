package session

import "bytes"

// DetectIndentation guesses the indentation style of content from the
// leading whitespace of its lines. ok is false when there is not enough
// evidence to prefer anything over the configured style.
func DetectIndentation(content []byte) (width int, useTabs bool, ok bool) {
	tabLines := 0
	spaceIndents := make(map[int]int) // indent size -> lines divisible by it

	for len(content) > 0 {
		line := content
		if i := bytes.IndexByte(content, '\n'); i >= 0 {
			line, content = content[:i], content[i+1:]
		} else {
			content = nil
		}
		if len(line) == 0 {
			continue
		}

		spaces, tabs := 0, 0
	scan:
		for _, c := range line {
			switch c {
			case '\t':
				tabs++
			case ' ':
				spaces++
			default:
				break scan
			}
		}
		if tabs > 0 {
			tabLines++
		}
		if spaces > 0 && tabs == 0 {
			for _, size := range []int{2, 4, 8} {
				if spaces%size == 0 {
					spaceIndents[size]++
				}
			}
		}
	}

	if tabLines > 10 {
		return 4, true, true
	}

	best, bestCount := 4, 0
	for _, size := range []int{8, 4, 2} {
		// A size must cover more than half of the 2-aligned lines, since
		// every 4-aligned line is also 2-aligned.
		if n := spaceIndents[size]; n > bestCount && n*2 > spaceIndents[2] {
			best, bestCount = size, n
		}
	}
	if bestCount > 5 {
		return best, false, true
	}
	return 4, false, false
}
