package types

import "sort"

// LineIndex resolves byte offsets into (line, column) pairs in O(log N)
// time, via a sorted list of line-start byte offsets.
type LineIndex struct {
	starts []int // starts[0] == 0; starts[i] is the offset right after the i'th '\n'
	length int
}

// NewLineIndex builds a LineIndex over text. A file of length N produces
// at most N+1 entries.
func NewLineIndex(text []byte) *LineIndex {
	starts := make([]int, 1, 64)
	starts[0] = 0
	for i, b := range text {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts, length: len(text)}
}

// Resolve returns the 1-based (line, column) of the byte at offset.
// Column counts bytes from the start of the line, not grapheme clusters.
func (li *LineIndex) Resolve(offset int) (line, column int) {
	// sort.Search finds the first index whose start is > offset; the
	// line containing offset is the one before it.
	idx := sort.Search(len(li.starts), func(i int) bool { return li.starts[i] > offset }) - 1
	if idx < 0 {
		idx = 0
	}
	line = idx + 1
	column = offset-li.starts[idx] + 1
	return line, column
}

// Line returns the text of the given 1-based line number, excluding its
// trailing newline.
func (li *LineIndex) Line(text []byte, line int) string {
	if line < 1 || line > len(li.starts) {
		return ""
	}
	start := li.starts[line-1]
	end := li.length
	if line < len(li.starts) {
		end = li.starts[line] - 1
	}
	if start > len(text) {
		return ""
	}
	if end > len(text) {
		end = len(text)
	}
	if end < start {
		end = start
	}
	return string(text[start:end])
}
