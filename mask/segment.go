package mask

import "strings"

// clamp bounds i to [0, n].
func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// InsertSimulated returns value with insert placed at cursor, replacing the
// range [cursor, selectionEnd) when selectionEnd > cursor. The original
// string is left untouched; offsets outside the string are clamped.
func InsertSimulated(value, insert string, cursor, selectionEnd int) string {
	cursor = clamp(cursor, len(value))
	end := clamp(selectionEnd, len(value))
	if end < cursor {
		end = cursor
	}
	return value[:cursor] + insert + value[end:]
}

// SegmentBounds locates the segment around index for the given delimiter.
// start is one past the nearest delimiter before index (0 if none) and end is
// the nearest delimiter at or after index (len(value) if none), so that
// 0 <= start <= index <= end <= len(value).
func SegmentBounds(value string, index int, delim byte) (start, end int) {
	index = clamp(index, len(value))
	start = strings.LastIndexByte(value[:index], delim) + 1
	end = len(value)
	if i := strings.IndexByte(value[index:], delim); i >= 0 {
		end = index + i
	}
	return start, end
}

// SegmentTextAt returns the text of the segment containing index.
func SegmentTextAt(value string, index int, delim byte) string {
	start, end := SegmentBounds(value, index, delim)
	return value[start:end]
}

// CountDelimiter reports how many times delim occurs in value.
func CountDelimiter(value string, delim byte) int {
	return strings.Count(value, string(delim))
}

// keep returns s with every rune rejected by ok removed.
func keep(s string, ok func(rune) bool) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ok(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// neighbours reports whether the bytes immediately left of cursor and at
// selectionEnd (the first byte kept to the right) equal delim.
func neighbours(value string, cursor, selectionEnd int, delim byte) (left, right bool) {
	cursor = clamp(cursor, len(value))
	end := clamp(selectionEnd, len(value))
	if end < cursor {
		end = cursor
	}
	left = cursor > 0 && value[cursor-1] == delim
	right = end < len(value) && value[end] == delim
	return left, right
}
