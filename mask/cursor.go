package mask

// NewCursor maps a caret offset in oldValue onto newValue, the result of
// reformatting oldValue. Formatting only drops characters or inserts
// delimiters, so the caret is clamped when the value shrinks and shifted
// right by the growth when delimiters were added.
func NewCursor(oldValue, newValue string, oldCursor int) int {
	switch {
	case len(newValue) < len(oldValue):
		return min(oldCursor, len(newValue))
	case len(newValue) > len(oldValue):
		return oldCursor + len(newValue) - len(oldValue)
	default:
		return oldCursor
	}
}
