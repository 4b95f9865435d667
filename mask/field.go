package mask

import "fmt"

// Field is a headless text input bound to one Handler. It plays the part of
// the event layer: every keystroke is gated by IsValidChar, every change is
// reformatted and the caret is carried across the rewrite with NewCursor.
//
// A Field is not safe for concurrent use.
type Field struct {
	h      Handler
	value  string
	cursor int
	selEnd int
}

// NewField returns an empty field masked by h.
func NewField(h Handler) *Field { return &Field{h: h} }

// Value returns the current masked text.
func (f *Field) Value() string { return f.value }

// Cursor returns the caret offset (the selection start).
func (f *Field) Cursor() int { return f.cursor }

// Selection returns the selected range; start == end for a plain caret.
func (f *Field) Selection() (start, end int) { return f.cursor, f.selEnd }

// Valid reports whether the current value is a complete address.
func (f *Field) Valid() bool { return f.h.Validate(f.value) }

// Select sets the selection to [start, end).
func (f *Field) Select(start, end int) error {
	if start < 0 || start > end || end > len(f.value) {
		return fmt.Errorf("%w: [%d, %d) of %d", ErrInvalidSelection, start, end, len(f.value))
	}
	f.cursor, f.selEnd = start, end
	return nil
}

// SetCursor collapses the selection to a caret at pos.
func (f *Field) SetCursor(pos int) error { return f.Select(pos, pos) }

// SetValue replaces the whole text with the formatted raw value and parks
// the caret at the end.
func (f *Field) SetValue(raw string) {
	f.value = f.h.Format(raw)
	f.cursor, f.selEnd = len(f.value), len(f.value)
}

// Type offers a single keystroke and reports whether it was accepted.
func (f *Field) Type(ch rune) bool {
	if !f.h.IsValidChar(ch, f.value, f.cursor, f.selEnd) {
		return false
	}
	f.replace(string(ch))
	return true
}

// Paste inserts the formatted text over the selection.
func (f *Field) Paste(text string) {
	f.replace(f.h.Format(text))
}

// Backspace removes the selection, or the byte before the caret.
func (f *Field) Backspace() {
	if f.cursor == f.selEnd {
		if f.cursor == 0 {
			return
		}
		f.cursor--
	}
	f.replace("")
}

// Delete removes the selection, or the byte after the caret.
func (f *Field) Delete() {
	if f.cursor == f.selEnd {
		if f.selEnd == len(f.value) {
			return
		}
		f.selEnd++
	}
	f.replace("")
}

// replace writes s over the selection, then reformats and restores the caret.
func (f *Field) replace(s string) {
	raw := InsertSimulated(f.value, s, f.cursor, f.selEnd)
	formatted := f.h.Format(raw)
	pos := clamp(NewCursor(raw, formatted, f.cursor+len(s)), len(formatted))
	f.value = formatted
	f.cursor, f.selEnd = pos, pos
}
