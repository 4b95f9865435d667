package mask

import (
	"regexp"
	"strings"
)

const (
	macGroups    = 6
	macGroupLen  = 2
	macHexDigits = macGroups * macGroupLen
)

var macPattern = regexp.MustCompile(`^(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}$`)

// MAC masks EUI-48 hardware addresses written as six colon separated pairs.
type MAC struct{}

func isMACChar(r rune) bool { return IsHexChar(r) || r == ':' }

// Format keeps colon placement the user typed or pasted when every group is
// at most two digits long, and otherwise regroups the first twelve hex digits
// of raw into colon separated pairs.
func (MAC) Format(raw string) string {
	cleaned := keep(raw, isMACChar)
	if strings.Contains(cleaned, ":") {
		parts := strings.Split(cleaned, ":")
		if len(parts) > macGroups {
			parts = parts[:macGroups]
		}
		fits := true
		for _, p := range parts {
			if len(p) > macGroupLen {
				fits = false
				break
			}
		}
		if fits {
			return strings.Join(parts, ":")
		}
	}
	digits := keep(raw, IsHexChar)
	if len(digits) > macHexDigits {
		digits = digits[:macHexDigits]
	}
	pairs := make([]string, 0, macGroups)
	for i := 0; i < len(digits); i += macGroupLen {
		pairs = append(pairs, digits[i:min(i+macGroupLen, len(digits))])
	}
	return strings.Join(pairs, ":")
}

// Validate reports whether value is exactly six colon separated hex pairs.
func (MAC) Validate(value string) bool { return macPattern.MatchString(value) }

// IsValidChar accepts hex digits up to twelve in total and a colon only when
// it closes a complete pair, leaves room for another group and does not sit
// next to another colon.
func (MAC) IsValidChar(ch rune, value string, cursor, selectionEnd int) bool {
	if !isMACChar(ch) {
		return false
	}
	if ch != ':' {
		return countHex(InsertSimulated(value, string(ch), cursor, selectionEnd)) <= macHexDigits
	}
	cursor = clamp(cursor, len(value))
	rest := InsertSimulated(value, "", cursor, selectionEnd)
	if countHex(SegmentTextAt(rest, cursor, ':')) != macGroupLen {
		return false
	}
	if CountDelimiter(rest, ':') >= macGroups-1 {
		return false
	}
	if countHex(rest) >= macHexDigits {
		return false
	}
	left, right := neighbours(value, cursor, selectionEnd, ':')
	return !left && !right
}
