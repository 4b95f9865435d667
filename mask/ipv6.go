package mask

import (
	"regexp"
	"strings"
)

const (
	ipv6Hextets      = 8
	ipv6HextetDigits = 4
)

var colonRun = regexp.MustCompile(`:{3,}`)

// IPv6 masks colon-hex addresses in textual form, including a single "::"
// compression marker. Embedded IPv4 suffixes are not supported.
type IPv6 struct{}

func isIPv6Char(r rune) bool { return IsHexChar(r) || r == ':' }

// Format keeps hex digits and colons and collapses every run of three or
// more colons into the "::" marker.
func (IPv6) Format(raw string) string {
	return colonRun.ReplaceAllLiteralString(keep(raw, isIPv6Char), "::")
}

// hextets splits s on colons and reports the group count, or ok=false when a
// group is empty or not 1-4 hex digits. The empty string has no groups.
func hextets(s string) (n int, ok bool) {
	if s == "" {
		return 0, true
	}
	groups := strings.Split(s, ":")
	for _, g := range groups {
		if len(g) == 0 || len(g) > ipv6HextetDigits || countHex(g) != len(g) {
			return 0, false
		}
	}
	return len(groups), true
}

// Validate reports whether value is a full eight-hextet address or a
// compressed one whose explicit hextets total at most seven.
func (IPv6) Validate(value string) bool {
	if value == "" || strings.Contains(value, ":::") {
		return false
	}
	i := strings.Index(value, "::")
	if i < 0 {
		n, ok := hextets(value)
		return ok && n == ipv6Hextets
	}
	head, tail := value[:i], value[i+2:]
	if strings.Contains(tail, "::") {
		return false
	}
	nh, ok := hextets(head)
	if !ok {
		return false
	}
	nt, ok := hextets(tail)
	if !ok {
		return false
	}
	return nh+nt <= ipv6Hextets-1
}

// IsValidChar accepts hex digits while the hextet under the caret stays
// within four digits, and colons that neither form ":::" nor a second "::",
// keep an uncompressed address at seven colons or fewer and do not open an
// empty group unless they extend an adjacent colon into "::".
func (IPv6) IsValidChar(ch rune, value string, cursor, selectionEnd int) bool {
	if !isIPv6Char(ch) {
		return false
	}
	next := InsertSimulated(value, string(ch), cursor, selectionEnd)
	cursor = clamp(cursor, len(value))
	if ch == ':' {
		if strings.Contains(next, ":::") {
			return false
		}
		if strings.Count(next, "::") > 1 {
			return false
		}
		if !strings.Contains(next, "::") && CountDelimiter(next, ':') > ipv6Hextets-1 {
			return false
		}
		left, right := neighbours(value, cursor, selectionEnd, ':')
		if !left && !right {
			rest := InsertSimulated(value, "", cursor, selectionEnd)
			if SegmentTextAt(rest, cursor, ':') == "" {
				return false
			}
		}
		return true
	}
	return len(SegmentTextAt(next, cursor+1, ':')) <= ipv6HextetDigits
}
