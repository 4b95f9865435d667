package mask

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	ipv4Segments  = 4
	ipv4SegDigits = 3
	ipv4MaxOctet  = 255
)

var ipv4Pattern = regexp.MustCompile(`^(?:(?:25[0-5]|2[0-4]\d|[01]?\d\d?)\.){3}(?:25[0-5]|2[0-4]\d|[01]?\d\d?)$`)

// IPv4 masks dotted-quad addresses such as 192.168.0.1.
type IPv4 struct{}

func isIPv4Char(r rune) bool { return IsDigit(r) || r == '.' }

// octet returns the numeric value of a run of decimal digits, or -1 for the
// empty string.
func octet(s string) int {
	if s == "" {
		return -1
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}

// Format keeps digits and dots, caps the address at four octets of at most
// three digits, clamps octets above 255 and inserts the next dot once the
// last octet typed so far (other than the fourth) cannot grow any further.
func (IPv4) Format(raw string) string {
	parts := strings.Split(keep(raw, isIPv4Char), ".")
	if len(parts) > ipv4Segments {
		parts = parts[:ipv4Segments]
	}
	for i, p := range parts {
		if len(p) > ipv4SegDigits {
			p = p[:ipv4SegDigits]
		}
		if octet(p) > ipv4MaxOctet {
			p = strconv.Itoa(ipv4MaxOctet)
		}
		parts[i] = p
	}
	last := len(parts) - 1
	if last < ipv4Segments-1 {
		p := parts[last]
		if len(p) == ipv4SegDigits || (len(p) == ipv4SegDigits-1 && octet(p+"0") > ipv4MaxOctet) {
			parts = append(parts, "")
		}
	}
	return strings.Join(parts, ".")
}

// Validate reports whether value is exactly four dot separated octets in 0-255.
func (IPv4) Validate(value string) bool { return ipv4Pattern.MatchString(value) }

// IsValidChar accepts digits that keep the octet under the caret within three
// digits, free of a leading zero and at most 255, and dots that close a
// non-empty octet without creating an empty one or a fifth octet.
func (IPv4) IsValidChar(ch rune, value string, cursor, selectionEnd int) bool {
	if !isIPv4Char(ch) {
		return false
	}
	next := InsertSimulated(value, string(ch), cursor, selectionEnd)
	cursor = clamp(cursor, len(value))
	if ch == '.' {
		if CountDelimiter(next, '.') > ipv4Segments-1 {
			return false
		}
		left, right := neighbours(value, cursor, selectionEnd, '.')
		if cursor == 0 || left || right {
			return false
		}
		rest := InsertSimulated(value, "", cursor, selectionEnd)
		return SegmentTextAt(rest, cursor, '.') != ""
	}
	seg := SegmentTextAt(next, cursor+1, '.')
	if len(seg) > ipv4SegDigits {
		return false
	}
	if len(seg) > 1 && seg[0] == '0' {
		return false
	}
	return octet(seg) <= ipv4MaxOctet
}
