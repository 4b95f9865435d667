package mask

// IsHexChar reports whether r is one of [0-9a-fA-F].
func IsHexChar(r rune) bool {
	return IsDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsDigit reports whether r is one of [0-9].
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

func countHex(s string) int {
	n := 0
	for _, r := range s {
		if IsHexChar(r) {
			n++
		}
	}
	return n
}
