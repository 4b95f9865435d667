// Package mask implements keystroke-level input masking for textual network
// addresses: IPv4 dotted-quad, IPv6 colon-hex and MAC colon-hex-pair. Each
// family exposes the same three operations (format, validate and character
// acceptance) through the Handler interface. Handlers hold no state and may
// be shared freely between goroutines and input fields.
package mask

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	ErrUnknownFamily    = errors.New("mask: unknown address family")
	ErrInvalidSelection = errors.New("mask: invalid selection")
)

// Handler is the capability bundle implemented by every address family.
type Handler interface {
	// Format cleans raw input into the family's masked form. It never fails
	// and Format(Format(x)) == Format(x).
	Format(raw string) string
	// Validate reports whether value is a complete, well-formed address.
	Validate(value string) bool
	// IsValidChar reports whether typing ch at cursor, replacing the range
	// up to selectionEnd, should be accepted.
	IsValidChar(ch rune, value string, cursor, selectionEnd int) bool
}

// Family identifies an address grammar.
type Family string

const (
	FamilyIPv4 Family = "ipv4"
	FamilyIPv6 Family = "ipv6"
	FamilyMAC  Family = "mac"
)

func (f Family) String() string { return string(f) }

var registry = map[Family]Handler{
	FamilyIPv4: IPv4{},
	FamilyIPv6: IPv6{},
	FamilyMAC:  MAC{},
}

// Families returns every supported family in a stable order.
func Families() []Family { return []Family{FamilyIPv4, FamilyIPv6, FamilyMAC} }

// ParseFamily converts a user supplied identifier such as "IPv4" into a Family.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
	}
	return f, nil
}

// Lookup returns the handler registered for f.
func Lookup(f Family) (Handler, error) {
	h, ok := registry[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, string(f))
	}
	return h, nil
}
