package mask

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeAll(f *Field, keys string) {
	for _, r := range keys {
		f.Type(r)
	}
}

func TestFieldTypeIPv4(t *testing.T) {
	f := NewField(IPv4{})
	typeAll(f, "19216811.25")
	assert.Equal(t, "192.168.11.25", f.Value())
	assert.Equal(t, len(f.Value()), f.Cursor())
	assert.True(t, f.Valid())

	assert.False(t, f.Type('.'), "fourth dot must be rejected")
	assert.False(t, f.Type('6'), "octet would exceed 255")
}

func TestFieldAutoDotMovesCursor(t *testing.T) {
	f := NewField(IPv4{})
	typeAll(f, "192")
	assert.Equal(t, "192.", f.Value())
	assert.Equal(t, 4, f.Cursor())
}

func TestFieldTypeIPv6(t *testing.T) {
	f := NewField(IPv6{})
	typeAll(f, "2001:db8::1")
	assert.Equal(t, "2001:db8::1", f.Value())
	assert.True(t, f.Valid())
	assert.True(t, f.Type(':'))
	assert.False(t, f.Type(':'), "second compression marker")
}

func TestFieldTypeMAC(t *testing.T) {
	f := NewField(MAC{})
	typeAll(f, "001A2B3C4D5E")
	assert.Equal(t, "00:1A:2B:3C:4D:5E", f.Value())
	assert.Equal(t, 17, f.Cursor())
	assert.True(t, f.Valid())
	assert.False(t, f.Type('F'))

	g := NewField(MAC{})
	typeAll(g, "00:1A")
	assert.Equal(t, "00:1A", g.Value())
}

func TestFieldPaste(t *testing.T) {
	f := NewField(MAC{})
	f.Paste("00-1a-2b-3c-4d-5e")
	assert.Equal(t, "00:1a:2b:3c:4d:5e", f.Value())
	assert.True(t, f.Valid())

	v6 := NewField(IPv6{})
	v6.Paste("fe80:::::1")
	assert.Equal(t, "fe80::1", v6.Value())
	assert.Equal(t, 7, v6.Cursor())
}

func TestFieldSelectionReplace(t *testing.T) {
	f := NewField(IPv4{})
	f.SetValue("10.0.0.1")
	require.NoError(t, f.Select(0, 2))
	s, e := f.Selection()
	assert.Equal(t, 0, s)
	assert.Equal(t, 2, e)

	assert.True(t, f.Type('7'))
	assert.Equal(t, "7.0.0.1", f.Value())
	assert.Equal(t, 1, f.Cursor())

	assert.ErrorIs(t, f.Select(3, 2), ErrInvalidSelection)
	assert.ErrorIs(t, f.SetCursor(99), ErrInvalidSelection)
}

func TestFieldBackspaceDelete(t *testing.T) {
	f := NewField(IPv4{})
	f.SetValue("192.168.1.1")
	f.Backspace()
	assert.Equal(t, "192.168.1.", f.Value())
	assert.Equal(t, 10, f.Cursor())

	require.NoError(t, f.SetCursor(0))
	f.Backspace()
	assert.Equal(t, "192.168.1.", f.Value())
	f.Delete()
	assert.Equal(t, "92.168.1.", f.Value())
	assert.Equal(t, 0, f.Cursor())

	require.NoError(t, f.SetCursor(len(f.Value())))
	f.Delete()
	assert.Equal(t, "92.168.1.", f.Value())
}

func TestFieldSetValue(t *testing.T) {
	f := NewField(IPv4{})
	f.SetValue("300.1")
	assert.Equal(t, "255.1", f.Value())
	assert.Equal(t, 5, f.Cursor())
	assert.False(t, f.Valid())
}
