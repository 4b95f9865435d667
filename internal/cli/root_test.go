package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zlobste/addrmask/mask"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestFamiliesCommand(t *testing.T) {
	out, err := run(t, "-o", "human", "families")
	require.NoError(t, err)
	assert.Equal(t, "ipv4\nipv6\nmac\n", out)
}

func TestFormatCommand(t *testing.T) {
	out, err := run(t, "-o", "human", "format", "mac", "001A2B3C4D5E")
	require.NoError(t, err)
	assert.Equal(t, "00:1A:2B:3C:4D:5E\n", out)

	out, err = run(t, "-o", "json", "format", "IPv6", "2001:0db8:::1")
	require.NoError(t, err)
	var res formatResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "ipv6", res.Family)
	assert.Equal(t, "2001:0db8::1", res.Value)
}

func TestFormatUnknownFamily(t *testing.T) {
	_, err := run(t, "format", "cidr", "10.0.0.0/8")
	assert.ErrorIs(t, err, mask.ErrUnknownFamily)
}

func TestValidateCommand(t *testing.T) {
	out, err := run(t, "-o", "yaml", "validate", "ipv4", "192.168.1.1")
	require.NoError(t, err)
	assert.Contains(t, out, "valid: true")

	out, err = run(t, "-o", "human", "validate", "ipv4", "256.1.1.1")
	require.NoError(t, err)
	assert.Contains(t, out, "not a valid ipv4 address")

	_, err = run(t, "-o", "human", "validate", "--strict", "ipv4", "1.2.3")
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestAcceptCommand(t *testing.T) {
	out, err := run(t, "-o", "json", "accept", "mac", ":", "00", "--cursor", "2", "--selection-end", "2")
	require.NoError(t, err)
	var res acceptResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Accepted)

	out, err = run(t, "-o", "json", "accept", "ipv6", ":", "2001::0db8", "--cursor", "5", "--selection-end", "5")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Accepted)

	_, err = run(t, "accept", "mac", "ab", "00", "--cursor", "2", "--selection-end", "2")
	assert.Error(t, err)
}

func TestCursorCommand(t *testing.T) {
	out, err := run(t, "-o", "human", "cursor", "192.168.1", "192.168.1.", "9")
	require.NoError(t, err)
	assert.Equal(t, "10\n", out)

	_, err = run(t, "cursor", "a", "b", "x")
	assert.Error(t, err)
}

func TestTypeCommand(t *testing.T) {
	out, err := run(t, "-o", "json", "type", "ipv4", "10.0.0.1")
	require.NoError(t, err)
	var res sessionResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "10.0.0.1", res.Value)
	assert.True(t, res.Valid)
	assert.Len(t, res.Steps, 8)

	out, err = run(t, "-o", "human", "type", "mac", "00G")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.Split(out, "\n")[2], "-"), "G must be rejected:\n%s", out)
}

const replayScript = `sessions:
  - name: router
    family: ipv4
    steps:
      - type: "192168"
      - type: "1.1"
  - name: nic
    family: mac
    steps:
      - paste: "00-1A-2B-3C-4D-5E"
      - select: [0, 2]
      - type: "ff"
  - name: fix
    family: ipv6
    steps:
      - type: "2001:db8::1"
      - backspace: 1
      - cursor: 0
      - delete: 4
`

func TestReplayCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(replayScript), 0o600))

	out, err := run(t, "-o", "json", "replay", path)
	require.NoError(t, err)
	var res []sessionResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 3)
	assert.Equal(t, "192.168.1.1", res[0].Value)
	assert.True(t, res[0].Valid)
	assert.Equal(t, "ff:1A:2B:3C:4D:5E", res[1].Value)
	assert.Equal(t, ":db8::", res[2].Value)
	assert.False(t, res[2].Valid)
}

func TestReplayRejectsBadScript(t *testing.T) {
	bad := `sessions:
  - family: ipx
    steps:
      - type: "1"
        paste: "2"
      - select: [1]
`
	_, err := loadScript(strings.NewReader(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidScript)
	assert.Contains(t, err.Error(), "session 0 step 0")
	assert.Contains(t, err.Error(), "session 0 step 1")
	assert.Contains(t, err.Error(), "unknown address family")

	_, err = loadScript(strings.NewReader("sessions: []\nextra: 1\n"))
	assert.ErrorIs(t, err, ErrInvalidScript)

	_, err = loadScript(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidScript)
}

func TestReplaySelectionOutOfRange(t *testing.T) {
	s, err := loadScript(strings.NewReader("sessions:\n  - family: mac\n    steps:\n      - select: [0, 9]\n"))
	require.NoError(t, err)
	_, err = runSession(s.Sessions[0])
	assert.ErrorIs(t, err, mask.ErrInvalidSelection)
}
