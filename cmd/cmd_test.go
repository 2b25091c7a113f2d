package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ghostprotocol/internal/challenges"
)

type harness struct {
	t   *testing.T
	dir string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"DATA_DIR", "SLOTS", "SLOT", "AUTO_SAVE", "JOURNAL", "DIFFICULTY_SCALING", "MAX_ATTEMPTS", "LOG_LEVEL", "PLAYER_NAME"} {
		t.Setenv("GHOSTPROTOCOL_"+k, "")
		os.Unsetenv("GHOSTPROTOCOL_" + k)
	}
	return &harness{t: t, dir: t.TempDir()}
}

// run executes one invocation against slot. Persistent flags keep their
// values between runs, so every run sets them explicitly.
func (h *harness) run(slot int, args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(""))
	full := append([]string{"--data-dir", h.dir, "--slot", fmt.Sprint(slot), "--debug=false"}, args...)
	rootCmd.SetArgs(full)
	err := rootCmd.Execute()
	return out.String() + errOut.String(), err
}

func TestCLI_PlayThrough(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(1, "attempt", "welcome", "Welcome", "to", "the", "Ghost", "Protocol")
	require.NoError(t, err)
	assert.Contains(t, out, "Correct. +50 XP")

	out, err = h.run(1, "attempt", "file_discovery", "not-it")
	require.NoError(t, err)
	assert.Contains(t, out, "Incorrect")

	out, err = h.run(1, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, fmt.Sprintf("Challenges:  1/%d", challenges.Count()))
	assert.Contains(t, out, "Sanity:      95/100")

	out, err = h.run(1, "list", "--level", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "welcome")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "1 tries")

	_, err = h.run(1, "attempt", "welcome", "again")
	assert.Error(t, err, "completed challenges cannot be restarted")

	out, err = h.run(1, "journal", "list", "--limit", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "answer")
	assert.Contains(t, out, "start")
}

func TestCLI_HintAndSkip(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(1, "hint", "welcome", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Hint 1: Base64 is a common encoding scheme")
	assert.Contains(t, out, "Hint 2:")

	out, err = h.run(1, "skip", "welcome")
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped welcome. -5 sanity.")

	out, err = h.run(1, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Hints used:  2")
	assert.Contains(t, out, "1 skipped")
}

func TestCLI_ExportImportSlots(t *testing.T) {
	h := newHarness(t)
	exported := filepath.Join(t.TempDir(), "ghost.json")

	_, err := h.run(1, "new", "--name", "trinity")
	require.NoError(t, err)
	_, err = h.run(1, "attempt", "welcome", "welcome to the ghost protocol")
	require.NoError(t, err)

	_, err = h.run(1, "export", "--out", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"player_name": "trinity"`)

	out, err := h.run(2, "import", exported)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported trinity")

	out, err = h.run(1, "slots")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "trinity"))
	assert.Contains(t, out, "(empty)")

	_, err = h.run(1, "import", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCLI_ResetNeedsConfirmation(t *testing.T) {
	h := newHarness(t)
	_, err := h.run(1, "attempt", "welcome", "welcome to the ghost protocol")
	require.NoError(t, err)

	_, err = h.run(1, "reset")
	assert.Error(t, err)

	out, err := h.run(1, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Slot 1 cleared")
}

func TestCLI_Errors(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(1, "attempt", "no_such_challenge", "x")
	assert.ErrorIs(t, err, challenges.ErrNotFound)

	_, err = h.run(9, "stats")
	assert.Error(t, err, "slot beyond configured slots")

	_, err = h.run(1, "show", "nope")
	assert.Error(t, err)

	_, err = h.run(1, "scaling", "wild")
	assert.Error(t, err)
}

func TestCLI_Version(t *testing.T) {
	h := newHarness(t)
	out, err := h.run(1, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ghostprotocol (devel)")
}
