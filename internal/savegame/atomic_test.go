package savegame

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ghostprotocol/internal/progress"
)

func leftoverTemps(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".ghostprotocol-save-") {
			out = append(out, e.Name())
		}
	}
	return out
}

func TestWriteAtomic_ReplacesTarget(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slot-1.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, writeAtomic(path, []byte("new contents")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new contents", string(got))
	assert.Empty(t, leftoverTemps(t, dir))
}

func TestWriteAtomic_CleansUpOnRenameFailure(t *testing.T) {
	dir := t.TempDir()
	// A non-empty directory at the target path makes the rename fail.
	path := filepath.Join(dir, "slot-1.json")
	require.NoError(t, os.MkdirAll(filepath.Join(path, "blocker"), 0o755))

	err := writeAtomic(path, []byte("data"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.Equal(t, "rename", ioe.Op)
	assert.Empty(t, leftoverTemps(t, dir), "temp directory must be removed on failure")
}

func TestWriteAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "slot-1.json")
	err := writeAtomic(path, []byte("data"))
	assert.ErrorIs(t, err, ErrIO)
}

func TestSave_FailedWriteKeepsPreviousSave(t *testing.T) {
	m := newManager(t)
	s := progress.New("neo", t0)
	require.NoError(t, m.Save(s, 1))
	before, err := os.ReadFile(m.Path(1))
	require.NoError(t, err)

	// Make the directory read-only so the temp directory cannot be created.
	require.NoError(t, os.Chmod(m.Dir(), 0o500))
	t.Cleanup(func() { _ = os.Chmod(m.Dir(), 0o755) })
	if f, err := os.CreateTemp(m.Dir(), "probe"); err == nil {
		// Running as root: permissions are not enforced.
		_ = f.Close()
		_ = os.Remove(f.Name())
		t.Skip("directory permissions not enforced")
	}

	s.AddExperience(100, t0)
	err = m.Save(s, 1)
	require.ErrorIs(t, err, ErrIO)

	after, err := os.ReadFile(m.Path(1))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
