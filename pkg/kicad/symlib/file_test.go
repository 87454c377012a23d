package symlib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Resistors.kicad_sym")
	require.NoError(t, os.WriteFile(path, []byte(kicad8Library), 0o600))

	lib, err := ParseFile(path, nil)
	require.NoError(t, err)
	_, err = lib.DeriveSymbol("1M", "~Template", PropertiesFrom("Value", "1M"))
	require.NoError(t, err)

	require.NoError(t, WriteFile(lib, path, &Config{Backup: true}))

	backup, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, kicad8Library, string(backup))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Serialize(lib), string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "permissions are kept")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")

	reloaded, err := ParseFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"~Template", "10k", "1M"}, reloaded.SymbolNames())
}

func TestWriteFileNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.kicad_sym")

	lib, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, WriteFile(lib, path, &Config{Backup: true}))

	_, err = os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err), "nothing to back up")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Serialize(lib), string(data))
}

func TestParseFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ParseFile(filepath.Join(dir, "missing.kicad_sym"), nil)
	assert.ErrorIs(t, err, os.ErrNotExist)

	broken := filepath.Join(dir, "broken.kicad_sym")
	require.NoError(t, os.WriteFile(broken, []byte("(kicad_symbol_lib (version 1)"), 0o644))
	_, err = ParseFile(broken, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)
}
