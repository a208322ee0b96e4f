package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcomets/fd/pkg/errors"
)

// withConfigHome points XDG_CONFIG_HOME at a temp dir for the test.
func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoadWithoutConfigFile(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigFile(t *testing.T) {
	dir := withConfigHome(t)

	path := filepath.Join(dir, "fd", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("hidden = true\nmax-depth = 3\nls-colors = \"di=01;32\"\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Hidden)
	assert.Equal(t, 3, cfg.MaxDepth)
	assert.Equal(t, "di=01;32", cfg.LsColors)

	// Unset keys keep their defaults
	assert.False(t, cfg.FullPath)
	assert.False(t, cfg.CaseSensitive)
}

func TestLoadMalformedConfigFile(t *testing.T) {
	dir := withConfigHome(t)

	path := filepath.Join(dir, "fd", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("hidden = [broken\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestGenerateRoundTrips(t *testing.T) {
	dir := withConfigHome(t)

	out, err := Generate()
	require.NoError(t, err)
	assert.Contains(t, string(out), "max-depth")
	assert.Contains(t, string(out), "case-sensitive")

	// The generated file parses back to the defaults
	path := filepath.Join(dir, "fd", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, out, 0644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestPathIsUnderConfigHome(t *testing.T) {
	dir := withConfigHome(t)
	assert.Equal(t, filepath.Join(dir, "fd", "config.toml"), Path())
}
