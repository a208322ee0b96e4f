package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcomets/fd/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestGenConfigPrintsDefaults(t *testing.T) {
	out, err := execute(t, "gen-config")
	require.NoError(t, err)

	assert.Contains(t, out, "max-depth")
	assert.Contains(t, out, "hidden")
}

func TestGenConfigWrite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	_, err := execute(t, "gen-config", "--write")
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "fd", "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(written), "max-depth")

	// A second write must not clobber the existing file
	_, err = execute(t, "gen-config", "--write")
	assert.Error(t, err)
}

func TestDocsRenders(t *testing.T) {
	out, err := execute(t, "docs")
	require.NoError(t, err)
	assert.Contains(t, out, "LS_COLORS")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "fd version")
}

func TestCanonicalizeMissingDirectory(t *testing.T) {
	_, err := canonicalize(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestApplyConfigDefaults(t *testing.T) {
	cfg := &config.Config{Hidden: true, MaxDepth: 4}

	hidden = false
	maxDepth = 0
	applyConfigDefaults(rootCmd, cfg)

	assert.True(t, hidden)
	assert.Equal(t, 4, maxDepth)
}
