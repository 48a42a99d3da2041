package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Version(t *testing.T) {
	assert.Equal(t, 0, run([]string{"--version"}))
}

func TestRun_BadFlag(t *testing.T) {
	assert.Equal(t, 2, run([]string{"--no-such-flag"}))
}

func TestRun_MissingConfig(t *testing.T) {
	assert.Equal(t, 1, run([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")}))
}

func TestRun_UnknownThemeFlushesLog(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	path := filepath.Join(dir, "tpopup.toml")
	data := "theme = \"no-such-theme\"\n\n[log]\ndir = \"" + filepath.ToSlash(logDir) + "\"\nformat = \"text\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	assert.Equal(t, 1, run([]string{"--config", path}))

	out, err := os.ReadFile(filepath.Join(logDir, "tpopup.log"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "unknown theme")
	assert.Contains(t, string(out), "theme=no-such-theme")
}
