package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	content := "backend: prompt\nfilter: png,jpg;pdf\ndefaultPath: /home/me/Pictures\ncopyToClipboard: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, Config{
		Backend:         "prompt",
		Filter:          "png,jpg;pdf",
		DefaultPath:     "/home/me/Pictures",
		CopyToClipboard: true,
	}, cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("backend: [unclosed\n"), 0o644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config.yml")
}

func TestConfigEncode(t *testing.T) {
	out, err := Config{Backend: "zenity", NullSeparated: true}.Encode()
	require.NoError(t, err)
	assert.Equal(t, "backend: zenity\nnullSeparated: true\n", out)

	out, err = DefaultConfig().Encode()
	require.NoError(t, err)
	assert.Equal(t, "{}\n", out)
}

func TestConfigDirFromEnv(t *testing.T) {
	t.Setenv("NFDPICK_CONFIG_DIR", "/etc/nfdpick")
	assert.Equal(t, "/etc/nfdpick", configDir())
}

func TestFlagOverrides(t *testing.T) {
	cfg := Config{Filter: "png", CopyToClipboard: true, NullSeparated: true}

	flagOverrides{}.apply(&cfg)
	assert.True(t, cfg.CopyToClipboard)
	assert.True(t, cfg.NullSeparated)

	flagOverrides{NoCopy: true}.apply(&cfg)
	assert.False(t, cfg.CopyToClipboard)
	assert.True(t, cfg.NullSeparated)

	flagOverrides{NoNull: true}.apply(&cfg)
	assert.False(t, cfg.NullSeparated)
	assert.Equal(t, "png", cfg.Filter)
}
