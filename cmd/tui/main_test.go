package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/todos/internal/config"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`server_url = "http://file:1"
debounce = "500ms"
`), 0o600))

	cfg, err := loadConfig([]string{"-config", path, "-server", "http://flag:2"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.ServerURL)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce, "unset flags keep file values")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig([]string{"-config", filepath.Join(t.TempDir(), "none.toml"), "-debounce", "50ms"})
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServerURL, cfg.ServerURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
}

func TestLoadConfig_RejectsBadServerURL(t *testing.T) {
	_, err := loadConfig([]string{"-config", "", "-server", "localhost:8081"})
	assert.Error(t, err)
}

func TestInitLogging_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tui.log")

	closer, err := initLogging(path)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
