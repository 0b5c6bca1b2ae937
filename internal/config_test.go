package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "novarel", cfg.AppName)
	assert.Equal(t, "127.0.0.1:8866", cfg.Server.Addr)
	assert.Empty(t, cfg.Server.HTTPAddr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Session.Shared)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, "novarel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app_name: testrel
server:
  addr: 127.0.0.1:9000
  http_addr: 127.0.0.1:9001
log:
  level: debug
session:
  shared: true
`), 0o644))
	t.Setenv("NOVAREL_SERVER_ADDR", "127.0.0.1:9100")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "testrel", cfg.AppName)
	assert.Equal(t, "127.0.0.1:9100", cfg.Server.Addr)
	assert.Equal(t, "127.0.0.1:9001", cfg.Server.HTTPAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Session.Shared)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOVAREL_LOG_LEVEL=warn\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("NOVAREL_LOG_LEVEL") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
