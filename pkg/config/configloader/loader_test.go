package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Server struct {
		Port int `koanf:"port"`
	} `koanf:"server"`
	Log struct {
		Level string `koanf:"level"`
	} `koanf:"log"`
}

func (c *testConfig) Validate() error {
	if c.Server.Port <= 0 {
		return errors.New("port is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func Test_Load_YamlFile(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "config.yaml", "server:\n  port: 8081\nlog:\n  level: debug\n")
	// when
	cfg, err := Load[*testConfig]("testsvc")
	// then
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func Test_Load_EnvOverridesFile(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, "config.yaml", "server:\n  port: 8081\n")
	t.Setenv("TESTSVC_SERVER_PORT", "9090")
	// when
	cfg, err := Load[*testConfig]("testsvc")
	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func Test_Load_DotEnvFile(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".env", "TESTSVC_SERVER_PORT=7070\nTESTSVC_LOG_LEVEL=warn\nUNRELATED=1\n")
	// when
	cfg, err := Load[*testConfig]("testsvc")
	// then
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func Test_Load_ConfigFileOverride(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	path := writeFile(t, dir, "custom.yaml", "server:\n  port: 6060\n")
	t.Setenv("TESTSVC_CONFIG_FILE", path)
	// when
	cfg, err := Load[*testConfig]("testsvc")
	// then
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func Test_Load_ValidationFails(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	// when
	_, err := Load[*testConfig]("testsvc")
	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}
