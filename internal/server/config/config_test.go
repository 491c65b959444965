package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"server"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetArgs(t)

	cfg := LoadConfig()

	assert.Equal(t, ":4567", cfg.EndpointAddrHTTP)
	assert.Equal(t, 10, cfg.BCryptCost)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	resetArgs(t, "-a", ":9999", "-s", "flag-secret", "-k", "12")

	cfg := LoadConfig()

	assert.Equal(t, ":9999", cfg.EndpointAddrHTTP)
	assert.Equal(t, "flag-secret", cfg.SecretKey)
	assert.Equal(t, 12, cfg.BCryptCost)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	resetArgs(t)
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("BCRYPT_COST", "11")

	cfg := LoadConfig()

	assert.Equal(t, "env-secret", cfg.SecretKey)
	assert.Equal(t, 11, cfg.BCryptCost)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{"endpoint_addr_http": ":7070", "secret_key": "json-secret"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	resetArgs(t, "-c", path)

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	// untouched fields keep their defaults
	assert.Equal(t, 10, cfg.BCryptCost)
}

func TestLoadConfig_FlagsWinOverJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"secret_key": "json-secret"}`), 0o600))

	resetArgs(t, "-c", path, "-s", "flag-secret")

	cfg := LoadConfig()

	assert.Equal(t, "flag-secret", cfg.SecretKey)
}
