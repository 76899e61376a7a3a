package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
  timezone: Asia/Kolkata
http:
  addr: ":9090"
postgres:
  dsn: "postgres://localhost/dairy"
license:
  warn_days: 7
  exempt_pages:
    - license-admin
business:
  project_name: TEST DAIRY
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, "postgres://localhost/dairy", cfg.Postgres.DSN)
	assert.Equal(t, 7, cfg.License.WarnDays)
	assert.Equal(t, []string{"license-admin"}, cfg.License.ExemptPages)
	assert.Equal(t, "TEST DAIRY", cfg.Business.ProjectName)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  env: prod\n"))
	require.NoError(t, err)
	assert.Equal(t, "SUDHA", cfg.License.Prefix)
	assert.Equal(t, 3, cfg.License.WarnDays)
	assert.Equal(t, 5, cfg.License.ReverifyMinutes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
