package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_DB_PASSWORD", "s3cret")
	t.Setenv("TEST_SYNC_TOKEN", "tok")

	path := writeConfig(t, `
database:
  host: localhost
  port: 5432
  user: legisync
  password: ${TEST_DB_PASSWORD}
  dbname: legisync
  sslmode: disable
server:
  sync_token: ${TEST_SYNC_TOKEN}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "tok", cfg.Server.SyncToken)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `log_level: ""`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "https://api.congress.gov/v3", cfg.Sources.Congress.BaseURL)
	assert.Equal(t, 119, cfg.Sources.Congress.Congress)
	assert.Equal(t, 250, cfg.Sources.Congress.PageSize)
	assert.Equal(t, 250, cfg.Sources.GovTrack.PageSize)
	assert.Equal(t, 30, cfg.Sources.GovTrack.LookbackDays)
	assert.Equal(t, []string{"ca", "ny", "tx", "fl"}, cfg.Sources.OpenStates.Jurisdictions)
	assert.Equal(t, 50, cfg.Sources.OpenStates.PerPage)
	assert.Equal(t, 30*time.Second, cfg.Sources.Timeout)
	assert.Equal(t, 3, cfg.Sources.Retry.MaxAttempts)
	assert.Equal(t, "google/gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 60*time.Second, cfg.AI.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Civic.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_ExplicitValuesKept(t *testing.T) {
	path := writeConfig(t, `
sources:
  congress:
    congress: 120
    page_size: 10
  openstates:
    jurisdictions: [wa, or]
sync:
  interval: 6h
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 120, cfg.Sources.Congress.Congress)
	assert.Equal(t, 10, cfg.Sources.Congress.PageSize)
	assert.Equal(t, []string{"wa", "or"}, cfg.Sources.OpenStates.Jurisdictions)
	assert.Equal(t, 6*time.Hour, cfg.Sync.Interval)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "database: [not a map")
	_, err := Load(path)
	require.Error(t, err)
}
