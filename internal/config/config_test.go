package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"dog-match/internal/domain/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, catalog.DefaultPageSize, cfg.PageSize)
	assert.Equal(t, catalog.DefaultSort, cfg.Sort())
	assert.Equal(t, DefaultWorkspaceCookie, cfg.WorkspaceCookie)
	assert.Equal(t, DefaultWorkspaceIdle, cfg.WorkspaceIdle)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dogmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: http://localhost:9999
http_timeout: 3s
page_size: 10
workspace_idle_ttl: 5m
default_sort: name:desc
log:
  level: debug
tracing:
  enabled: true
  endpoint: http://collector:4318
`), 0o600))

	t.Setenv("PAGE_SIZE", "40")
	t.Setenv("PORT", "9090")
	t.Setenv("WORKSPACE_IDLE_TTL", "90s")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "http://localhost:9999", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 40, cfg.PageSize)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 90*time.Second, cfg.WorkspaceIdle)
	assert.Equal(t, catalog.Sort("name:desc"), cfg.Sort())
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.Tracing.ServiceName)
}

func TestLoad_ConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_name: shelter\n"), 0o600))
	t.Setenv("DOGMATCH_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "shelter", cfg.AppName)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_BadIdleTTL(t *testing.T) {
	t.Setenv("WORKSPACE_IDLE_TTL", "forever")
	_, err := Load("")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"bad base url":  func(c *Config) { c.BaseURL = "ftp://x" },
		"empty host":    func(c *Config) { c.BaseURL = "http://" },
		"zero page":     func(c *Config) { c.PageSize = 0 },
		"unknown sort":  func(c *Config) { c.DefaultSort = "color:asc" },
		"negative wait": func(c *Config) { c.HTTPTimeout = -time.Second },
		"no idle ttl":   func(c *Config) { c.WorkspaceIdle = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
