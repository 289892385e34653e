package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	configYAML := `github:
  token: test-token
  organization: acme
  build_webhook_url: https://build.example.com/webhook
server:
  listen_addr: ":9090"
audit:
  log_path: /var/log/repo_audit.log
`

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configYAML), 0600))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.GitHub.Token)
	assert.Equal(t, "acme", cfg.GitHub.Organization)
	assert.Equal(t, "https://build.example.com/webhook", cfg.BuildWebhookURL())
	assert.Equal(t, ":9090", cfg.ListenAddr())
	assert.Equal(t, "/var/log/repo_audit.log", cfg.AuditLogPath())
}

func TestLoadConfigFromPath_MissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.GitHub.Token)
}

func TestLoadConfigFromPath_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github: [unclosed"), 0600))

	_, err := LoadConfigFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}

	assert.Equal(t, DefaultBuildWebhookURL, cfg.BuildWebhookURL())
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr())
	assert.Equal(t, DefaultAuditLogPath, cfg.AuditLogPath())
}

func TestSaveConfigToPath_RoundTrip(t *testing.T) {
	cfg := &Config{}
	cfg.GitHub.Token = "test-token"
	cfg.GitHub.Organization = "acme"
	cfg.Server.ListenAddr = ":9090"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, cfg.SaveConfigToPath(path))

	// Config files hold tokens, so they must not be world readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	require.NoError(t, err)

	assert.Contains(t, path, ".repocreator")
	assert.Equal(t, "config.yaml", filepath.Base(path))
}
