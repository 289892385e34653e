package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the corresponding config values are unset.
const (
	DefaultBuildWebhookURL = "https://cloudbuild.googleapis.com/github/webhook"
	DefaultListenAddr      = ":8080"
	DefaultAuditLogPath    = "repo_audit.log"
)

// Config represents the repocreator configuration
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Server ServerConfig `yaml:"server"`
	Audit  AuditConfig  `yaml:"audit"`
}

// GitHubConfig represents GitHub-specific configuration
type GitHubConfig struct {
	Token           string `yaml:"token,omitempty"`
	Organization    string `yaml:"organization,omitempty"`
	BuildWebhookURL string `yaml:"build_webhook_url,omitempty"`
}

// ServerConfig represents the web form server configuration
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

// AuditConfig represents audit log configuration
type AuditConfig struct {
	LogPath string `yaml:"log_path,omitempty"`
}

// BuildWebhookURL returns the configured build webhook URL or the default.
func (c *Config) BuildWebhookURL() string {
	if c.GitHub.BuildWebhookURL != "" {
		return c.GitHub.BuildWebhookURL
	}
	return DefaultBuildWebhookURL
}

// ListenAddr returns the configured listen address or the default.
func (c *Config) ListenAddr() string {
	if c.Server.ListenAddr != "" {
		return c.Server.ListenAddr
	}
	return DefaultListenAddr
}

// AuditLogPath returns the configured audit log path or the default.
func (c *Config) AuditLogPath() string {
	if c.Audit.LogPath != "" {
		return c.Audit.LogPath
	}
	return DefaultAuditLogPath
}

// LoadConfig loads configuration from the default location
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil // Return empty config if file doesn't exist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &config, nil
}

// SaveConfig saves configuration to the default location
func (c *Config) SaveConfig() error {
	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	return c.SaveConfigToPath(configPath)
}

// SaveConfigToPath saves configuration to a specific path
func (c *Config) SaveConfigToPath(path string) error {
	// Create config directory if it doesn't exist
	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".repocreator", "config.yaml"), nil
}
