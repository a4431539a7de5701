package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for chatmesh-importer.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (API tokens, passwords) must only come from environment variables.
type Config struct {
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Remote API configuration
	Remote RemoteConfig `yaml:"remote"`

	// Local database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// Redis configuration for resume checkpoints (optional)
	Redis RedisConfig `yaml:"redis"`
}

// RemoteConfig holds the remote API connection settings.
type RemoteConfig struct {
	// APIURL is the remote host, e.g. https://flows.example.org.
	// A trailing "/api/v2" suffix is stripped at load time.
	APIURL string `yaml:"api_url" env:"REMOTE_API_URL" env-default:""`

	// APIToken authenticates against the remote API. A leading "Token "
	// prefix is stripped at load time.
	APIToken string `yaml:"-" env:"REMOTE_API_TOKEN"` // Secret - not in YAML

	// Throttle inserts a fixed pause between remote page fetches to
	// respect implicit rate limits of shared installations.
	Throttle        bool `yaml:"throttle" env:"REMOTE_THROTTLE" env-default:"false"`
	ThrottleSeconds int  `yaml:"throttle_seconds" env:"REMOTE_THROTTLE_SECONDS" env-default:"5"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"chatmesh"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"chatmesh"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"10"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
}

// RedisConfig holds Redis settings for the checkpoint store.
// If Host is empty, checkpoints are kept in memory only and an
// interrupted import starts over from the first page.
type RedisConfig struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:""`
	Port     int    `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Load reads configuration from config.yaml with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
		return nil, fmt.Errorf("failed to read config.yaml: %w", err)
	}

	cfg.Remote.APIURL = CleanAPIURL(cfg.Remote.APIURL)
	cfg.Remote.APIToken = CleanAPIToken(cfg.Remote.APIToken)

	return cfg, nil
}

// CleanAPIURL normalizes the remote API URL provided by the user.
// Operators paste URLs with and without the /api/v2 suffix; the client
// appends it itself, so it is stripped here.
func CleanAPIURL(url string) string {
	if url == "" {
		return ""
	}
	url = strings.TrimSpace(url)
	url = strings.TrimSuffix(url, "/")
	url = strings.TrimSuffix(url, "/api/v2")
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}
	return url
}

// CleanAPIToken normalizes the remote API token provided by the user.
// Tokens copied out of a curl example carry a "Token " prefix.
func CleanAPIToken(token string) string {
	if token == "" {
		return ""
	}
	token = strings.TrimSpace(token)
	if len(token) >= 5 && strings.EqualFold(token[:5], "token") {
		token = strings.TrimSpace(token[5:])
	}
	return token
}

// ConnectionString returns a PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
