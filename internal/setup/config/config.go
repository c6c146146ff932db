package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion of the config file.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Baseline   Baseline   `koanf:"baseline"`
	RateLimit  RateLimit  `koanf:"rate_limit"`
	Server     Server     `koanf:"server"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// PostgreSQL contains database connection configuration for snapshot storage.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
}

// Baseline contains configuration for community baseline fetching.
type Baseline struct {
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
	// User agent sent with baseline requests.
	UserAgent string `koanf:"user_agent"`
	// Base URL for the Reddit read-only API.
	RedditURL string `koanf:"reddit_url"`
	// Number of recent posts to sample per community.
	SampleSize int `koanf:"sample_size"`
}

// RateLimit contains the rate-limit budget for baseline fetches.
type RateLimit struct {
	// Requests per window when a platform credential is present.
	AuthenticatedRequests int `koanf:"authenticated_requests"`
	// Requests per window for anonymous access.
	AnonymousRequests int `koanf:"anonymous_requests"`
	// Fixed wait in seconds after a throttling response.
	BackoffSeconds int `koanf:"backoff_seconds"`
	// Maximum concurrent fetches in flight.
	BatchSize int `koanf:"batch_size"`
	// Maximum backoff retries per community before degrading to the default baseline.
	MaxThrottleRetries int `koanf:"max_throttle_retries"`
}

// Server contains REST server configuration.
type Server struct {
	// Listen host.
	Host string `koanf:"host"`
	// Listen port.
	Port int `koanf:"port"`
}

// LoadConfig loads the configuration from the specified file.
// Returns the config along with the used config directory.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".sentrix",
		homeDir + "/.sentrix/config",
		"/etc/sentrix/config",
		"/app/config",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := path + "/sentrix.toml"
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: sentrix.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version == 0 {
		return nil, "", fmt.Errorf("%w: sentrix.toml", ErrConfigVersionMissing)
	}

	if config.Version != CurrentVersion {
		return nil, "", fmt.Errorf("%w: sentrix.toml (got: %d, expected: %d)",
			ErrConfigVersionMismatch, config.Version, CurrentVersion)
	}

	return &config, usedConfigPath, nil
}
