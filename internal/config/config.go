package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// APIKeyEnvVar is the environment variable holding the Notamify API key.
// The key is deliberately never read from the config file so it cannot end
// up committed alongside it.
const APIKeyEnvVar = "NOTAMIFY_API_KEY"

// DefaultBaseURL is the Notamify API endpoint used when none is configured
const DefaultBaseURL = "https://api.notamify.com/api/v2"

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Server  ServerConfig  `toml:"server"`  // HTTP server settings
	Logging LoggingConfig `toml:"logging"` // Application logging settings
	Notam   NotamConfig   `toml:"notam"`   // Notamify API settings
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port             int    `toml:"port"`                  // Primary HTTP port for the server
	Host             string `toml:"host"`                  // Host address to bind to (e.g., 127.0.0.1 for localhost only, 0.0.0.0 for all interfaces)
	ReadTimeoutSecs  int    `toml:"read_timeout_seconds"`  // Maximum duration for reading the entire request
	WriteTimeoutSecs int    `toml:"write_timeout_seconds"` // Maximum duration for writing the response
	IdleTimeoutSecs  int    `toml:"idle_timeout_seconds"`  // Maximum duration to wait for the next request when keep-alives are enabled
	AdditionalPorts  []int  `toml:"additional_ports"`      // Additional HTTP ports to listen on (useful for multiple interfaces)
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: "debug", "info", "warn", or "error"
	Format string `toml:"format"` // Log format: "json" (structured) or "console" (human-readable)
}

// NotamConfig contains Notamify API client configuration
type NotamConfig struct {
	BaseURL               string `toml:"base_url"`                // Base URL for the Notamify API (default: https://api.notamify.com/api/v2)
	RequestTimeoutSecs    int    `toml:"request_timeout_seconds"` // HTTP request timeout in seconds for each page fetch
	DefaultLookaheadHours int    `toml:"default_lookahead_hours"` // Query window length used when no end time is supplied (default: 24)

	// APIKey is populated from the NOTAMIFY_API_KEY environment variable,
	// never from the config file.
	APIKey string `toml:"-"`
}

// Default returns the configuration used when no config file is present.
// The API key still has to come from the environment.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:             8080,
			Host:             "0.0.0.0",
			ReadTimeoutSecs:  30,
			WriteTimeoutSecs: 60,
			IdleTimeoutSecs:  120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Notam: NotamConfig{
			BaseURL:               DefaultBaseURL,
			RequestTimeoutSecs:    30,
			DefaultLookaheadHours: 24,
		},
	}
}

// Load loads the configuration from the specified file path
func Load(path string) (*Config, error) {
	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	config := Default()
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.Notam.APIKey = os.Getenv(APIKeyEnvVar)

	return config, nil
}

// LoadWithFallback attempts to load configuration from a list of well-known
// locations. If no config file exists anywhere, the defaults are used; the
// service has no required file-based settings, only the API key from the
// environment.
func LoadWithFallback(preferredPath string) (*Config, error) {
	// List of paths to check in order of preference
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // Location in configs/ folder
		"config.toml",         // Root directory
	}

	for _, path := range searchPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			config, err := Load(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
			}
			return config, nil
		}
	}

	config := Default()
	config.Notam.APIKey = os.Getenv(APIKeyEnvVar)
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	// Validate AdditionalPorts
	portsSeen := make(map[int]bool)
	portsSeen[c.Server.Port] = true
	for _, p := range c.Server.AdditionalPorts {
		if p <= 0 || p > 65535 {
			return fmt.Errorf("invalid additional server port: %d", p)
		}
		if portsSeen[p] {
			return fmt.Errorf("duplicate port configured: %d (primary or additional)", p)
		}
		portsSeen[p] = true
	}

	if err := c.ValidateNotam(); err != nil {
		return err
	}

	return nil
}

// ValidateNotam validates the Notamify API configuration
func (c *Config) ValidateNotam() error {
	if c.Notam.APIKey == "" {
		return fmt.Errorf("%s environment variable is required (get your API key from https://api.notamify.com)", APIKeyEnvVar)
	}

	if c.Notam.BaseURL == "" {
		c.Notam.BaseURL = DefaultBaseURL
	}

	if c.Notam.RequestTimeoutSecs <= 0 {
		return fmt.Errorf("notam request_timeout_seconds must be greater than 0: %d", c.Notam.RequestTimeoutSecs)
	}

	if c.Notam.DefaultLookaheadHours <= 0 {
		return fmt.Errorf("notam default_lookahead_hours must be greater than 0: %d", c.Notam.DefaultLookaheadHours)
	}

	return nil
}
