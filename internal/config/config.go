// Package config loads service configuration from file and environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Server  ServerConfig
	Store   StoreConfig
	HubSpot HubSpotConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string
}

// StoreConfig selects and configures the transient store backend.
type StoreConfig struct {
	// Backend is "redis" or "memory". Memory is single-instance only.
	Backend  string
	Addr     string
	Password string
	DB       int
}

// HubSpotConfig holds the OAuth app credentials and endpoint overrides.
type HubSpotConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	APIBaseURL   string
	AppBaseURL   string
}

// LogConfig holds logging settings.
type LogConfig struct {
	Format string // json or console
}

// Load reads configuration from the given file (optional), falling back to
// hublink.yaml in the working directory, with HUBLINK_* environment
// variables taking precedence over both.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.addr", ":8001")
	v.SetDefault("store.backend", "redis")
	v.SetDefault("store.addr", "localhost:6379")
	v.SetDefault("store.db", 0)
	v.SetDefault("store.password", "")
	v.SetDefault("log.format", "json")

	// Declare the remaining keys so environment-only overrides bind.
	for _, key := range []string{
		"hubspot.clientid", "hubspot.clientsecret", "hubspot.redirecturi",
		"hubspot.authurl", "hubspot.tokenurl", "hubspot.apibaseurl", "hubspot.appbaseurl",
	} {
		v.SetDefault(key, "")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("hublink")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/hublink")
	}

	v.SetEnvPrefix("HUBLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; environment variables carry the rest.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the serve command cannot run without.
func (c *Config) Validate() error {
	if c.HubSpot.ClientID == "" || c.HubSpot.ClientSecret == "" {
		return errors.New("hubspot.clientid and hubspot.clientsecret are required")
	}
	if c.HubSpot.RedirectURI == "" {
		return errors.New("hubspot.redirecturi is required")
	}
	if c.Store.Backend != "redis" && c.Store.Backend != "memory" {
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	return nil
}
