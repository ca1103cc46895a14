package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string        `mapstructure:"PORT"`
	GinMode                          string        `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string        `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string        `mapstructure:"CLIENT_URL"`
	ShutdownTimeout                  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	PublicPaths                      string        `mapstructure:"PUBLIC_PATHS"`
}

// DefaultPublicPaths are reachable without a bearer token.
const DefaultPublicPaths = "/health,/actuator/health,/metrics"

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CLIENT_URL",
	"SHUTDOWN_TIMEOUT",
	"PUBLIC_PATHS",
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("PUBLIC_PATHS", DefaultPublicPaths)

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// IsRelease reports whether the service runs in release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}

// ClientOrigins returns the CORS origins from the comma-separated CLIENT_URL.
func (c *Config) ClientOrigins() []string {
	return splitList(c.ClientURL)
}

// PublicPathList returns the auth allow-list.
func (c *Config) PublicPathList() []string {
	return splitList(c.PublicPaths)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
