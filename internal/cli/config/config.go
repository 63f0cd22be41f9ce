// Package config loads zkadmin settings from file, environment and flags.
//
// It uses Koanf for flexible configuration loading from multiple sources
// with priority: Flag > Env > File > Default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// EnvPrefix is the environment variable prefix. ZKADMIN_SERVICE_URL maps
// to service.url, ZKADMIN_LOG_LEVEL to log.level, and so on.
const EnvPrefix = "ZKADMIN_"

// Config holds the resolved zkadmin settings.
type Config struct {
	// Profile names a stored credential profile to load when the service
	// settings are not given directly.
	Profile string        `koanf:"profile"`
	Service ServiceConfig `koanf:"service"`
	Output  string        `koanf:"output"`
	Timeout time.Duration `koanf:"timeout"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// ServiceConfig identifies the tenant endpoint and its credentials.
type ServiceConfig struct {
	URL      string `koanf:"url"`
	AdminKey string `koanf:"adminkey"`
	TenantID string `koanf:"tenantid"`
	// CABundle points at a PEM file with extra root certificates, for
	// self-hosted tenants behind a private CA.
	CABundle string `koanf:"cabundle"`
}

// LogConfig mirrors the logger package configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsConfig controls the optional Prometheus endpoint of long-running
// commands.
type MetricsConfig struct {
	Listen string `koanf:"listen"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Output:  "table",
		Timeout: 30 * time.Second,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the zkadmin state directory, ~/.zerokit-admin.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zerokit-admin"
	}
	return filepath.Join(home, ".zerokit-admin")
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// validOutputs are the formats the output package can render.
var validOutputs = map[string]bool{
	"json":  true,
	"table": true,
	"yaml":  true,
}

// Validate checks the settings that every command depends on. Credentials
// are checked later, once profile resolution has run.
func (c Config) Validate() error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// HasCredentials reports whether the service settings are complete enough
// to build a client without consulting a profile.
func (c Config) HasCredentials() bool {
	return c.Service.URL != "" && c.Service.AdminKey != ""
}
