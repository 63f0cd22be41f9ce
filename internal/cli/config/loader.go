package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load resolves the configuration for one invocation. Sources are layered
// in priority order: built-in defaults, the YAML file at path, ZKADMIN_*
// environment variables, then the explicit flag overrides.
//
// A missing file is tolerated only when defaultPath is true; a path the
// user asked for must exist.
func Load(path string, defaultPath bool, overrides map[string]any) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(mapProvider(defaultsMap()), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && defaultPath:
			// First run, nothing saved yet.
		default:
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(mapProvider(overrides), nil); err != nil {
			return Config{}, fmt.Errorf("load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// envTransform maps ZKADMIN_SERVICE_URL to service.url.
func envTransform(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", ".")
}

// defaultsMap renders Default() in koanf key form.
func defaultsMap() map[string]any {
	d := Default()
	return map[string]any{
		"output":     d.Output,
		"timeout":    d.Timeout.String(),
		"log.level":  d.Log.Level,
		"log.format": d.Log.Format,
	}
}
