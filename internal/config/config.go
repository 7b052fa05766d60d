package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "LOCREM_"

type Config struct {
	DB       DBConfig       `koanf:"db"`
	Cache    CacheConfig    `koanf:"cache"`
	Geofence GeofenceConfig `koanf:"geofence"`
	Log      LogConfig      `koanf:"log"`
	Notify   NotifyConfig   `koanf:"notify"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

type DBConfig struct {
	Path string `koanf:"path"`
}

type CacheConfig struct {
	Size int `koanf:"size"`
}

type GeofenceConfig struct {
	RadiusMeters float64 `koanf:"radius_meters"`
	Buffer       int     `koanf:"buffer"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

type NotifyConfig struct {
	Desktop bool `koanf:"desktop"`
}

type MetricsConfig struct {
	Addr string `koanf:"addr"`
}

func Defaults() map[string]any {
	return map[string]any{
		"db.path":                "locrem.db",
		"cache.size":             128,
		"geofence.radius_meters": 100.0,
		"geofence.buffer":        64,
		"log.level":              "info",
		"log.format":             "text",
		"log.file":               "locrem.log",
		"notify.desktop":         false,
		"metrics.addr":           "",
	}
}

// Load layers defaults, the optional yaml file at path and LOCREM_ env vars.
// A missing file is not an error.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat config file: %w", err)
		}
	}

	// LOCREM_GEOFENCE_RADIUS_METERS -> geofence.radius_meters
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.Path) == "" {
		return errors.New("config: db.path is required")
	}
	if c.Cache.Size <= 0 {
		return fmt.Errorf("config: cache.size must be positive, got %d", c.Cache.Size)
	}
	if c.Geofence.RadiusMeters <= 0 {
		return fmt.Errorf("config: geofence.radius_meters must be positive, got %v", c.Geofence.RadiusMeters)
	}
	if c.Geofence.Buffer <= 0 {
		return fmt.Errorf("config: geofence.buffer must be positive, got %d", c.Geofence.Buffer)
	}
	return nil
}
