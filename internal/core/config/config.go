package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "PANELDECK_"

// Config is the top-level application config.
type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	Collections CollectionsConfig `koanf:"collections"`
	Auth        AuthConfig        `koanf:"auth"`
	Cache       CacheConfig       `koanf:"cache"`
	Telemetry   TelemetryConfig   `koanf:"telemetry"`
}

type ServerConfig struct {
	Port          int    `koanf:"port"`
	Host          string `koanf:"host"`
	MaxBodySizeMB int    `koanf:"max_body_size_mb"`
	Mode          string `koanf:"mode"` // debug | release
	BasePath      string `koanf:"base_path"`
}

// Addr is the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type DatabaseConfig struct {
	Type         string `koanf:"type"` // postgres | memory
	DSN          string `koanf:"dsn"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	AutoMigrate  bool   `koanf:"auto_migrate"`
	SeedPath     string `koanf:"seed_path"` // memory only
}

type CollectionsConfig struct {
	ConfigDir string `koanf:"config_dir"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type CacheConfig struct {
	Enabled  bool        `koanf:"enabled"`
	Backend  string      `koanf:"backend"` // memory | redis
	TTL      string      `koanf:"ttl"`
	Capacity int         `koanf:"capacity"`
	Redis    RedisConfig `koanf:"redis"`
}

type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// TTLDuration parses the cache ttl. Validate has already rejected bad values.
func (c CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0
	}
	return d
}

type TelemetryConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be 1-65535)", c.Server.Port)
	}
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server.host is required")
	}
	if c.Server.MaxBodySizeMB <= 0 {
		return fmt.Errorf("server.max_body_size_mb must be > 0")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("invalid server.mode %q (must be debug or release)", c.Server.Mode)
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path %q must start with /", c.Server.BasePath)
	}

	switch c.Database.Type {
	case "postgres":
		if strings.TrimSpace(c.Database.DSN) == "" {
			return fmt.Errorf("database.dsn is required")
		}
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0")
		}
		if c.Database.MaxIdleConns <= 0 {
			return fmt.Errorf("database.max_idle_conns must be > 0")
		}
	case "memory":
	default:
		return fmt.Errorf("unsupported database.type %q", c.Database.Type)
	}

	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}

	if c.Cache.Enabled {
		ttl, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return fmt.Errorf("invalid cache.ttl %q: %w", c.Cache.TTL, err)
		}
		if ttl <= 0 {
			return fmt.Errorf("cache.ttl must be > 0")
		}
		switch c.Cache.Backend {
		case "memory":
			if c.Cache.Capacity <= 0 {
				return fmt.Errorf("cache.capacity must be > 0")
			}
		case "redis":
			if strings.TrimSpace(c.Cache.Redis.Address) == "" {
				return fmt.Errorf("cache.redis.address is required for the redis backend")
			}
		default:
			return fmt.Errorf("unsupported cache.backend %q", c.Cache.Backend)
		}
	}

	if c.Telemetry.Enabled && !strings.HasPrefix(c.Telemetry.Path, "/") {
		return fmt.Errorf("telemetry.path %q must start with /", c.Telemetry.Path)
	}

	return nil
}

// Load parses config from defaults, an optional YAML file and PANELDECK_ env vars,
// then validates it.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"server.port":             8080,
		"server.host":             "0.0.0.0",
		"server.max_body_size_mb": 1,
		"server.mode":             "release",
		"server.base_path":        "/api",
		"database.type":           "postgres",
		"database.dsn":            "",
		"database.max_open_conns": 25,
		"database.max_idle_conns": 25,
		"database.auto_migrate":   true,
		"database.seed_path":      "",
		"collections.config_dir":  "./config/collections",
		"auth.jwt_secret":         "",
		"cache.enabled":           true,
		"cache.backend":           "memory",
		"cache.ttl":               "30s",
		"cache.capacity":          1024,
		"cache.redis.address":     "",
		"cache.redis.password":    "",
		"cache.redis.db":          0,
		"telemetry.enabled":       true,
		"telemetry.path":          "/metrics",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".", -1)
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Server.BasePath = strings.TrimSuffix(cfg.Server.BasePath, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
