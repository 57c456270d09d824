// Package config loads the server configuration
package config

import (
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/KirkDiggler/npc-world-api/internal/errors"
)

// Config is the top-level server configuration
type Config struct {
	Environment string      `yaml:"environment"`
	LogLevel    string      `yaml:"log_level"`
	World       WorldConfig `yaml:"world"`
	Nats        NatsConfig  `yaml:"nats"`
	Redis       RedisConfig `yaml:"redis"`

	// Operators lists the player ids with operator permissions
	Operators []string `yaml:"operators"`
}

// WorldConfig seeds the world state store
type WorldConfig struct {
	Name      string `yaml:"name"`
	TimeOfDay string `yaml:"time_of_day"`
	Weather   string `yaml:"weather"`
}

// NatsConfig configures the embedded notification broker
type NatsConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// RedisConfig selects the optional redis-backed NPC registry. When Endpoint
// is empty the in-memory registry is used.
type RedisConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Environment: "development",
		LogLevel:    "info",
		Nats: NatsConfig{
			Host: "127.0.0.1",
			Port: 4222,
		},
	}
}

// Load reads the configuration from a YAML file, applying defaults for
// anything unset
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's flag
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		vb.Fieldf("log_level", "unknown level %q", c.LogLevel)
	}

	if c.Nats.Port < 0 || c.Nats.Port > 65535 {
		vb.Fieldf("nats.port", "must be between 0 and 65535, got %d", c.Nats.Port)
	}

	return vb.Build()
}

// SlogLevel maps the configured log level onto slog
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
