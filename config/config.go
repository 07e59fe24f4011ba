// Package config loads application configuration from environment
// variables, with an optional YAML file overlay for values that are easier
// to keep in deployment manifests.
//
// Load parses the environment first (struct env tags with their defaults),
// then applies the YAML file on top, so keys present in the file win over
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/jazzy-go/jazzy/pkg/db"
	"github.com/jazzy-go/jazzy/pkg/logger"
)

// ErrParse is returned when environment parsing fails.
var ErrParse = errors.New("config: failed to parse environment")

// Config is the aggregate application configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"JAZZY_ADDR" envDefault:":8080" yaml:"addr"`

	// Env selects development or production behavior.
	Env string `env:"JAZZY_ENV" envDefault:"development" yaml:"env"`

	// Secret signs authentication tokens.
	Secret string `env:"JAZZY_SECRET" yaml:"secret"`

	// RedisURL is a redis:// connection URL, empty when Redis is unused.
	RedisURL string `env:"REDIS_URL" yaml:"redis_url"`

	Database db.Config           `yaml:"database"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
}

// Load builds the configuration from the environment and, when path is
// non-empty, overlays the YAML file at path.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	return cfg, nil
}

// MustLoad is Load that panics on failure, for use in main.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsProduction reports whether the configuration targets production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
