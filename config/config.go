// Package config handles loading and managing application configuration
// from YAML files, an optional .env file and environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/qrgen/qr"
)

// Config holds all application configuration values.
type Config struct {
	Host         string   `yaml:"host"`
	Port         int      `yaml:"port"`
	Level        string   `yaml:"level"`
	BoostLevel   bool     `yaml:"boost_level"`
	DisplaySize  int      `yaml:"display_size"`
	Border       int      `yaml:"border"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	LogLevel     string   `yaml:"log_level"`
}

// Duration is a wrapper around time.Duration that supports YAML unmarshalling
// from human-readable strings like "30s", "5m", "1h".
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Defaults returns a Config populated with the built-in values: loopback
// only, Medium error correction and a 300 pixel display frame.
func Defaults() *Config {
	return &Config{
		Host:         "127.0.0.1",
		Port:         8556,
		Level:        "medium",
		DisplaySize:  300,
		Border:       4,
		ReadTimeout:  Duration{30 * time.Second},
		WriteTimeout: Duration{30 * time.Second},
		LogLevel:     "info",
	}
}

// Load reads configuration from the YAML file at path, falling back to
// defaults if the file does not exist. Variables from a .env file in the
// working directory are loaded into the environment (without replacing
// ones already set), then QRGEN_ variables override file or default values.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// File doesn't exist, proceed with defaults.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies QRGEN_* environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRGEN_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("QRGEN_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := os.Getenv("QRGEN_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("QRGEN_BOOST_LEVEL"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			cfg.BoostLevel = true
		case "false", "0", "no":
			cfg.BoostLevel = false
		}
	}
	if v := os.Getenv("QRGEN_DISPLAY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DisplaySize = n
		}
	}
	if v := os.Getenv("QRGEN_BORDER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Border = n
		}
	}
	if v := os.Getenv("QRGEN_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ReadTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.WriteTimeout = Duration{d}
		}
	}
	if v := os.Getenv("QRGEN_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if _, err := c.ECLevel(); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if c.DisplaySize < 21 || c.DisplaySize > 4096 {
		return fmt.Errorf("display_size %d must be between 21 and 4096", c.DisplaySize)
	}
	if c.Border < 0 || c.Border > 16 {
		return fmt.Errorf("border %d must be between 0 and 16", c.Border)
	}
	return nil
}

// ECLevel returns the configured error correction level.
func (c *Config) ECLevel() (qr.Level, error) {
	return qr.ParseLevel(c.Level)
}

// Addr is the listen address of the web surface.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
