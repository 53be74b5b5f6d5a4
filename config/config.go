// Package config loads go_dateparse settings from defaults, an optional YAML
// file and DATEPARSE_ environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"go_dateparse/extract"
	"go_dateparse/lexicon"
)

// Config is the effective configuration.
type Config struct {
	Language    string        `mapstructure:"language" yaml:"language"`
	Timezone    string        `mapstructure:"timezone" yaml:"timezone"`
	DefaultTime string        `mapstructure:"default_time" yaml:"default_time"`
	Logging     LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Watch       WatchConfig   `mapstructure:"watch" yaml:"watch"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// WatchConfig controls which files the watcher scans and for what.
type WatchConfig struct {
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
	Marker     string   `mapstructure:"marker" yaml:"marker"`
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory or $HOME/.go_dateparse when configPath is empty.
// Environment variables take precedence: DATEPARSE_LOGGING_LEVEL=debug.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.go_dateparse")
	}

	v.SetEnvPrefix("DATEPARSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// SetDefaults registers the default value of every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("language", "en-us")
	v.SetDefault("timezone", "")
	v.SetDefault("default_time", "")
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("watch.extensions", []string{".md", ".markdown", ".txt"})
	v.SetDefault("watch.marker", "remind_me")
}

// Validate checks the values that cannot be checked by type alone.
func (c *Config) Validate() error {
	if _, err := extract.Canonical(c.Language); err != nil {
		return fmt.Errorf("language: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.DefaultClock(); err != nil {
		return err
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	if strings.TrimSpace(c.Watch.Marker) == "" {
		return fmt.Errorf("watch.marker is required")
	}
	return nil
}

// Location returns the configured time zone, time.Local when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}

// DefaultClock parses default_time ("HH:MM"). It returns nil when unset.
func (c *Config) DefaultClock() (*lexicon.Clock, error) {
	return ParseClock(c.DefaultTime)
}

// ParseClock parses "HH:MM" into a clock; an empty string gives nil.
func ParseClock(s string) (*lexicon.Clock, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return nil, fmt.Errorf("default_time must be HH:MM: %w", err)
	}
	return &lexicon.Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// Dump renders the configuration as YAML.
func (c *Config) Dump() ([]byte, error) {
	return yaml.Marshal(c)
}
