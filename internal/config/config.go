// Package config loads tasklist settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file,
// TASKLIST_* environment variables. Command-line flags are applied on top
// by the CLI.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/roach88/tasklist/internal/record"
	"github.com/roach88/tasklist/internal/todo"
)

// EnvPrefix prefixes every environment override, e.g. TASKLIST_DB_PATH.
const EnvPrefix = "TASKLIST"

// Config holds all settings.
type Config struct {
	DBPath        string `mapstructure:"db_path" yaml:"db_path"`
	StorageKey    string `mapstructure:"storage_key" yaml:"storage_key"`
	DefaultFilter string `mapstructure:"default_filter" yaml:"default_filter"`
	DefaultSort   string `mapstructure:"default_sort" yaml:"default_sort"`
	Locale        string `mapstructure:"locale" yaml:"locale"`
	LogLevel      string `mapstructure:"log_level" yaml:"log_level"`
	HTTPAddr      string `mapstructure:"http_addr" yaml:"http_addr"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		DBPath:        filepath.Join(Dir(), "tasks.db"),
		StorageKey:    todo.DefaultKey,
		DefaultFilter: string(record.FilterAll),
		DefaultSort:   string(record.SortDate),
		Locale:        "en",
		LogLevel:      "info",
		HTTPAddr:      "127.0.0.1:8765",
	}
}

// Dir returns the tasklist directory (~/.tasklist), or ".tasklist" if the
// home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tasklist"
	}
	return filepath.Join(home, ".tasklist")
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads settings. An explicit path must exist; when path is empty the
// default file is read if present.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if explicit || !missing {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("db_path", d.DBPath)
	v.SetDefault("storage_key", d.StorageKey)
	v.SetDefault("default_filter", d.DefaultFilter)
	v.SetDefault("default_sort", d.DefaultSort)
	v.SetDefault("locale", d.Locale)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("http_addr", d.HTTPAddr)
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if _, ok := record.ParseFilter(c.DefaultFilter); !ok {
		return fmt.Errorf("invalid default_filter %q: must be one of %v", c.DefaultFilter, record.Filters)
	}
	if _, ok := record.ParseSortMode(c.DefaultSort); !ok {
		return fmt.Errorf("invalid default_sort %q: must be one of %v", c.DefaultSort, record.SortModes)
	}
	if _, err := c.LocaleTag(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// LocaleTag parses Locale.
func (c *Config) LocaleTag() (language.Tag, error) {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return tag, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
