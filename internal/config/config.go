package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/dshills/datefield/internal/engine/layout"
	"github.com/dshills/datefield/internal/logging"
)

// Config holds all settings.
type Config struct {
	Locale   LocaleConfig   `toml:"locale" yaml:"locale"`
	Macros   MacrosConfig   `toml:"macros" yaml:"macros"`
	Document DocumentConfig `toml:"document" yaml:"document"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// LocaleConfig selects the date layout.
type LocaleConfig struct {
	// Tag is a BCP 47 locale. Empty means detect from the environment.
	Tag string `toml:"tag" yaml:"tag"`
	// Pattern overrides the locale's layout, e.g. "dd.MM.yyyy".
	Pattern string `toml:"pattern" yaml:"pattern"`
}

// MacrosConfig locates the macro sources.
type MacrosConfig struct {
	File   string `toml:"file" yaml:"file"`
	Script string `toml:"script" yaml:"script"`
	// Watch reloads File when it changes.
	Watch bool `toml:"watch" yaml:"watch"`
	// Defaults enables the built-in macros when File is empty.
	Defaults bool `toml:"defaults" yaml:"defaults"`
}

// DocumentConfig limits the document text.
type DocumentConfig struct {
	MaxLength  int  `toml:"maxLength" yaml:"maxLength"`
	AutoRepair bool `toml:"autoRepair" yaml:"autoRepair"`
}

// LoggingConfig configures the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	// File receives log output instead of stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Macros: MacrosConfig{
			Watch:    true,
			Defaults: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultPath returns the user config file location, or "" if the user
// config directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "datefield", "config.toml")
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"})
	}
	if c.Locale.Pattern != "" {
		if _, err := layout.ParsePattern(c.Locale.Pattern); err != nil {
			errs = append(errs, &ValidationError{Path: "locale.pattern", Value: c.Locale.Pattern, Message: err.Error()})
		}
	}
	if c.Document.MaxLength < 0 {
		errs = append(errs, &ValidationError{Path: "document.maxLength", Value: c.Document.MaxLength, Message: "must not be negative"})
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed logging level, info if invalid.
func (c *Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Logging.Level)
	return level
}

// Pattern returns the layout to use: the explicit pattern if set, otherwise
// the pattern for locale.
func (c *Config) Pattern(locale string) (layout.Pattern, error) {
	if c.Locale.Pattern != "" {
		return layout.ParsePattern(c.Locale.Pattern)
	}
	return layout.ForLocale(locale), nil
}
