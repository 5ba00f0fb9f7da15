package config

import (
	"os"
	"strconv"
	"strings"
)

// EnvPrefix starts every environment variable the config reads.
const EnvPrefix = "DATEFIELD_"

type envSetting struct {
	name  string
	path  string
	apply func(c *Config, v string) error
}

var envSettings = []envSetting{
	{"LOCALE", "locale.tag", func(c *Config, v string) error { c.Locale.Tag = v; return nil }},
	{"PATTERN", "locale.pattern", func(c *Config, v string) error { c.Locale.Pattern = v; return nil }},
	{"MACROS", "macros.file", func(c *Config, v string) error { c.Macros.File = v; return nil }},
	{"SCRIPT", "macros.script", func(c *Config, v string) error { c.Macros.Script = v; return nil }},
	{"WATCH", "macros.watch", boolSetter(func(c *Config) *bool { return &c.Macros.Watch })},
	{"DEFAULT_MACROS", "macros.defaults", boolSetter(func(c *Config) *bool { return &c.Macros.Defaults })},
	{"MAX_LENGTH", "document.maxLength", intSetter(func(c *Config) *int { return &c.Document.MaxLength })},
	{"AUTO_REPAIR", "document.autoRepair", boolSetter(func(c *Config) *bool { return &c.Document.AutoRepair })},
	{"LOG_LEVEL", "logging.level", func(c *Config, v string) error { c.Logging.Level = v; return nil }},
	{"LOG_FILE", "logging.file", func(c *Config, v string) error { c.Logging.File = v; return nil }},
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom overrides settings from lookup. Unparsable values are
// reported as validation errors and leave the setting unchanged.
func (c *Config) ApplyEnvFrom(lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		v, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		if err := s.apply(c, v); err != nil {
			return &ValidationError{Path: s.path, Value: v, Message: "from " + EnvPrefix + s.name + ": " + err.Error()}
		}
	}
	return nil
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}
}

func intSetter(field func(*Config) *int) func(*Config, string) error {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		*field(c) = n
		return nil
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, strconv.ErrSyntax
	}
}
