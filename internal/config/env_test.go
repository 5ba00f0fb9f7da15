package config

import (
	"errors"
	"testing"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
}

func TestApplyEnvFrom(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnvFrom(lookupFrom(map[string]string{
		"DATEFIELD_LOCALE":         "ko",
		"DATEFIELD_PATTERN":        "yyyy. MM. dd",
		"DATEFIELD_MACROS":         "/tmp/special.chars",
		"DATEFIELD_SCRIPT":         "/tmp/macros.lua",
		"DATEFIELD_WATCH":          "off",
		"DATEFIELD_DEFAULT_MACROS": "no",
		"DATEFIELD_MAX_LENGTH":     " 12 ",
		"DATEFIELD_AUTO_REPAIR":    "yes",
		"DATEFIELD_LOG_LEVEL":      "warn",
		"DATEFIELD_LOG_FILE":       "/tmp/datefield.log",
		"OTHER_LOCALE":             "de",
	}))
	if err != nil {
		t.Fatalf("ApplyEnvFrom() error: %v", err)
	}

	want := Config{
		Locale:   LocaleConfig{Tag: "ko", Pattern: "yyyy. MM. dd"},
		Macros:   MacrosConfig{File: "/tmp/special.chars", Script: "/tmp/macros.lua"},
		Document: DocumentConfig{MaxLength: 12, AutoRepair: true},
		Logging:  LoggingConfig{Level: "warn", File: "/tmp/datefield.log"},
	}
	if *cfg != want {
		t.Errorf("config = %+v\nwant     %+v", *cfg, want)
	}
}

func TestApplyEnvFrom_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{"bad bool", map[string]string{"DATEFIELD_WATCH": "maybe"}, "macros.watch"},
		{"bad int", map[string]string{"DATEFIELD_MAX_LENGTH": "ten"}, "document.maxLength"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			err := cfg.ApplyEnvFrom(lookupFrom(tt.env))

			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("ApplyEnvFrom() error = %v, want *ValidationError", err)
			}
			if ve.Path != tt.path {
				t.Errorf("ValidationError.Path = %q, want %q", ve.Path, tt.path)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("error does not wrap ErrValidationFailed")
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("DATEFIELD_LOCALE", "lv")
	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv() error: %v", err)
	}
	if cfg.Locale.Tag != "lv" {
		t.Errorf("locale.tag = %q, want lv", cfg.Locale.Tag)
	}
}
