// Package config loads datefield settings.
//
// Settings come from, in increasing precedence: built-in defaults, a TOML or
// YAML file (chosen by extension), DATEFIELD_* environment variables and
// command line flags (applied by the caller). A missing file is not an error.
//
//	[locale]
//	tag = "de-DE"
//	pattern = "dd.MM.yyyy"
//
//	[macros]
//	file = "~/.config/datefield/special.chars"
//	script = "~/.config/datefield/macros.lua"
//	watch = true
//	defaults = true
//
//	[document]
//	maxLength = 0
//	autoRepair = false
//
//	[logging]
//	level = "info"
package config
