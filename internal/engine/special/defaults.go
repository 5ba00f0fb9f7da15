package special

import (
	_ "embed"
	"strings"
)

//go:embed defaults/special.chars
var defaultRules string

// DefaultSource returns the built-in macro file.
func DefaultSource() string { return defaultRules }

// Defaults parses the built-in macro file.
func Defaults() Map {
	m, _ := Parse(strings.NewReader(defaultRules))
	return m
}
