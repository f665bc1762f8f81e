package settings

import (
	"fmt"
	"strings"
)

// Format selects the serialization used for the config file. The zero value is JSON.
type Format int

const (
	JSON Format = iota
	YAML
	TOML
	INI
	Pickle
)

const defaultBaseName = "config"

var formatNames = [...]string{
	JSON:   "json",
	YAML:   "yaml",
	TOML:   "toml",
	INI:    "ini",
	Pickle: "pickle",
}

// Formats returns all supported formats in declaration order.
func Formats() []Format {
	return []Format{JSON, YAML, TOML, INI, Pickle}
}

func (f Format) valid() bool {
	return f >= 0 && int(f) < len(formatNames)
}

// String returns the lower-case format name, e.g. "yaml".
func (f Format) String() string {
	if !f.valid() {
		return fmt.Sprintf("format(%d)", int(f))
	}
	return formatNames[f]
}

// Extension returns the canonical file extension including the leading dot,
// or an empty string for an unknown format.
func (f Format) Extension() string {
	if !f.valid() {
		return ""
	}
	return "." + formatNames[f]
}

// DefaultName returns the default config file name for the format, e.g. "config.toml".
func (f Format) DefaultName() string {
	return defaultBaseName + f.Extension()
}

// ParseFormat parses a format name or file extension. Matching is case-insensitive,
// a leading dot is accepted and "yml" is an alias for YAML.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	if name == "yml" {
		return YAML, nil
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
