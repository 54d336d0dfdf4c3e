package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Flag is a boolean that accepts the loose spellings operators tend to put
// in environment files: "1", "true" and "yes" (any case) are true, anything
// else is false.
type Flag bool

func parseFlag(s string) Flag {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// UnmarshalText implements encoding.TextUnmarshaler for env parsing.
func (f *Flag) UnmarshalText(text []byte) error {
	*f = parseFlag(string(text))
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (f *Flag) UnmarshalYAML(value *yaml.Node) error {
	*f = parseFlag(value.Value)
	return nil
}
