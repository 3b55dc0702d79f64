package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/bookrack/pkg/errors"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension. Files without
// a known extension are read as TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return FormatTOML
}

// ParseFormat accepts "toml", "yaml"/"yml" or "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q (valid: toml, yaml, json)", s)
}
