package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// WriteScene encodes cfg in the given format and writes it to w.
// The output can be re-imported with [ReadScene].
func WriteScene(cfg scene.Config, w io.Writer, format Format) error {
	cfg = cfg.Normalized()
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(cfg); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}
	return nil
}

// ExportScene writes cfg to path, choosing the format from its extension.
func ExportScene(cfg scene.Config, path string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteScene(cfg, f, FormatFromPath(path))
}
