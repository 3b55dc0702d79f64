package io

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// ReadScene decodes a scene configuration from r over [scene.Default] and
// validates it.
//
// ReadScene returns an error if:
//   - The input is malformed for the given format
//   - It contains keys that are not part of the configuration
//   - The resulting configuration fails validation
//
// An empty input yields the default scene. ReadScene does not close r.
func ReadScene(r io.Reader, format Format) (scene.Config, error) {
	cfg := scene.Default()

	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&cfg)
		if err != nil {
			return scene.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			sort.Strings(keys)
			return scene.Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return scene.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil && !stderrors.Is(err, io.EOF) {
			return scene.Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
		}
	default:
		return scene.Config{}, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}

	if err := cfg.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}

// ImportScene reads a scene file, choosing the format from its extension.
func ImportScene(path string) (scene.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return scene.Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene file %s", path)
		}
		return scene.Config{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := ReadScene(f, FormatFromPath(path))
	if err != nil {
		return scene.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
