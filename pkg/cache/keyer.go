package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key namespaces.
const (
	scenePrefix    = "scene:"
	artifactPrefix = "artifact:"
)

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale"`
	Margin     float64 `json:"margin"`
	Background string  `json:"background,omitempty"`
	Title      string  `json:"title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// SceneKey identifies a composed scene (its book specs).
	SceneKey(sceneHash string) string
	// ArtifactKey identifies one rendered output of a scene.
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "scene:<hash>" and "artifact:<format>:<digest>",
// where digest covers the scene hash and every render option. The format
// stays readable so entries can be found with redis-cli.
type DefaultKeyer struct{}

func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) SceneKey(sceneHash string) string {
	return scenePrefix + sceneHash
}

func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return artifactPrefix + opts.Format + ":" + HashJSON([]any{sceneHash, opts})
}

// ScopedKeyer prefixes the keys of another Keyer, which keeps the preview
// server's entries apart from CLI runs sharing one redis.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SceneKey(sceneHash string) string {
	return k.prefix + k.inner.SceneKey(sceneHash)
}

func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of v. Struct fields encode in
// declaration order and map keys sorted, so equal values hash equally.
// Values JSON cannot encode fall back to their %#v form.
func HashJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		data = []byte(fmt.Sprintf("%#v", v))
	}
	return Hash(data)
}
