// Package pipeline provides the compose → emit → render pipeline for bookrack.
//
// The CLI and the preview server both go through a [Runner], so a scene file
// rendered from the command line and the same scene requested over HTTP
// produce identical bytes.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Compose: draw the books of a scene configuration and pack them into a rack
//  2. Emit: walk the rack and record its shapes on a display list
//  3. Render: replay the display list into SVG, PNG, PDF or JSON
//
// Compose and Render are cached. Emit is cheap and always runs.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	cfg := scene.Default()
//	cfg.Seed = 7
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Scene:   &cfg,
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bookrack/pkg/cache"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/sink"
	"github.com/matzehuels/bookrack/pkg/render/surface"
	"github.com/matzehuels/bookrack/pkg/scene"
)

const (
	// DefaultScale is the default number of pixels per scene unit.
	DefaultScale = sink.DefaultScale

	// DefaultMargin is the default margin around the rack in scene units.
	DefaultMargin = sink.DefaultMargin
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Compose options
	Scene   *scene.Config `json:"scene,omitempty"`   // nil means scene.Default()
	Sample  bool          `json:"sample,omitempty"`  // render the single reference book instead
	Refresh bool          `json:"refresh,omitempty"` // ignore cached entries

	// Render options
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Margin  float64  `json:"margin,omitempty"`
	Title   string   `json:"title,omitempty"`

	Logger *log.Logger `json:"-"` // nil discards

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID identifies this run in logs and server responses.
	RunID string

	// Scene is the composed rack and the specs it was built from.
	Scene *scene.Scene

	// SceneHash is the content hash of the scene configuration.
	SceneHash string

	// Display is the emitted display list.
	Display *surface.Recorder

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Books       int
	Shapes      int
	Gradients   int
	ComposeTime time.Duration
	EmitTime    time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ComposeHit bool // Whether the book specs came from cache
	RenderHit  bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the scene and render options and applies
// defaults. Calling it again does nothing.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCompose fills in the default scene and validates it.
func (o *Options) ValidateForCompose() error {
	if o.Scene == nil {
		cfg := scene.Default()
		o.Scene = &cfg
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Sample {
		return nil
	}
	return o.Scene.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := errors.ValidatePositive(errors.ErrCodeInvalidInput, "scale", o.Scale); err != nil {
		return err
	}
	return errors.ValidatePositive(errors.ErrCodeInvalidInput, "margin", o.Margin)
}

// SceneHash returns the content hash of what Compose will build.
func (o *Options) SceneHash() string {
	if o.Sample {
		return cache.HashJSON(struct {
			Sample bool `json:"sample"`
			Shadow bool `json:"shadow"`
		}{true, o.Scene == nil || !o.Scene.Flat})
	}
	cfg := scene.Default()
	if o.Scene != nil {
		cfg = *o.Scene
	}
	return cache.HashJSON(cfg.Normalized())
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format, background string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Scale:      o.Scale,
		Margin:     o.Margin,
		Background: background,
		Title:      o.Title,
	}
}
