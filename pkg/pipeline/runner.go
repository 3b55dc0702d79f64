package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/bookrack/pkg/cache"
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/item"
	"github.com/matzehuels/bookrack/pkg/observability"
	"github.com/matzehuels/bookrack/pkg/render/surface"
	"github.com/matzehuels/bookrack/pkg/scene"
)

// Runner executes pipeline runs against a cache. The CLI and the preview
// server share one; it holds no per-run state, so concurrent Execute calls
// are fine.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner returns a Runner. A nil cache disables caching and a nil keyer
// means cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete compose → emit → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		RunID:     uuid.NewString(),
		SceneHash: opts.SceneHash(),
	}
	logger := opts.Logger.With("run", result.RunID[:8])

	// Stage 1: Compose
	composeStart := time.Now()
	sc, composeHit, err := r.ComposeWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Scene = sc
	result.Stats.Books = len(sc.Specs)
	result.Stats.ComposeTime = time.Since(composeStart)
	result.CacheInfo.ComposeHit = composeHit

	logger.Info("composed rack",
		"books", result.Stats.Books,
		"cached", composeHit,
		"duration", result.Stats.ComposeTime)

	// Stage 2: Emit
	emitStart := time.Now()
	rec, err := r.Emit(ctx, sc)
	if err != nil {
		return nil, fmt.Errorf("emit: %w", err)
	}
	result.Display = rec
	result.Stats.Shapes = rec.Len()
	result.Stats.Gradients = rec.Count(surface.KindGradient)
	result.Stats.EmitTime = time.Since(emitStart)

	logger.Info("emitted shapes",
		"shapes", result.Stats.Shapes,
		"gradients", result.Stats.Gradients,
		"duration", result.Stats.EmitTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, rec, sc, result.SceneHash, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ComposeWithCacheInfo builds the scene and reports whether its book specs
// came from the cache. Cached specs are validated again on the way back in.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, opts Options) (_ *scene.Scene, hit bool, err error) {
	if err := opts.ValidateForCompose(); err != nil {
		return nil, false, err
	}
	books := 1
	if !opts.Sample {
		books = opts.Scene.Books
	}

	hooks := observability.Pipeline()
	hooks.OnComposeStart(ctx, books)
	start := time.Now()
	defer func() { hooks.OnComposeComplete(ctx, books, time.Since(start), err) }()

	if opts.Sample {
		sc, err := scene.Sample(!opts.Scene.Flat)
		return sc, false, err
	}

	cacheKey := r.Keyer.SceneKey(opts.SceneHash())
	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, cacheKey); err == nil && ok {
			if sc, err := sceneFromSpecs(data, opts.Scene.Background); err == nil {
				observability.Cache().OnCacheHit(ctx, observability.CacheKindScene)
				return sc, true, nil
			}
			// fall through and rebuild
		}
		observability.Cache().OnCacheMiss(ctx, observability.CacheKindScene)
	}

	sc, err := scene.Build(*opts.Scene)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(sc.Specs); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.SceneTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, observability.CacheKindScene, len(data))
		}
	}
	return sc, false, nil
}

// Compose is ComposeWithCacheInfo without the hit flag.
func (r *Runner) Compose(ctx context.Context, opts Options) (*scene.Scene, error) {
	sc, _, err := r.ComposeWithCacheInfo(ctx, opts)
	return sc, err
}

// Emit records the rack on a fresh display list, with the rack's
// bottom-left corner at the scene origin.
func (r *Runner) Emit(ctx context.Context, sc *scene.Scene) (_ *surface.Recorder, err error) {
	hooks := observability.Pipeline()
	hooks.OnEmitStart(ctx, sc.Rack.Len())
	start := time.Now()
	rec := surface.NewRecorder()
	defer func() { hooks.OnEmitComplete(ctx, rec.Len(), time.Since(start), err) }()

	if err := sc.Rack.Emit(surface.Point{}, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, rec *surface.Recorder, sc *scene.Scene, sceneHash string, opts Options) (_ map[string][]byte, hit bool, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	defer func() { hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err) }()

	background := sc.Background.Hex()

	// Try to get all formats from cache
	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, background))
			data, ok, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !ok {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, observability.CacheKindArtifact)
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, observability.CacheKindArtifact)
	}

	rendered, err := Render(ctx, rec, sc, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format, background))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.ArtifactTTL); err != nil {
			opts.Logger.Debug("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, observability.CacheKindArtifact, len(data))
	}

	return rendered, false, nil
}

// Close closes the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger fills in the runner's logger when opts has none.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// sceneFromSpecs rebuilds a scene from cached book specs.
func sceneFromSpecs(data []byte, background string) (*scene.Scene, error) {
	var specs []item.BookSpec
	if err := json.Unmarshal(data, &specs); err != nil {
		return nil, err
	}
	bg, err := color.ParseHex(background)
	if err != nil {
		return nil, err
	}
	items := make([]item.Item, len(specs))
	for i, spec := range specs {
		b, err := item.NewBook(spec)
		if err != nil {
			return nil, fmt.Errorf("cached book %d: %w", i, err)
		}
		items[i] = b
	}
	rack, err := item.NewRack(items...)
	if err != nil {
		return nil, err
	}
	return &scene.Scene{Rack: rack, Specs: specs, Background: bg}, nil
}
