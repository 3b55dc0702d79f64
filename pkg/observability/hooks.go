// Package observability provides hooks for metrics, tracing, and logging.
//
// Hooks let a program watch pipeline runs, cache traffic and preview server
// requests without the libraries depending on a metrics backend. Every hook
// has a no-op default. The program registers its own implementations once
// at startup, so libraries never import them.
//
// # Usage
//
// The CLI installs [LogHooks] with --verbose, which writes every event to the
// debug log:
//
//	observability.Install(observability.NewLogHooks(logger))
//
// The pipeline and the preview server report through the registry:
//
//	observability.Pipeline().OnComposeStart(ctx, books)
//	// ... build the rack ...
//	observability.Pipeline().OnComposeComplete(ctx, books, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pipeline Hooks
// =============================================================================

// PipelineHooks receives events from the compose, emit and render stages.
type PipelineHooks interface {
	// Compose events
	OnComposeStart(ctx context.Context, books int)
	OnComposeComplete(ctx context.Context, books int, duration time.Duration, err error)

	// Emit events
	OnEmitStart(ctx context.Context, books int)
	OnEmitComplete(ctx context.Context, shapes int, duration time.Duration, err error)

	// Render events
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// Cache kinds reported to CacheHooks.
const (
	CacheKindScene    = "scene"    // composed book specs
	CacheKindArtifact = "artifact" // rendered svg/png/pdf/json bytes
)

// CacheHooks receives cache lookups and writes, tagged with a cache kind.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the preview server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the status and latency of a served request.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)

	// OnError records a request that failed inside a handler.
	OnError(ctx context.Context, method, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPipelineHooks is a no-op implementation of PipelineHooks.
type NoopPipelineHooks struct{}

func (NoopPipelineHooks) OnComposeStart(context.Context, int)                              {}
func (NoopPipelineHooks) OnComposeComplete(context.Context, int, time.Duration, error)     {}
func (NoopPipelineHooks) OnEmitStart(context.Context, int)                                 {}
func (NoopPipelineHooks) OnEmitComplete(context.Context, int, time.Duration, error)        {}
func (NoopPipelineHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPipelineHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, error)                 {}

// =============================================================================
// Registry
// =============================================================================

var registry = struct {
	sync.RWMutex
	pipeline PipelineHooks
	cache    CacheHooks
	http     HTTPHooks
}{
	pipeline: NoopPipelineHooks{},
	cache:    NoopCacheHooks{},
	http:     NoopHTTPHooks{},
}

// SetPipelineHooks registers pipeline hooks. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.pipeline = h
	registry.Unlock()
}

// SetCacheHooks registers cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// SetHTTPHooks registers HTTP hooks. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.http = h
	registry.Unlock()
}

// Install registers h for every hook interface it implements and
// reports whether it implemented any.
func Install(h any) bool {
	p, isPipeline := h.(PipelineHooks)
	c, isCache := h.(CacheHooks)
	x, isHTTP := h.(HTTPHooks)
	if isPipeline {
		SetPipelineHooks(p)
	}
	if isCache {
		SetCacheHooks(c)
	}
	if isHTTP {
		SetHTTPHooks(x)
	}
	return isPipeline || isCache || isHTTP
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.pipeline
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.http
}

// Reset restores the no-op hooks.
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	registry.pipeline = NoopPipelineHooks{}
	registry.cache = NoopCacheHooks{}
	registry.http = NoopHTTPHooks{}
}
