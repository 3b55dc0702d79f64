package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline, cache and HTTP event to a logger at
// debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through l, prefixed "hooks".
func NewLogHooks(l *log.Logger) *LogHooks {
	return &LogHooks{logger: l.WithPrefix("hooks")}
}

func (h *LogHooks) OnComposeStart(_ context.Context, books int) {
	h.logger.Debug("compose start", "books", books)
}

func (h *LogHooks) OnComposeComplete(_ context.Context, books int, d time.Duration, err error) {
	h.done("compose", d, err, "books", books)
}

func (h *LogHooks) OnEmitStart(_ context.Context, books int) {
	h.logger.Debug("emit start", "books", books)
}

func (h *LogHooks) OnEmitComplete(_ context.Context, shapes int, d time.Duration, err error) {
	h.done("emit", d, err, "shapes", shapes)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", d, err, "formats", formats)
}

func (h *LogHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h *LogHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Debug("request error", "method", method, "path", path, "err", err)
}

func (h *LogHooks) done(stage string, d time.Duration, err error, kv ...any) {
	kv = append(kv, "duration", d)
	if err != nil {
		h.logger.Debug(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
