package observability

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnComposeStart(ctx, 32)
	p.OnComposeComplete(ctx, 32, time.Second, nil)
	p.OnEmitStart(ctx, 32)
	p.OnEmitComplete(ctx, 120, time.Second, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "scene")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "GET", "/rack.svg")
	h.OnResponse(ctx, "GET", "/rack.svg", 200, time.Second)
	h.OnError(ctx, "GET", "/rack.svg", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }

func TestInstall(t *testing.T) {
	Reset()
	defer Reset()

	if Install(struct{}{}) {
		t.Error("Install should report false for a value with no hook methods")
	}
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("a failed Install should leave the defaults")
	}

	h := NewLogHooks(log.New(io.Discard))
	if !Install(h) {
		t.Fatal("Install(LogHooks) = false")
	}
	if Pipeline() != PipelineHooks(h) || Cache() != CacheHooks(h) || HTTP() != HTTPHooks(h) {
		t.Error("LogHooks should be installed for all three interfaces")
	}

	cacheOnly := &testCacheHooks{}
	Install(cacheOnly)
	if Cache() != CacheHooks(cacheOnly) {
		t.Error("cache hooks not replaced")
	}
	if Pipeline() != PipelineHooks(h) {
		t.Error("installing cache hooks should keep the pipeline hooks")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel}))
	ctx := context.Background()

	h.OnComposeStart(ctx, 32)
	h.OnComposeComplete(ctx, 32, time.Millisecond, nil)
	h.OnEmitComplete(ctx, 0, time.Millisecond, errors.New("width must be positive"))
	h.OnCacheHit(ctx, CacheKindArtifact)
	h.OnCacheSet(ctx, CacheKindScene, 512)
	h.OnResponse(ctx, "GET", "/rack.svg", 200, time.Millisecond)

	out := buf.String()
	for _, want := range []string{
		"compose start", "books=32", "compose done",
		"emit failed", "width must be positive",
		"cache hit", "kind=artifact", "bytes=512",
		"status=200", "hooks",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnRequest(context.Background(), "GET", "/healthz")
	if buf.Len() != 0 {
		t.Errorf("expected no output at info level, got %q", buf.String())
	}
}
