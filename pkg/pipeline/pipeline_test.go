package pipeline

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bookrack/pkg/cache"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/observability"
	"github.com/matzehuels/bookrack/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Scene == nil || opts.Scene.Books != scene.Default().Books {
		t.Errorf("Scene should default to scene.Default(), got %+v", opts.Scene)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale should be %v, got %v", DefaultScale, opts.Scale)
	}
	if opts.Margin != DefaultMargin {
		t.Errorf("Margin should be %v, got %v", DefaultMargin, opts.Margin)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{"png"}, Scale: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	cfg, formats, scale := opts.Scene, opts.Formats, opts.Scale

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if opts.Scene != cfg {
		t.Error("Scene changed on second call")
	}
	if len(opts.Formats) != len(formats) || opts.Formats[0] != formats[0] {
		t.Error("Formats changed on second call")
	}
	if opts.Scale != scale {
		t.Error("Scale changed on second call")
	}
}

func TestOptionsValidation(t *testing.T) {
	badScene := scene.Default()
	badScene.Books = -1

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"negative margin", Options{Margin: -0.5}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"bad scene", Options{Scene: &badScene}, errors.ErrCodeConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

func TestSceneHash(t *testing.T) {
	a := scene.Default()
	b := scene.Default()
	b.Seed = 99

	optsA := Options{Scene: &a}
	optsB := Options{Scene: &b}
	if optsA.SceneHash() == optsB.SceneHash() {
		t.Error("different seeds should hash differently")
	}

	// an unset presence and an explicit 1 describe the same scene
	c := scene.Default()
	c.Height.Presence = nil
	d := scene.Default()
	one := 1.0
	d.Height.Presence = &one
	optsC, optsD := Options{Scene: &c}, Options{Scene: &d}
	if optsC.SceneHash() != optsD.SceneHash() {
		t.Error("normalized configs should hash equally")
	}

	nilScene := Options{}
	if nilScene.SceneHash() != optsA.SceneHash() {
		t.Error("nil scene should hash like scene.Default()")
	}
}

func smallScene(seed uint64) *scene.Config {
	cfg := scene.Default()
	cfg.Seed = seed
	cfg.Books = 5
	return &cfg
}

func TestExecute(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Scene:   smallScene(3),
		Formats: []string{FormatSVG, FormatPNG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if _, err := uuid.Parse(res.RunID); err != nil {
		t.Errorf("RunID %q is not a uuid: %v", res.RunID, err)
	}
	if res.Stats.Books != 5 || len(res.Scene.Specs) != 5 {
		t.Errorf("Books = %d, want 5", res.Stats.Books)
	}
	if res.Stats.Shapes == 0 || res.Stats.Shapes != res.Display.Len() {
		t.Errorf("Shapes = %d, display has %d", res.Stats.Shapes, res.Display.Len())
	}
	// default scenes are shaded, so every shape is a gradient strip
	if res.Stats.Gradients != res.Stats.Shapes {
		t.Errorf("Gradients = %d, Shapes = %d", res.Stats.Gradients, res.Stats.Shapes)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact does not contain <svg")
	}
	if !bytes.HasPrefix(res.Artifacts[FormatPNG], []byte("\x89PNG")) {
		t.Error("png artifact lacks PNG signature")
	}
	if !bytes.Contains(res.Artifacts[FormatJSON], []byte(`"shapes"`)) {
		t.Error("json artifact lacks shapes")
	}
	if res.CacheInfo.ComposeHit || res.CacheInfo.RenderHit {
		t.Error("NullCache run should not report hits")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	run := func(seed uint64) []byte {
		t.Helper()
		res, err := r.Execute(ctx, Options{Scene: smallScene(seed)})
		if err != nil {
			t.Fatalf("Execute: %v", err)
		}
		return res.Artifacts[FormatSVG]
	}

	if !bytes.Equal(run(11), run(11)) {
		t.Error("same seed should give identical SVG")
	}
	if bytes.Equal(run(11), run(12)) {
		t.Error("different seeds should give different SVG")
	}
}

func TestExecuteSample(t *testing.T) {
	tests := []struct {
		name          string
		flat          bool
		wantGradients int
	}{
		{"shaded", false, 4},
		{"flat", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := scene.Default()
			cfg.Flat = tt.flat
			res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Scene: &cfg, Sample: true})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.Stats.Books != 1 {
				t.Errorf("Books = %d, want 1", res.Stats.Books)
			}
			// base, two edges and the obi
			if res.Stats.Shapes != 4 {
				t.Errorf("Shapes = %d, want 4", res.Stats.Shapes)
			}
			if res.Stats.Gradients != tt.wantGradients {
				t.Errorf("Gradients = %d, want %d", res.Stats.Gradients, tt.wantGradients)
			}
		})
	}
}

func TestExecuteCaching(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Scene: smallScene(5), Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.ComposeHit || first.CacheInfo.RenderHit {
		t.Error("first run should miss")
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.ComposeHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit, got %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached SVG differs from rendered SVG")
	}
	if first.RunID == second.RunID {
		t.Error("each run should get its own id")
	}

	opts.Refresh = true
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh Execute: %v", err)
	}
	if third.CacheInfo.ComposeHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should bypass the cache")
	}

	// a different scale is a different artifact
	opts.Refresh = false
	opts.Scale = 3
	fourth, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("rescaled Execute: %v", err)
	}
	if !fourth.CacheInfo.ComposeHit || fourth.CacheInfo.RenderHit {
		t.Errorf("rescaled run should reuse the scene only, got %+v", fourth.CacheInfo)
	}
}

func TestExecuteHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetPipelineHooks(h)
	defer observability.Reset()

	if _, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Scene: smallScene(1)}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{"compose", "compose done", "emit", "emit done", "render", "render done"}
	if len(h.events) != len(want) {
		t.Fatalf("events = %v, want %v", h.events, want)
	}
	for i := range want {
		if h.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, h.events[i], want[i])
		}
	}
}

func TestRunnerClose(t *testing.T) {
	if err := NewRunner(nil, nil, nil).Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

type recordingHooks struct {
	observability.NoopPipelineHooks
	events []string
}

func (h *recordingHooks) OnComposeStart(context.Context, int) { h.events = append(h.events, "compose") }
func (h *recordingHooks) OnComposeComplete(context.Context, int, time.Duration, error) {
	h.events = append(h.events, "compose done")
}
func (h *recordingHooks) OnEmitStart(context.Context, int) { h.events = append(h.events, "emit") }
func (h *recordingHooks) OnEmitComplete(context.Context, int, time.Duration, error) {
	h.events = append(h.events, "emit done")
}
func (h *recordingHooks) OnRenderStart(context.Context, []string) { h.events = append(h.events, "render") }
func (h *recordingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.events = append(h.events, "render done")
}
