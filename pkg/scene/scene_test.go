package scene

import (
	"strings"
	"testing"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"negative books", func(c *Config) { c.Books = -1 }, "books"},
		{"bad background", func(c *Config) { c.Background = "eee1d1" }, "background"},
		{"alpha too big", func(c *Config) { c.Alpha = 300 }, "alpha"},
		{"unknown colormap", func(c *Config) { c.ColorMap = "sepia" }, "colormap"},
		{"unknown kind", func(c *Config) { c.Height.Kind = "poisson" }, "height.kind"},
		{"negative std", func(c *Config) { c.Width.Std = -1 }, "width.std"},
		{"presence above one", func(c *Config) { c.Edge.Presence = ptr(1.5) }, "edge.presence"},
		{"presence zero", func(c *Config) { c.Obi.Presence = ptr(0.0) }, "obi.presence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, errors.ErrCodeConfiguration) {
				t.Fatalf("Validate() = %v, want %s", err, errors.ErrCodeConfiguration)
			}
			if msg := errors.UserMessage(err); !strings.HasPrefix(msg, tt.field+" ") {
				t.Errorf("message %q should start with %q", msg, tt.field)
			}
		})
	}
}

func TestBuildDefault(t *testing.T) {
	sc, err := Build(Default())
	if err != nil {
		t.Fatal(err)
	}
	if sc.Rack.Len() != 32 || len(sc.Specs) != 32 {
		t.Fatalf("books = %d/%d, want 32", sc.Rack.Len(), len(sc.Specs))
	}
	if sc.Background.Hex() != DefaultBackground {
		t.Errorf("background = %s", sc.Background.Hex())
	}

	edges, obis := 0, 0
	for i, s := range sc.Specs {
		if s.Height <= 20 || s.Height >= 40 {
			t.Errorf("book %d height %v outside (20, 40)", i, s.Height)
		}
		if s.Width <= 2 || s.Width >= 6 {
			t.Errorf("book %d width %v outside (2, 6)", i, s.Width)
		}
		if a, ok := s.BaseColor.Alpha(); !ok || a != 180 {
			t.Errorf("book %d alpha = %v, %v", i, a, ok)
		}
		if s.ShadowLevel == nil || *s.ShadowLevel != s.Width/8 {
			t.Errorf("book %d shadow level = %v, want width/8", i, s.ShadowLevel)
		}
		if s.EdgeRatio != nil {
			edges++
			if *s.EdgeRatio <= 0.1 || *s.EdgeRatio >= 0.3 {
				t.Errorf("book %d edge ratio %v outside (0.1, 0.3)", i, *s.EdgeRatio)
			}
		}
		if s.ObiRatio != nil {
			obis++
		}
	}
	if edges == 0 || edges == 32 || obis == 0 {
		t.Errorf("optional parts look wrong: %d edges, %d obis", edges, obis)
	}

	rec := surface.NewRecorder()
	if err := sc.Rack.Emit(surface.Point{}, rec); err != nil {
		t.Fatal(err)
	}
	if rec.Count(surface.KindGradient) != rec.Len() || rec.Len() != 32+2*edges+obis {
		t.Errorf("shapes = %d (%d gradients), want %d", rec.Len(), rec.Count(surface.KindGradient), 32+2*edges+obis)
	}
}

func TestBuildDeterministic(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	a, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Build(cfg)
	for i := range a.Specs {
		if a.Specs[i].Width != b.Specs[i].Width || a.Specs[i].BaseColor != b.Specs[i].BaseColor {
			t.Fatalf("book %d differs between builds", i)
		}
	}

	cfg.Seed = 100
	c, _ := Build(cfg)
	if c.Specs[0].Width == a.Specs[0].Width {
		t.Error("different seeds should give different scenes")
	}
}

func TestBuildFlat(t *testing.T) {
	cfg := Default()
	cfg.Flat = true
	cfg.Books = 5
	sc, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	rec := surface.NewRecorder()
	if err := sc.Rack.Emit(surface.Point{}, rec); err != nil {
		t.Fatal(err)
	}
	if rec.Count(surface.KindGradient) != 0 {
		t.Error("flat scenes should have no gradients")
	}
	for _, s := range sc.Specs {
		if s.ShadowLevel != nil {
			t.Error("flat scene book has a shadow")
		}
	}
}

func TestBuildConstantScene(t *testing.T) {
	cfg := Default()
	cfg.Books = 3
	cfg.Height = Distribution{Kind: KindConstant, Value: 10}
	cfg.Width = Distribution{Kind: KindConstant, Value: 2}
	cfg.Edge = Distribution{Kind: KindConstant, Value: 0}
	cfg.Obi = Distribution{Kind: KindConstant, Value: 0.25}
	cfg.Shadow = Distribution{Kind: KindUniform, Min: 0.1, Max: 0.2}

	sc, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sc.Specs {
		if s.Height != 10 || s.Width != 2 || s.EdgeRatio != nil || s.ObiRatio == nil || *s.ObiRatio != 0.25 {
			t.Errorf("book %d = %+v", i, s)
		}
		if *s.ShadowRatio < 0.1 || *s.ShadowRatio >= 0.2 {
			t.Errorf("book %d shadow ratio %v outside [0.1, 0.2)", i, *s.ShadowRatio)
		}
	}
}

func TestBuildRejectsBadBooks(t *testing.T) {
	cfg := Default()
	cfg.Edge = Distribution{Kind: KindConstant, Value: 0.7}
	_, err := Build(cfg)
	if !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Fatalf("Build() error = %v", err)
	}
	if !strings.Contains(err.Error(), "book 0") {
		t.Errorf("error should name the book: %v", err)
	}

	cfg = Default()
	cfg.Width = Distribution{Kind: KindUniform, Min: 3, Max: 1}
	if _, err := Build(cfg); !errors.Is(err, errors.ErrCodeConfiguration) {
		t.Errorf("bad uniform: error = %v", err)
	}
}

func TestShadowLevelClamped(t *testing.T) {
	cfg := Default()
	cfg.Books = 2
	cfg.ShadowLevelFactor = 10
	sc, err := Build(cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range sc.Specs {
		if *s.ShadowLevel != 1 {
			t.Errorf("shadow level = %v, want 1", *s.ShadowLevel)
		}
	}
}

func TestSample(t *testing.T) {
	sc, err := Sample(false)
	if err != nil {
		t.Fatal(err)
	}
	rec := surface.NewRecorder()
	if err := sc.Rack.Emit(surface.Point{}, rec); err != nil {
		t.Fatal(err)
	}
	if rec.Count(surface.KindPolygon) != 4 {
		t.Errorf("polygons = %d, want 4", rec.Count(surface.KindPolygon))
	}

	sc, err = Sample(true)
	if err != nil {
		t.Fatal(err)
	}
	rec = surface.NewRecorder()
	_ = sc.Rack.Emit(surface.Point{}, rec)
	if rec.Count(surface.KindGradient) != 4 {
		t.Errorf("gradients = %d, want 4", rec.Count(surface.KindGradient))
	}
}
