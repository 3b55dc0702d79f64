package scene

import (
	"fmt"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/item"
	"github.com/matzehuels/bookrack/pkg/random"
)

// Scene is a composed rack plus what it was built from.
type Scene struct {
	Rack       *item.Rack
	Specs      []item.BookSpec
	Background color.Color
}

type samplers struct {
	height, width, edge, obi, shadow random.Generator
	colors                           *random.ColorGenerator
}

// Build validates cfg and draws cfg.Books books from a source seeded with
// cfg.Seed.
//
// For every book the draws happen in a fixed order: height, width, edge
// ratio, obi ratio, shadow ratio, then the base colour, the edge colour
// (only when an edge was drawn) and the obi colour (only when an obi was
// drawn). A ratio of zero means the part is absent.
func Build(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := color.ParseHex(cfg.Background)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfiguration, err, "background")
	}

	s, err := newSamplers(cfg)
	if err != nil {
		return nil, err
	}

	alpha := uint8(cfg.Alpha)
	specs := make([]item.BookSpec, 0, cfg.Books)
	items := make([]item.Item, 0, cfg.Books)
	for i := 0; i < cfg.Books; i++ {
		h := random.One(s.height)
		w := random.One(s.width)
		e := random.One(s.edge)
		o := random.One(s.obi)
		r := random.One(s.shadow)

		spec := item.BookSpec{Height: h, Width: w, BaseColor: s.colors.Next().WithAlpha(alpha)}
		if e != 0 {
			c := s.colors.Next().WithAlpha(alpha)
			spec.EdgeRatio, spec.EdgeColor = &e, &c
		}
		if o != 0 {
			c := s.colors.Next().WithAlpha(alpha)
			spec.ObiRatio, spec.ObiColor = &o, &c
		}
		if !cfg.Flat {
			level := min(max(w*cfg.ShadowLevelFactor, 0), 1)
			spec.ShadowLevel, spec.ShadowRatio = &level, &r
		}

		b, err := item.NewBook(spec)
		if err != nil {
			return nil, fmt.Errorf("book %d: %w", i, err)
		}
		specs = append(specs, spec)
		items = append(items, b)
	}

	rack, err := item.NewRack(items...)
	if err != nil {
		return nil, err
	}
	return &Scene{Rack: rack, Specs: specs, Background: bg}, nil
}

func newSamplers(cfg Config) (*samplers, error) {
	rng := random.NewSource(cfg.Seed)
	var s samplers
	for _, d := range []struct {
		name string
		dist Distribution
		dst  *random.Generator
	}{
		{"height", cfg.Height, &s.height},
		{"width", cfg.Width, &s.width},
		{"edge", cfg.Edge, &s.edge},
		{"obi", cfg.Obi, &s.obi},
		{"shadow", cfg.Shadow, &s.shadow},
	} {
		g, err := d.dist.Generator(rng)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dst = g
	}

	cmap, err := random.ColorMapByName(cfg.ColorMap)
	if err != nil {
		return nil, err
	}
	unit, err := random.Uniform(rng, 0, 1)
	if err != nil {
		return nil, err
	}
	s.colors = random.NewColorGenerator(unit, cmap)
	return &s, nil
}
