package sink

import (
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/item"
)

const (
	DefaultScale  = 10.0
	DefaultMargin = 2.0
)

// Option configures every sink.
type Option func(*config)

type config struct {
	scale      float64
	margin     float64
	background *color.Color
	title      string
	books      []item.BookSpec
	seed       uint64
	hasSeed    bool
}

// WithScale sets pixels per scene unit. Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithMargin sets the margin around the scene in scene units.
func WithMargin(m float64) Option {
	return func(c *config) {
		if m >= 0 {
			c.margin = m
		}
	}
}

// WithBackground fills the page with bg.
func WithBackground(bg color.Color) Option {
	return func(c *config) { c.background = &bg }
}

// WithTitle sets the SVG <title>.
func WithTitle(t string) Option { return func(c *config) { c.title = t } }

// WithBooks records the specs the scene was built from in JSON output.
func WithBooks(specs []item.BookSpec) Option {
	return func(c *config) { c.books = specs }
}

// WithSeed records the scene seed in JSON output.
func WithSeed(seed uint64) Option {
	return func(c *config) { c.seed, c.hasSeed = seed, true }
}

func newConfig(opts []Option) config {
	c := config{scale: DefaultScale, margin: DefaultMargin}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
