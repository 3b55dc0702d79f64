package scene

import (
	"math/rand/v2"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/random"
)

// Distribution kinds.
const (
	KindConstant = "constant"
	KindUniform  = "uniform"
	KindNormal   = "normal"
	KindPositive = "positive"
)

// Distribution describes how one per-book quantity is sampled.
//
//   - constant: always Value
//   - uniform: [Min, Max)
//   - normal: N(Mean, Std), truncated to ±HalfRange when HalfRange > 0
//   - positive: N(Mean, Std) truncated to ±Mean/2
//
// Presence, when set below 1, makes the quantity optional: it is zero
// (absent) with probability 1-Presence. Unset means always present.
type Distribution struct {
	Kind      string   `toml:"kind" yaml:"kind" json:"kind" validate:"required,oneof=constant uniform normal positive"`
	Value     float64  `toml:"value" yaml:"value" json:"value"`
	Min       float64  `toml:"min" yaml:"min" json:"min"`
	Max       float64  `toml:"max" yaml:"max" json:"max"`
	Mean      float64  `toml:"mean" yaml:"mean" json:"mean"`
	Std       float64  `toml:"std" yaml:"std" json:"std" validate:"gte=0"`
	HalfRange float64  `toml:"half_range" yaml:"half_range" json:"half_range" validate:"gte=0"`
	Presence  *float64 `toml:"presence,omitempty" yaml:"presence,omitempty" json:"presence,omitempty" validate:"omitempty,gt=0,lte=1"`
}

// Generator builds the sampler described by d on rng.
func (d Distribution) Generator(rng *rand.Rand) (random.Generator, error) {
	var (
		g   random.Generator
		err error
	)
	switch d.Kind {
	case KindConstant:
		g = random.Constant(d.Value)
	case KindUniform:
		g, err = random.Uniform(rng, d.Min, d.Max)
	case KindNormal:
		if d.HalfRange > 0 {
			g, err = random.BoundedNormal(rng, d.Mean, d.Std, d.HalfRange)
		} else {
			g, err = random.Normal(rng, d.Mean, d.Std)
		}
	case KindPositive:
		g, err = random.PositiveNormal(rng, d.Mean, d.Std)
	default:
		return nil, errors.New(errors.ErrCodeConfiguration, "unknown distribution kind %q", d.Kind)
	}
	if err != nil {
		return nil, err
	}

	if d.Presence == nil || *d.Presence >= 1 {
		return g, nil
	}
	on, err := random.Bernoulli(rng, *d.Presence)
	if err != nil {
		return nil, err
	}
	return random.Product(on, g)
}

// Config is a complete scene description.
type Config struct {
	Seed  uint64 `toml:"seed" yaml:"seed" json:"seed"`
	Books int    `toml:"books" yaml:"books" json:"books" validate:"gte=0,lte=10000"`

	Background string `toml:"background" yaml:"background" json:"background" validate:"required,hexcolor"`
	Alpha      int    `toml:"alpha" yaml:"alpha" json:"alpha" validate:"gte=0,lte=255"`
	ColorMap   string `toml:"colormap" yaml:"colormap" json:"colormap" validate:"colormap"`

	// Flat disables lighting gradients.
	Flat bool `toml:"flat" yaml:"flat" json:"flat"`
	// ShadowLevelFactor sets each book's shadow level to width*factor,
	// clamped to [0, 1].
	ShadowLevelFactor float64 `toml:"shadow_level_factor" yaml:"shadow_level_factor" json:"shadow_level_factor" validate:"gte=0"`

	Height Distribution `toml:"height" yaml:"height" json:"height"`
	Width  Distribution `toml:"width" yaml:"width" json:"width"`
	Edge   Distribution `toml:"edge" yaml:"edge" json:"edge"`
	Obi    Distribution `toml:"obi" yaml:"obi" json:"obi"`
	Shadow Distribution `toml:"shadow" yaml:"shadow" json:"shadow"`
}

// Default background of a rack.
const DefaultBackground = "#eee1d1"

// Default returns the classic demo configuration.
func Default() Config {
	return Config{
		Seed:              0,
		Books:             32,
		Background:        DefaultBackground,
		Alpha:             180,
		ColorMap:          "dechromic",
		ShadowLevelFactor: 1.0 / 8,
		Height:            Distribution{Kind: KindNormal, Mean: 30, Std: 6, HalfRange: 10},
		Width:             Distribution{Kind: KindPositive, Mean: 4, Std: 0.5},
		Edge:              Distribution{Kind: KindPositive, Mean: 0.2, Std: 0.05, Presence: ptr(0.6)},
		Obi:               Distribution{Kind: KindNormal, Mean: 0.33, Std: 0.1, HalfRange: 0.1, Presence: ptr(0.8)},
		Shadow:            Distribution{Kind: KindNormal, Mean: 0.3, Std: 0.1, HalfRange: 0.1},
	}
}

// Normalized returns c with every unset Presence written out as 1, so that
// an encoded copy decodes to the same scene regardless of defaults.
func (c Config) Normalized() Config {
	for _, d := range []*Distribution{&c.Height, &c.Width, &c.Edge, &c.Obi, &c.Shadow} {
		if d.Presence == nil {
			d.Presence = ptr(1.0)
		} else {
			d.Presence = ptr(*d.Presence)
		}
	}
	return c
}

func ptr[T any](v T) *T { return &v }
