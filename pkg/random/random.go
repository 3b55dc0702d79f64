package random

import (
	"math"
	"math/rand/v2"

	"github.com/matzehuels/bookrack/pkg/errors"
)

// Generator produces n samples per call.
type Generator interface {
	Generate(n int) []float64
}

// NewSource returns a PCG-backed generator for seed.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// UniformGenerator samples uniformly from [Min, Max).
type UniformGenerator struct {
	Min, Max float64
	rng      *rand.Rand
}

// Uniform returns a generator over [min, max). It fails unless min < max.
func Uniform(rng *rand.Rand, min, max float64) (*UniformGenerator, error) {
	if !(min < max) {
		return nil, errors.New(errors.ErrCodeConfiguration, "uniform: min must be less than max, got %v >= %v", min, max)
	}
	return &UniformGenerator{Min: min, Max: max, rng: rng}, nil
}

// Generate implements Generator.
func (g *UniformGenerator) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Min + g.rng.Float64()*(g.Max-g.Min)
	}
	return out
}

// NormalGenerator samples a normal distribution. When HalfRange is positive,
// draws with |v-Mean| >= HalfRange are rejected and drawn again.
type NormalGenerator struct {
	Mean, Std float64
	HalfRange float64
	rng       *rand.Rand
}

// Normal returns an unbounded normal generator.
func Normal(rng *rand.Rand, mean, std float64) (*NormalGenerator, error) {
	if err := checkNormal(mean, std); err != nil {
		return nil, err
	}
	return &NormalGenerator{Mean: mean, Std: std, rng: rng}, nil
}

// BoundedNormal returns a normal generator truncated to the open interval
// (mean-halfRange, mean+halfRange).
func BoundedNormal(rng *rand.Rand, mean, std, halfRange float64) (*NormalGenerator, error) {
	if err := checkNormal(mean, std); err != nil {
		return nil, err
	}
	if err := errors.ValidatePositive(errors.ErrCodeConfiguration, "half_range", halfRange); err != nil {
		return nil, err
	}
	return &NormalGenerator{Mean: mean, Std: std, HalfRange: halfRange, rng: rng}, nil
}

// PositiveNormal bounds the distribution to (mean/2, 3*mean/2), which keeps
// samples of a positive mean strictly positive.
func PositiveNormal(rng *rand.Rand, mean, std float64) (*NormalGenerator, error) {
	if !(mean > 0) {
		return nil, errors.New(errors.ErrCodeConfiguration, "positive normal: mean must be positive, got %v", mean)
	}
	return BoundedNormal(rng, mean, std, mean/2)
}

func checkNormal(mean, std float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return errors.New(errors.ErrCodeConfiguration, "normal: mean must be finite, got %v", mean)
	}
	if math.IsNaN(std) || math.IsInf(std, 0) || std < 0 {
		return errors.New(errors.ErrCodeConfiguration, "normal: std must be finite and non-negative, got %v", std)
	}
	return nil
}

// Generate implements Generator.
func (g *NormalGenerator) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.draw()
	}
	return out
}

func (g *NormalGenerator) draw() float64 {
	for {
		v := g.Mean + g.rng.NormFloat64()*g.Std
		if g.HalfRange <= 0 || math.Abs(v-g.Mean) < g.HalfRange {
			return v
		}
	}
}

// BernoulliGenerator yields 1 with probability P and 0 otherwise.
type BernoulliGenerator struct {
	P   float64
	rng *rand.Rand
}

// Bernoulli fails unless 0 < p < 1.
func Bernoulli(rng *rand.Rand, p float64) (*BernoulliGenerator, error) {
	if err := errors.ValidateRange(errors.ErrCodeConfiguration, "probability", p, errors.Open(0), errors.Open(1)); err != nil {
		return nil, err
	}
	return &BernoulliGenerator{P: p, rng: rng}, nil
}

// Generate implements Generator.
func (g *BernoulliGenerator) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		if g.rng.Float64() < g.P {
			out[i] = 1
		}
	}
	return out
}

// ConstantGenerator always yields Value.
type ConstantGenerator struct {
	Value float64
}

// Constant returns a generator that ignores randomness.
func Constant(v float64) ConstantGenerator { return ConstantGenerator{Value: v} }

// Generate implements Generator.
func (g ConstantGenerator) Generate(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = g.Value
	}
	return out
}

// ProductGenerator multiplies the samples of its factors elementwise.
type ProductGenerator struct {
	factors []Generator
}

// Product needs at least one factor. Factors are sampled in order, each
// for the full batch, before the next factor is drawn.
func Product(factors ...Generator) (*ProductGenerator, error) {
	if len(factors) == 0 {
		return nil, errors.New(errors.ErrCodeConfiguration, "product: at least one factor is required")
	}
	for i, f := range factors {
		if f == nil {
			return nil, errors.New(errors.ErrCodeConfiguration, "product: factor %d is nil", i)
		}
	}
	return &ProductGenerator{factors: append([]Generator(nil), factors...)}, nil
}

// Generate implements Generator.
func (g *ProductGenerator) Generate(n int) []float64 {
	out := g.factors[0].Generate(n)
	for _, f := range g.factors[1:] {
		for i, v := range f.Generate(n) {
			out[i] *= v
		}
	}
	return out
}

// One draws a single sample from g.
func One(g Generator) float64 {
	return g.Generate(1)[0]
}

var (
	_ Generator = (*UniformGenerator)(nil)
	_ Generator = (*NormalGenerator)(nil)
	_ Generator = (*BernoulliGenerator)(nil)
	_ Generator = ConstantGenerator{}
	_ Generator = (*ProductGenerator)(nil)
)
