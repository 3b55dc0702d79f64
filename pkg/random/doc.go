// Package random provides the seeded samplers used to build random scenes.
//
// Every generator draws from a *rand.Rand passed at construction, normally
// one created by [NewSource], so a scene built from the same seed and the
// same generator sequence is reproducible:
//
//	rng := random.NewSource(42)
//	height, _ := random.BoundedNormal(rng, 30, 6, 10)
//	hs := height.Generate(32)
//
// Optional quantities are modelled as a product of a [Bernoulli] switch and
// a magnitude, which yields 0 when the part is absent:
//
//	edge, _ := random.Product(bernoulli, ratio)
//
// [ColorGenerator] turns a generator of unit samples into 8-bit colours,
// passing each raw triple through a [ColorMap].
package random
