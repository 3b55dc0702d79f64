// Package scene builds random book racks from a declarative configuration.
//
// A [Config] names one distribution per book dimension, plus the colour
// settings shared by all books. [Build] draws every book from a single
// seeded source, in a fixed order, so the same configuration always
// yields the same rack:
//
//	cfg := scene.Default()
//	cfg.Seed = 7
//	sc, err := scene.Build(cfg)
//	// sc.Rack is ready to Emit; sc.Specs lists the books it holds
//
// [Default] reproduces the classic demo scene: 32 books of height
// N(30, 6) within ±10, width N(4, 0.5) kept positive, edges on 60% and
// obis on 80% of the books, dechromic colours at alpha 180 on a warm
// paper background.
//
// Configurations are validated with go-playground/validator before use.
// Validation failures are CONFIGURATION errors naming the offending key,
// for example "height.kind".
package scene
