package scene

import (
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/item"
)

// Reference colours of the sample book.
var (
	SampleTeal  = color.RGB(12, 200, 180)
	SampleGreen = color.RGB(80, 200, 180)
)

// SampleSpec is the single reference book: 30 x 4.8, light gray with teal
// edges of ratio 0.15 and a green obi of ratio 0.22. With shadow it is lit
// with level 0.5 and ratio 0.3.
func SampleSpec(shadow bool) item.BookSpec {
	spec := item.BookSpec{
		Height:    30,
		Width:     4.8,
		BaseColor: color.Gray(240),
		EdgeRatio: ptr(0.15),
		EdgeColor: ptr(SampleTeal),
		ObiRatio:  ptr(0.22),
		ObiColor:  ptr(SampleGreen),
	}
	if shadow {
		spec.ShadowLevel, spec.ShadowRatio = ptr(0.5), ptr(0.3)
	}
	return spec
}

// Sample returns the reference book as a one-book scene.
func Sample(shadow bool) (*Scene, error) {
	spec := SampleSpec(shadow)
	b, err := item.NewBook(spec)
	if err != nil {
		return nil, err
	}
	rack, err := item.NewRack(b)
	if err != nil {
		return nil, err
	}
	return &Scene{Rack: rack, Specs: []item.BookSpec{spec}, Background: color.MustParseHex(DefaultBackground)}, nil
}
