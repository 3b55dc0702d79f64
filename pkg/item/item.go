package item

import (
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// Item is anything that can be placed in a rack.
type Item interface {
	// Width is the horizontal space the item takes up in its parent.
	Width() (float64, error)
	// Emit draws the item with its bottom-left corner at origin.
	Emit(origin surface.Point, s surface.Surface) error
}

var (
	_ Item = Book{}
	_ Item = (*Rack)(nil)
	_ Item = Spacer{}
)
