package item

import (
	"fmt"
	"math"

	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// Rack places its items side by side, left to right, without gaps.
type Rack struct {
	items []Item
}

// NewRack fails if any item is nil.
func NewRack(items ...Item) (*Rack, error) {
	for i, it := range items {
		if it == nil {
			return nil, errors.New(errors.ErrCodeConstruction, "rack item %d is nil", i)
		}
	}
	return &Rack{items: append([]Item(nil), items...)}, nil
}

// Items returns a copy of the rack's children.
func (r *Rack) Items() []Item { return append([]Item(nil), r.items...) }

// Len returns the number of children.
func (r *Rack) Len() int { return len(r.items) }

// Width is not defined for a rack.
func (r *Rack) Width() (float64, error) {
	return 0, errors.New(errors.ErrCodeUnsupported, "rack width is not defined")
}

// Emit draws each child at the running origin, then advances x by that
// child's width. A child whose width is unknown aborts the pass before it
// is drawn.
func (r *Rack) Emit(origin surface.Point, s surface.Surface) error {
	cur := origin
	for i, it := range r.items {
		w, err := it.Width()
		if err != nil {
			return fmt.Errorf("rack item %d: %w", i, err)
		}
		if err := it.Emit(cur, s); err != nil {
			return fmt.Errorf("rack item %d: %w", i, err)
		}
		cur.X += w
	}
	return nil
}

// Spacer is an empty slot of fixed width.
type Spacer struct {
	width float64
}

// NewSpacer fails for negative or non-finite widths.
func NewSpacer(width float64) (Spacer, error) {
	if math.IsNaN(width) || math.IsInf(width, 0) || width < 0 {
		return Spacer{}, errors.New(errors.ErrCodeConstruction, "spacer width must be a non-negative number, got %v", width)
	}
	return Spacer{width: width}, nil
}

// Width implements Item.
func (s Spacer) Width() (float64, error) { return s.width, nil }

// Emit implements Item. It draws nothing.
func (Spacer) Emit(surface.Point, surface.Surface) error { return nil }
