package item

import (
	"fmt"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
	"github.com/matzehuels/bookrack/pkg/gradient"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

// BookSpec describes a book before validation. Optional parts are set by
// giving both of their pointer fields.
type BookSpec struct {
	Height    float64     `json:"height"`
	Width     float64     `json:"width"`
	BaseColor color.Color `json:"base_color"`

	EdgeRatio *float64     `json:"edge_ratio,omitempty"`
	EdgeColor *color.Color `json:"edge_color,omitempty"`

	ObiRatio *float64     `json:"obi_ratio,omitempty"`
	ObiColor *color.Color `json:"obi_color,omitempty"`

	ShadowLevel *float64 `json:"shadow_level,omitempty"`
	ShadowRatio *float64 `json:"shadow_ratio,omitempty"`
}

// Role names a rectangle of a book.
type Role string

const (
	RoleBase      Role = "base"
	RoleLeftEdge  Role = "edge_left"
	RoleRightEdge Role = "edge_right"
	RoleObi       Role = "obi"
)

// Part is one rectangle of a book in scene coordinates.
type Part struct {
	Role  Role
	Quad  surface.Quad
	Color color.Color
}

type part struct {
	set   bool
	ratio float64
	color color.Color
}

type shadow struct {
	set   bool
	level float64
	ratio float64
}

// Book is a validated, immutable book.
type Book struct {
	height, width float64
	base          color.Color
	edge, obi     part
	shadow        shadow
}

// NewBook validates spec and returns the book it describes.
func NewBook(spec BookSpec) (Book, error) {
	if err := errors.ValidatePositive(errors.ErrCodeConstruction, "height", spec.Height); err != nil {
		return Book{}, err
	}
	if err := errors.ValidatePositive(errors.ErrCodeConstruction, "width", spec.Width); err != nil {
		return Book{}, err
	}
	if err := pairing("edge_ratio", spec.EdgeRatio != nil, "edge_color", spec.EdgeColor != nil); err != nil {
		return Book{}, err
	}
	if err := pairing("obi_ratio", spec.ObiRatio != nil, "obi_color", spec.ObiColor != nil); err != nil {
		return Book{}, err
	}
	if err := pairing("shadow_level", spec.ShadowLevel != nil, "shadow_ratio", spec.ShadowRatio != nil); err != nil {
		return Book{}, err
	}

	b := Book{height: spec.Height, width: spec.Width, base: spec.BaseColor}
	if spec.EdgeRatio != nil {
		r := *spec.EdgeRatio
		if err := errors.ValidateRange(errors.ErrCodeConfiguration, "edge_ratio", r, errors.Open(0), errors.Open(0.5)); err != nil {
			return Book{}, err
		}
		b.edge = part{set: true, ratio: r, color: *spec.EdgeColor}
	}
	if spec.ObiRatio != nil {
		r := *spec.ObiRatio
		if err := errors.ValidateRange(errors.ErrCodeConfiguration, "obi_ratio", r, errors.Closed(0), errors.Closed(0.5)); err != nil {
			return Book{}, err
		}
		b.obi = part{set: true, ratio: r, color: *spec.ObiColor}
	}
	if spec.ShadowLevel != nil {
		l, r := *spec.ShadowLevel, *spec.ShadowRatio
		if err := errors.ValidateRange(errors.ErrCodeConfiguration, "shadow_level", l, errors.Closed(0), errors.Closed(1)); err != nil {
			return Book{}, err
		}
		if err := errors.ValidateRange(errors.ErrCodeConfiguration, "shadow_ratio", r, errors.Closed(0), errors.Closed(0.5)); err != nil {
			return Book{}, err
		}
		b.shadow = shadow{set: true, level: l, ratio: r}
	}
	return b, nil
}

func pairing(a string, hasA bool, b string, hasB bool) error {
	if hasA == hasB {
		return nil
	}
	if hasA {
		return errors.New(errors.ErrCodeConstruction, "%s is set but %s is missing", a, b)
	}
	return errors.New(errors.ErrCodeConstruction, "%s is set but %s is missing", b, a)
}

// Width implements Item.
func (b Book) Width() (float64, error) { return b.width, nil }

// Height returns the book's height.
func (b Book) Height() float64 { return b.height }

// HasEdge, HasObi and HasShadow report which optional parts are set.
func (b Book) HasEdge() bool   { return b.edge.set }
func (b Book) HasObi() bool    { return b.obi.set }
func (b Book) HasShadow() bool { return b.shadow.set }

// Spec returns a BookSpec equivalent to b. The pointers are fresh copies.
func (b Book) Spec() BookSpec {
	spec := BookSpec{Height: b.height, Width: b.width, BaseColor: b.base}
	if b.edge.set {
		r, c := b.edge.ratio, b.edge.color
		spec.EdgeRatio, spec.EdgeColor = &r, &c
	}
	if b.obi.set {
		r, c := b.obi.ratio, b.obi.color
		spec.ObiRatio, spec.ObiColor = &r, &c
	}
	if b.shadow.set {
		l, r := b.shadow.level, b.shadow.ratio
		spec.ShadowLevel, spec.ShadowRatio = &l, &r
	}
	return spec
}

// Rects lists the book's rectangles in emission order: base, left and
// right edge, obi.
func (b Book) Rects(origin surface.Point) []Part {
	parts := []Part{{Role: RoleBase, Quad: surface.Rect(origin, b.width, b.height), Color: b.base}}
	if b.edge.set {
		ew := b.width * b.edge.ratio
		right := surface.Point{X: origin.X + b.width - ew, Y: origin.Y}
		parts = append(parts,
			Part{Role: RoleLeftEdge, Quad: surface.Rect(origin, ew, b.height), Color: b.edge.color},
			Part{Role: RoleRightEdge, Quad: surface.Rect(right, ew, b.height), Color: b.edge.color},
		)
	}
	if b.obi.set {
		oh := b.height * b.obi.ratio
		top := surface.Point{X: origin.X, Y: origin.Y + b.height - oh}
		parts = append(parts, Part{Role: RoleObi, Quad: surface.Rect(top, b.width, oh), Color: b.obi.color})
	}
	return parts
}

// Emit implements Item.
func (b Book) Emit(origin surface.Point, s surface.Surface) error {
	for _, p := range b.Rects(origin) {
		if !b.shadow.set {
			fill := p.Color
			s.AddPolygon(p.Quad.Points(), &fill)
			continue
		}
		stops, err := b.stops(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Role, err)
		}
		if err := gradient.Render(s, p.Quad, stops); err != nil {
			return fmt.Errorf("%s: %w", p.Role, err)
		}
	}
	return nil
}

func (b Book) stops(p Part) (gradient.Stops, error) {
	rgb := p.Color.UnitInterval()
	var (
		stops gradient.Stops
		err   error
	)
	switch p.Role {
	case RoleLeftEdge:
		stops, err = gradient.PartialStops(rgb, b.shadow.level, b.shadow.ratio, b.edge.ratio, false)
	case RoleRightEdge:
		stops, err = gradient.PartialStops(rgb, b.shadow.level, b.shadow.ratio, b.edge.ratio, true)
	default:
		stops, err = gradient.FullStops(rgb, b.shadow.level, b.shadow.ratio)
	}
	if err != nil {
		return nil, err
	}
	return stops.WithAlpha(p.Color.Opacity()), nil
}
