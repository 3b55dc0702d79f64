package sink

import (
	"encoding/json"

	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/item"
	"github.com/matzehuels/bookrack/pkg/render/surface"
)

type jsonOutput struct {
	Width      float64         `json:"width"`
	Height     float64         `json:"height"`
	Scale      float64         `json:"scale"`
	Margin     float64         `json:"margin"`
	Background *color.Color    `json:"background,omitempty"`
	Seed       *uint64         `json:"seed,omitempty"`
	Bounds     jsonBounds      `json:"bounds"`
	Books      []item.BookSpec `json:"books,omitempty"`
	Shapes     []jsonShape     `json:"shapes"`
}

type jsonBounds struct {
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type jsonShape struct {
	Kind    surface.Kind `json:"kind"`
	Points  [][2]float64 `json:"points"`
	Fill    *color.Color `json:"fill,omitempty"`
	Corners [][2]float64 `json:"corners,omitempty"`
	Row     []string     `json:"row,omitempty"` // #rrggbbaa samples
}

// RenderJSON exports the display list in scene coordinates as a
// pretty-printed JSON document. Gradient rows are written as 8-bit hex
// samples. With [WithBooks] and [WithSeed] the document also carries what
// is needed to rebuild the scene.
func RenderJSON(rec *surface.Recorder, opts ...Option) ([]byte, error) {
	c := newConfig(opts)
	f := NewFrame(rec, c.scale, c.margin)

	out := jsonOutput{
		Width:      f.Width(),
		Height:     f.Height(),
		Scale:      f.Scale,
		Margin:     f.Margin,
		Background: c.background,
		Bounds:     jsonBounds{MinX: f.Min.X, MinY: f.Min.Y, MaxX: f.Max.X, MaxY: f.Max.Y},
		Books:      c.books,
		Shapes:     make([]jsonShape, 0, rec.Len()),
	}
	if c.hasSeed {
		seed := c.seed
		out.Seed = &seed
	}

	for _, s := range rec.Shapes() {
		js := jsonShape{Kind: s.Kind, Points: pairs(s.Points), Fill: s.Fill}
		if s.Kind == surface.KindGradient {
			js.Corners = pairs(s.Corners.Points())
			js.Row = make([]string, len(s.Row))
			for i, u := range s.Row {
				n := u.NRGBA()
				js.Row[i] = color.RGB(n.R, n.G, n.B).WithAlpha(n.A).Hex()
			}
		}
		out.Shapes = append(out.Shapes, js)
	}

	return json.MarshalIndent(out, "", "  ")
}

func pairs(points []surface.Point) [][2]float64 {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.X, p.Y}
	}
	return out
}
