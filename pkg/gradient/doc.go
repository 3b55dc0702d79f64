// Package gradient derives and rasterizes the lighting ramps drawn across
// books.
//
// A book is lit brightest in a middle band and darkens toward its left and
// right edges. [FullStops] describes that profile for a whole rectangle as
// four colour stops. [PartialStops] describes a narrower stripe cut from one
// edge of such a rectangle (an edge band), rescaled so the stripe continues
// the same absolute profile as the rectangle it belongs to.
//
// [Row] turns any valid stop sequence into a 1×N strip of samples, and
// [Render] hands that strip to a surface, stretched over a quadrilateral
// and clipped to it.
//
//	stops, err := gradient.FullStops(base.UnitInterval(), 0.5, 0.3)
//	if err != nil {
//	    return err
//	}
//	err = gradient.Render(rec, surface.Rect(origin, w, h), stops)
package gradient
