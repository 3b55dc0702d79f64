package gradient

import (
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
)

// FullStops returns the lighting profile of a whole rectangle: dark at both
// edges, brightest on [shadowPoint, 1-shadowPoint].
//
// The edge colour is base*(1-shadowLevel). The result always has exactly
// four stops at progress 0, shadowPoint, 1-shadowPoint and 1.
func FullStops(base [3]float64, shadowLevel, shadowPoint float64) (Stops, error) {
	if err := validateShadow(base, shadowLevel, shadowPoint); err != nil {
		return nil, err
	}

	b := color.UnitRGB(base)
	edge := b.Scale(1 - shadowLevel)
	return Stops{
		{Color: edge, Progress: 0},
		{Color: b, Progress: shadowPoint},
		{Color: b, Progress: 1 - shadowPoint},
		{Color: edge, Progress: 1},
	}, nil
}

// PartialStops returns the profile of a stripe that covers the outer
// partialPoint fraction of a rectangle lit by FullStops with the same
// shadowLevel and shadowPoint.
//
// Without reverse the stripe is the left one: its outer (dark) edge is at
// progress 0. With reverse it is the right one, mirrored.
//
// When shadowPoint < partialPoint the stripe reaches full brightness and
// three stops are returned. Otherwise the stripe stays in the dark ramp and
// two stops are returned, the inner one interpolated along the ramp.
func PartialStops(base [3]float64, shadowLevel, shadowPoint, partialPoint float64, reverse bool) (Stops, error) {
	if err := validateShadow(base, shadowLevel, shadowPoint); err != nil {
		return nil, err
	}
	if err := errors.ValidateRange(errors.ErrCodeConfiguration, "partial_point", partialPoint, errors.Closed(0), errors.Closed(0.5)); err != nil {
		return nil, err
	}

	b := color.UnitRGB(base)
	edge := b.Scale(1 - shadowLevel)

	if shadowPoint < partialPoint {
		// the stripe's inner part is fully lit
		ratio := shadowPoint / partialPoint
		if reverse {
			return Stops{
				{Color: b, Progress: 0},
				{Color: b, Progress: 1 - ratio},
				{Color: edge, Progress: 1},
			}, nil
		}
		return Stops{
			{Color: edge, Progress: 0},
			{Color: b, Progress: ratio},
			{Color: b, Progress: 1},
		}, nil
	}

	// the stripe ends inside the dark ramp
	ratio := 0.0
	if shadowPoint > 0 {
		ratio = partialPoint / shadowPoint
	}
	inner := b.Scale(1 - shadowLevel + shadowLevel*ratio)
	if reverse {
		return Stops{
			{Color: inner, Progress: 0},
			{Color: edge, Progress: 1},
		}, nil
	}
	return Stops{
		{Color: edge, Progress: 0},
		{Color: inner, Progress: 1},
	}, nil
}

func validateShadow(base [3]float64, shadowLevel, shadowPoint float64) error {
	for i, v := range base {
		if err := errors.ValidateRange(errors.ErrCodeConfiguration, "base_color", v, errors.Closed(0), errors.Closed(1)); err != nil {
			return errors.Wrap(errors.ErrCodeConfiguration, err, "channel %d", i)
		}
	}
	if err := errors.ValidateRange(errors.ErrCodeConfiguration, "shadow_level", shadowLevel, errors.Closed(0), errors.Closed(1)); err != nil {
		return err
	}
	return errors.ValidateRange(errors.ErrCodeConfiguration, "shadow_point", shadowPoint, errors.Closed(0), errors.Closed(0.5))
}
