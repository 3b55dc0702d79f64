package gradient

import (
	"github.com/matzehuels/bookrack/pkg/color"
	"github.com/matzehuels/bookrack/pkg/errors"
)

// Stop anchors a colour at a normalized position along the gradient axis.
type Stop struct {
	Color    color.Unit
	Progress float64
}

// NewStop validates that progress lies in [0, 1].
func NewStop(c color.Unit, progress float64) (Stop, error) {
	if err := errors.ValidateRange(errors.ErrCodeConfiguration, "progress", progress, errors.Closed(0), errors.Closed(1)); err != nil {
		return Stop{}, err
	}
	return Stop{Color: c, Progress: progress}, nil
}

// Stops is an ordered gradient definition.
type Stops []Stop

// Validate checks that there are at least two stops, every progress is in
// [0, 1], and progress never decreases. Equal neighbours are allowed and
// mark an instantaneous transition.
func (s Stops) Validate() error {
	if len(s) < 2 {
		return errors.New(errors.ErrCodeRasterization, "gradient needs at least 2 stops, got %d", len(s))
	}
	for i, st := range s {
		if err := errors.ValidateRange(errors.ErrCodeRasterization, "progress", st.Progress, errors.Closed(0), errors.Closed(1)); err != nil {
			return errors.Wrap(errors.ErrCodeRasterization, err, "stop %d", i)
		}
		if i > 0 && st.Progress < s[i-1].Progress {
			return errors.New(errors.ErrCodeRasterization, "stop %d progress %v is before stop %d progress %v",
				i, st.Progress, i-1, s[i-1].Progress)
		}
	}
	return nil
}

// Progress returns the positions of all stops.
func (s Stops) Progress() []float64 {
	out := make([]float64, len(s))
	for i, st := range s {
		out[i] = st.Progress
	}
	return out
}

// WithAlpha returns a copy of s with every stop's alpha set to a.
func (s Stops) WithAlpha(a float64) Stops {
	out := make(Stops, len(s))
	for i, st := range s {
		st.Color.A = a
		out[i] = st
	}
	return out
}
