package bitmap

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxColorDelta is the largest possible Euclidean distance between two
// 8-bit RGB colors: sqrt(3 * 255²). A tolerance t accepts any pair of
// colors whose distance is at most t * MaxColorDelta.
const MaxColorDelta = 441.6729559300637

// ErrInvalidTolerance reports a tolerance outside the [0, 1] range.
var ErrInvalidTolerance = errors.New("tolerance outside [0, 1]")

// ColorsMatch reports whether two colors are sufficiently similar under the
// given tolerance. Alpha is ignored.
//
// Tolerance is a fraction in [0, 1] of MaxColorDelta: 0 requires an exact
// (R, G, B) match and 1 matches any pair of colors. Values outside the
// range return ErrInvalidTolerance.
func ColorsMatch(c1, c2 color.RGBA, tolerance float64) (bool, error) {
	if err := validTolerance(tolerance); err != nil {
		return false, err
	}
	return colorsMatch(c1, c2, tolerance), nil
}

func validTolerance(tolerance float64) error {
	if tolerance < 0 || tolerance > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidTolerance, tolerance)
	}
	return nil
}

// maxUnitDelta is MaxColorDelta on go-colorful's unit-normalized channels.
var maxUnitDelta = math.Sqrt(3)

// colorsMatch assumes tolerance has already been validated.
func colorsMatch(c1, c2 color.RGBA, tolerance float64) bool {
	if tolerance == 0 {
		return c1.R == c2.R && c1.G == c2.G && c1.B == c2.B
	}
	return asColorful(c1).DistanceRgb(asColorful(c2)) <= tolerance*maxUnitDelta
}

func asColorful(c color.RGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
