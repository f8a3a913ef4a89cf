package geometry

import (
	"fmt"
	"math"
)

// Size is a width and height pair, in logical units.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Sz is shorthand for Size{Width: w, Height: h}.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// Scaled returns the size with both dimensions multiplied by factor.
func (s Size) Scaled(factor float64) Size {
	return Size{Width: s.Width * factor, Height: s.Height * factor}
}

// Rounded returns the size with both dimensions rounded to the nearest
// integer value.
func (s Size) Rounded() Size {
	return Size{Width: math.Round(s.Width), Height: math.Round(s.Height)}
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
