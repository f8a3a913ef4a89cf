package geometry

import (
	"fmt"
	"math"
)

// Point is a location in 2D space, in logical units.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zero is the point at the origin.
var Zero = Point{}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Scaled returns the point with both coordinates multiplied by factor.
func (p Point) Scaled(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Rounded returns the point with both coordinates rounded to the nearest
// integer value.
func (p Point) Rounded() Point {
	return Point{X: math.Round(p.X), Y: math.Round(p.Y)}
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
