package geometry

import "fmt"

// Rect is an axis-aligned rectangle defined by its top-left origin and size.
//
// Width and height are expected to be non-negative; the type does not
// enforce this, so constructing a negative-area rect is a caller error.
type Rect struct {
	Origin Point `json:"origin"`
	Size   Size  `json:"size"`
}

// NewRect returns the rect with the given origin and size.
func NewRect(origin Point, size Size) Rect {
	return Rect{Origin: origin, Size: size}
}

// RectAt is shorthand for NewRect(Pt(x, y), Sz(w, h)).
func RectAt(x, y, w, h float64) Rect {
	return Rect{Origin: Pt(x, y), Size: Sz(w, h)}
}

// MaxX returns the exclusive right edge of the rect.
func (r Rect) MaxX() float64 {
	return r.Origin.X + r.Size.Width
}

// MaxY returns the exclusive bottom edge of the rect.
func (r Rect) MaxY() float64 {
	return r.Origin.Y + r.Size.Height
}

// Scaled returns the rect with origin and size both multiplied by factor.
func (r Rect) Scaled(factor float64) Rect {
	return Rect{Origin: r.Origin.Scaled(factor), Size: r.Size.Scaled(factor)}
}

// Rounded returns the rect with origin and size rounded to the nearest
// integer values.
func (r Rect) Rounded() Rect {
	return Rect{Origin: r.Origin.Rounded(), Size: r.Size.Rounded()}
}

// IsPointVisible reports whether p lies inside the rect. Containment is
// half-open on both axes: the origin edges are inside, the max edges are not.
func (r Rect) IsPointVisible(p Point) bool {
	return p.X >= r.Origin.X && p.X < r.MaxX() &&
		p.Y >= r.Origin.Y && p.Y < r.MaxY()
}

// IsRectVisible reports whether other lies fully inside the rect.
// Containment is inclusive: a rect is visible inside itself.
func (r Rect) IsRectVisible(other Rect) bool {
	return other.Origin.X >= r.Origin.X && other.Origin.Y >= r.Origin.Y &&
		other.MaxX() <= r.MaxX() && other.MaxY() <= r.MaxY()
}

// IterPoint returns the row-major successor of p inside the rect: Y advances
// by one, and on reaching MaxY the scan moves to the top of the next column.
// The second return value is false once the successor would leave the rect.
func (r Rect) IterPoint(p Point) (Point, bool) {
	next := Pt(p.X, p.Y+1)
	if next.Y >= r.MaxY() {
		next = Pt(p.X+1, r.Origin.Y)
	}
	if !r.IsPointVisible(next) {
		return Point{}, false
	}
	return next, true
}

func (r Rect) String() string {
	return fmt.Sprintf("%v %v", r.Origin, r.Size)
}
