// Package geometry provides the 2D value types used throughout the bitmap
// search engine: Point, Size, and Rect.
//
// All coordinates are float64 and expressed in logical (scale-independent)
// units. Conversion to a bitmap's physical pixel grid is done by the caller
// via Scaled followed by Rounded.
//
// # Coordinate System
//
// The origin (0,0) is at the top-left corner, X increases rightward and Y
// increases downward. Point containment is half-open: a rect contains points
// in [Origin, Max) on both axes. Rect containment is inclusive: a rect is
// visible inside another when its bounds lie fully within the other's bounds.
//
// # Scan Order
//
// Rect.IterPoint produces the row-major successor of a point inside the
// rect (Y advances first, then X), which drives exhaustive search without
// revisiting cells.
package geometry
