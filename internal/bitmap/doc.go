// Package bitmap implements the pixel buffer abstraction and the needle
// search engine: locating a solid color or a sub-image inside a larger
// image within a configurable color tolerance.
//
// # Logical vs Physical Coordinates
//
// A Bitmap pairs an 8-bit RGBA pixel buffer with a logical size and a scale
// factor (physical pixels per logical unit, 2.0 on a typical high-DPI
// capture). Every public coordinate (search rects, start points, match
// results) is in logical units; only pixel indexing converts to the
// physical grid. The buffer dimensions always equal the logical size
// multiplied by the scale, rounded.
//
// # Searching
//
// FindColor and FindBitmap return the first match in scan order; the
// FindEvery and CountOf variants enumerate or count all matches. The scan
// walks the search rect with X outer and Y inner, and an exhaustive search
// resumes one cell after each match, so every cell is visited at most once
// and overlapping matches are all reported.
//
// # Tolerance
//
// Tolerance is a fraction in [0, 1] of the maximum possible Euclidean RGB
// distance: 0 demands exact (R, G, B) equality and 1 matches anything.
// Alpha never participates in comparison.
//
// # Concurrency
//
// A Bitmap is immutable after construction and owns its buffer exclusively;
// Cropped returns a deep copy. Distinct goroutines may search the same
// Bitmap concurrently without synchronization.
package bitmap
