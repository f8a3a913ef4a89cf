package bitmap

import (
	"fmt"
	"image/color"

	"github.com/ironsheep/bitmap-search-mcp/internal/geometry"
)

// SearchOptions carries the optional parameters shared by every search
// operation. A nil *SearchOptions means: tolerance 0, search the whole
// bitmap, start at the search rect's origin.
type SearchOptions struct {
	// Tolerance is the color tolerance in [0, 1]; see ColorsMatch.
	Tolerance float64

	// Rect restricts the search to a sub-rect of the bitmap's bounds.
	// Nil searches the full bounds.
	Rect *geometry.Rect

	// Start is the point the scan begins from, typically the successor of
	// a previous match. Nil starts at the search rect's origin.
	Start *geometry.Point
}

// searchParams resolves option defaults and validates the search
// preconditions: tolerance in range, rect inside bounds, start inside
// bounds. Validating up front means the scan itself can never index
// outside the buffer.
func (b *Bitmap) searchParams(opts *SearchOptions) (tolerance float64, rect geometry.Rect, start geometry.Point, err error) {
	rect = b.Bounds()
	if opts != nil && opts.Rect != nil {
		rect = *opts.Rect
	}
	start = rect.Origin
	if opts != nil && opts.Start != nil {
		start = *opts.Start
	}
	if opts != nil {
		tolerance = opts.Tolerance
	}
	if err = validTolerance(tolerance); err != nil {
		return
	}
	if !b.Bounds().IsRectVisible(rect) {
		err = fmt.Errorf("%w: search rect %v outside %v", ErrRectOutOfBounds, rect, b.Bounds())
		return
	}
	if !b.Bounds().IsPointVisible(start) {
		err = fmt.Errorf("%w: start point %v outside %v", ErrPointOutOfBounds, start, b.Bounds())
	}
	return
}

// FindColor returns the first point inside the search rect whose pixel
// matches the needle color under the tolerance, or nil if there is none.
func (b *Bitmap) FindColor(needle color.RGBA, opts *SearchOptions) (*geometry.Point, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return nil, err
	}
	return b.find(rect, start, b.colorPredicate(needle, tolerance)), nil
}

// FindEveryColor returns every point inside the search rect whose pixel
// matches the needle color, in ascending row-major scan order.
func (b *Bitmap) FindEveryColor(needle color.RGBA, opts *SearchOptions) ([]geometry.Point, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return nil, err
	}
	var points []geometry.Point
	b.findAll(rect, start, b.colorPredicate(needle, tolerance), func(p geometry.Point) {
		points = append(points, p)
	})
	return points, nil
}

// CountOfColor returns the number of pixels inside the search rect matching
// the needle color. Equivalent to len(FindEveryColor(...)) without
// materializing the slice.
func (b *Bitmap) CountOfColor(needle color.RGBA, opts *SearchOptions) (int, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return 0, err
	}
	count := 0
	b.findAll(rect, start, b.colorPredicate(needle, tolerance), func(geometry.Point) {
		count++
	})
	return count, nil
}

// FindBitmap returns the first point inside the search rect where every
// needle pixel matches the corresponding haystack pixel under the
// tolerance, or nil if there is none.
//
// A needle larger than the haystack in both dimensions can never match and
// returns nil immediately, without scanning.
func (b *Bitmap) FindBitmap(needle PixelSource, opts *SearchOptions) (*geometry.Point, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return nil, err
	}
	if b.isNeedleOversized(needle) {
		return nil, nil
	}
	return b.find(rect, start, b.needlePredicate(needle, tolerance)), nil
}

// FindEveryBitmap returns every point inside the search rect where the
// needle matches, in ascending row-major scan order. Overlapping matches
// are all reported.
func (b *Bitmap) FindEveryBitmap(needle PixelSource, opts *SearchOptions) ([]geometry.Point, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return nil, err
	}
	if b.isNeedleOversized(needle) {
		return nil, nil
	}
	var points []geometry.Point
	b.findAll(rect, start, b.needlePredicate(needle, tolerance), func(p geometry.Point) {
		points = append(points, p)
	})
	return points, nil
}

// CountOfBitmap returns the number of points inside the search rect where
// the needle matches. Equivalent to len(FindEveryBitmap(...)) without
// materializing the slice.
func (b *Bitmap) CountOfBitmap(needle PixelSource, opts *SearchOptions) (int, error) {
	tolerance, rect, start, err := b.searchParams(opts)
	if err != nil {
		return 0, err
	}
	if b.isNeedleOversized(needle) {
		return 0, nil
	}
	count := 0
	b.findAll(rect, start, b.needlePredicate(needle, tolerance), func(geometry.Point) {
		count++
	})
	return count, nil
}

func (b *Bitmap) colorPredicate(needle color.RGBA, tolerance float64) func(geometry.Point) bool {
	return func(p geometry.Point) bool {
		c, err := b.PixelAt(p)
		if err != nil {
			return false
		}
		return colorsMatch(needle, c, tolerance)
	}
}

func (b *Bitmap) needlePredicate(needle PixelSource, tolerance float64) func(geometry.Point) bool {
	return func(p geometry.Point) bool {
		return b.isNeedleAt(p, needle, tolerance)
	}
}

// isNeedleOversized reports whether the needle exceeds the haystack in both
// dimensions. A needle oversized in only one dimension is not fast-rejected
// here; isNeedleAt still rejects every candidate through its bounds check.
func (b *Bitmap) isNeedleOversized(needle PixelSource) bool {
	return needle.Bounds().Size.Width > b.size.Width &&
		needle.Bounds().Size.Height > b.size.Height
}

// isNeedleAt reports whether every needle pixel matches the haystack with
// the needle's origin anchored at pt. A needle pixel falling outside the
// haystack rejects the candidate immediately.
func (b *Bitmap) isNeedleAt(pt geometry.Point, needle PixelSource, tolerance float64) bool {
	bounds := needle.Bounds()
	for x := bounds.Origin.X; x < bounds.MaxX(); x++ {
		for y := bounds.Origin.Y; y < bounds.MaxY(); y++ {
			haystackPoint := geometry.Pt(pt.X+x, pt.Y+y)
			if !b.Bounds().IsPointVisible(haystackPoint) {
				return false
			}
			c1, err := needle.PixelAt(geometry.Pt(x, y))
			if err != nil {
				return false
			}
			c2, err := b.PixelAt(haystackPoint)
			if err != nil {
				return false
			}
			if !colorsMatch(c1, c2, tolerance) {
				return false
			}
		}
	}
	return true
}

// find scans for the first point satisfying the predicate and returns it in
// logical units, or nil when the scan exhausts the rect.
//
// The scan runs on the physical pixel grid with X outer and Y inner. Only
// the first column starts at the start point's Y; later columns cover the
// rect's full Y range. This lets a caller resume mid-column after a match
// without re-scanning the cells above it.
func (b *Bitmap) find(rect geometry.Rect, start geometry.Point, predicate func(geometry.Point) bool) *geometry.Point {
	physRect := rect.Scaled(b.scale).Rounded()
	physStart := start.Scaled(b.scale).Rounded()
	for x := physStart.X; x < physRect.MaxX(); x++ {
		y := physRect.Origin.Y
		if x == physStart.X {
			y = physStart.Y
		}
		for ; y < physRect.MaxY(); y++ {
			point := geometry.Pt(x, y).Scaled(1 / b.scale)
			if predicate(point) {
				return &point
			}
		}
	}
	return nil
}

// findAll repeatedly invokes find, reporting each match and resuming from
// its row-major successor, so the whole exhaustive search visits each cell
// of the rect at most once and matches arrive in ascending scan order.
func (b *Bitmap) findAll(rect geometry.Rect, start geometry.Point, predicate func(geometry.Point) bool, matched func(geometry.Point)) {
	for {
		point := b.find(rect, start, predicate)
		if point == nil {
			return
		}
		matched(*point)
		next, ok := rect.IterPoint(*point)
		if !ok {
			return
		}
		start = next
	}
}
