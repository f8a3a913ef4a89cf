package bitmap

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/bitmap-search-mcp/internal/geometry"
)

var (
	black = color.RGBA{0, 0, 0, 255}
	red   = color.RGBA{255, 0, 0, 255}
)

// createMarkedImage builds a black image with single red pixels at the
// given physical coordinates.
func createMarkedImage(t *testing.T, width, height int, marks ...image.Point) *image.RGBA {
	t.Helper()

	img := createSolidImage(t, width, height, black)
	for _, m := range marks {
		img.SetRGBA(m.X, m.Y, red)
	}
	return img
}

func TestFindColor_Example(t *testing.T) {
	// 4x4 all black except a red pixel at (2, 1).
	b := New(createMarkedImage(t, 4, 4, image.Pt(2, 1)), 1.0)

	p, err := b.FindColor(red, nil)
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil {
		t.Fatal("FindColor: no match, want (2, 1)")
	}
	if *p != geometry.Pt(2, 1) {
		t.Errorf("FindColor: got %v, want (2, 1)", *p)
	}

	count, err := b.CountOfColor(black, nil)
	if err != nil {
		t.Fatalf("CountOfColor failed: %v", err)
	}
	if count != 15 {
		t.Errorf("CountOfColor(black): got %d, want 15", count)
	}
}

func TestFindColor_NoMatch(t *testing.T) {
	b := New(createSolidImage(t, 4, 4, black), 1.0)

	p, err := b.FindColor(red, nil)
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p != nil {
		t.Errorf("FindColor: got %v, want no match", *p)
	}
}

func TestFindColor_ScanOrder(t *testing.T) {
	// Marks at (3, 0) and (1, 2): the X-outer scan must report (1, 2)
	// first even though (3, 0) is on an earlier row.
	b := New(createMarkedImage(t, 4, 4, image.Pt(3, 0), image.Pt(1, 2)), 1.0)

	p, err := b.FindColor(red, nil)
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil || *p != geometry.Pt(1, 2) {
		t.Errorf("FindColor: got %v, want (1, 2)", p)
	}
}

func TestFindColor_StartPointResume(t *testing.T) {
	// Marks at (0, 0), (0, 2) and (2, 0). Starting at (0, 1) must skip
	// the cells above it in the first column only.
	b := New(createMarkedImage(t, 3, 3, image.Pt(0, 0), image.Pt(0, 2), image.Pt(2, 0)), 1.0)

	start := geometry.Pt(0, 1)
	p, err := b.FindColor(red, &SearchOptions{Start: &start})
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil || *p != geometry.Pt(0, 2) {
		t.Errorf("FindColor from (0, 1): got %v, want (0, 2)", p)
	}

	// Starting below every first-column mark: later columns must still be
	// scanned from the top of the rect, finding (2, 0).
	b2 := New(createMarkedImage(t, 3, 3, image.Pt(0, 0), image.Pt(2, 0)), 1.0)
	p, err = b2.FindColor(red, &SearchOptions{Start: &start})
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil || *p != geometry.Pt(2, 0) {
		t.Errorf("FindColor from (0, 1): got %v, want (2, 0)", p)
	}
}

func TestFindColor_SearchRect(t *testing.T) {
	b := New(createMarkedImage(t, 6, 6, image.Pt(0, 0), image.Pt(4, 4)), 1.0)

	rect := geometry.RectAt(2, 2, 4, 4)
	p, err := b.FindColor(red, &SearchOptions{Rect: &rect})
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil || *p != geometry.Pt(4, 4) {
		t.Errorf("FindColor in %v: got %v, want (4, 4)", rect, p)
	}
}

func TestFindColor_HighDPI(t *testing.T) {
	// Physical 8x8 at scale 2: red at physical (4, 2) is logical (2, 1).
	b := New(createMarkedImage(t, 8, 8, image.Pt(4, 2)), 2.0)

	p, err := b.FindColor(red, nil)
	if err != nil {
		t.Fatalf("FindColor failed: %v", err)
	}
	if p == nil || *p != geometry.Pt(2, 1) {
		t.Errorf("FindColor: got %v, want (2, 1)", p)
	}
}

func TestFindEveryColor_OrderAndCount(t *testing.T) {
	marks := []image.Point{{0, 3}, {1, 1}, {2, 0}, {2, 3}}
	b := New(createMarkedImage(t, 4, 4, marks...), 1.0)

	points, err := b.FindEveryColor(red, nil)
	if err != nil {
		t.Fatalf("FindEveryColor failed: %v", err)
	}

	want := []geometry.Point{
		geometry.Pt(0, 3),
		geometry.Pt(1, 1),
		geometry.Pt(2, 0),
		geometry.Pt(2, 3),
	}
	if len(points) != len(want) {
		t.Fatalf("FindEveryColor: got %d points, want %d", len(points), len(want))
	}
	for i := range want {
		if points[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, points[i], want[i])
		}
	}

	// Strictly increasing scan order: X advances, and within a column Y
	// advances.
	for i := 1; i < len(points); i++ {
		prev, cur := points[i-1], points[i]
		if cur.X < prev.X || (cur.X == prev.X && cur.Y <= prev.Y) {
			t.Errorf("points out of scan order: %v before %v", prev, cur)
		}
	}

	count, err := b.CountOfColor(red, nil)
	if err != nil {
		t.Fatalf("CountOfColor failed: %v", err)
	}
	if count != len(points) {
		t.Errorf("CountOfColor: got %d, want %d", count, len(points))
	}
}

func TestSearch_InvalidParams(t *testing.T) {
	b := New(createSolidImage(t, 4, 4, black), 1.0)
	needle := New(createSolidImage(t, 2, 2, black), 1.0)

	badRect := geometry.RectAt(2, 2, 4, 4)
	badStart := geometry.Pt(4, 0)

	t.Run("tolerance out of range", func(t *testing.T) {
		_, err := b.FindColor(red, &SearchOptions{Tolerance: 1.5})
		if !errors.Is(err, ErrInvalidTolerance) {
			t.Errorf("got err %v, want ErrInvalidTolerance", err)
		}
	})

	t.Run("search rect outside bounds", func(t *testing.T) {
		_, err := b.FindColor(red, &SearchOptions{Rect: &badRect})
		if !errors.Is(err, ErrRectOutOfBounds) {
			t.Errorf("got err %v, want ErrRectOutOfBounds", err)
		}
		if _, err := b.CountOfBitmap(needle, &SearchOptions{Rect: &badRect}); !errors.Is(err, ErrRectOutOfBounds) {
			t.Errorf("CountOfBitmap: got err %v, want ErrRectOutOfBounds", err)
		}
	})

	t.Run("start point outside bounds", func(t *testing.T) {
		_, err := b.FindEveryColor(red, &SearchOptions{Start: &badStart})
		if !errors.Is(err, ErrPointOutOfBounds) {
			t.Errorf("got err %v, want ErrPointOutOfBounds", err)
		}
	})
}

func TestFindBitmap_CropRoundTrip(t *testing.T) {
	b := New(createGradientImage(t, 16, 12), 1.0)

	sub := geometry.RectAt(5, 6, 4, 3)
	needle, err := b.Cropped(sub)
	if err != nil {
		t.Fatalf("Cropped failed: %v", err)
	}

	p, err := b.FindBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p == nil {
		t.Fatal("FindBitmap: crop of the haystack not found in the haystack")
	}
	if *p != sub.Origin {
		t.Errorf("FindBitmap: got %v, want %v", *p, sub.Origin)
	}

	// Starting the scan at the known origin must return it exactly.
	p, err = b.FindBitmap(needle, &SearchOptions{Start: &sub.Origin})
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p == nil || *p != sub.Origin {
		t.Errorf("FindBitmap from origin: got %v, want %v", p, sub.Origin)
	}
}

func TestFindBitmap_InvertedRejected(t *testing.T) {
	img := createGradientImage(t, 8, 8)
	b := New(img, 1.0)
	inverted := New(effect.Invert(img), 1.0)

	p, err := b.FindBitmap(inverted, nil)
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p != nil {
		t.Errorf("FindBitmap: inverted copy matched at %v", *p)
	}
}

func TestFindBitmap_Tiling(t *testing.T) {
	tile := createGradientImage(t, 3, 3)

	// Tile 2x2 into a canvas one pixel larger than needed in each axis.
	canvas := image.NewRGBA(image.Rect(0, 0, 7, 7))
	for _, offset := range []image.Point{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		draw.Draw(canvas, tile.Rect.Add(offset), tile, image.Point{}, draw.Src)
	}

	b := New(canvas, 1.0)
	needle := New(tile, 1.0)

	count, err := b.CountOfBitmap(needle, nil)
	if err != nil {
		t.Fatalf("CountOfBitmap failed: %v", err)
	}
	if count < 4 {
		t.Errorf("CountOfBitmap: got %d, want at least 4", count)
	}

	points, err := b.FindEveryBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindEveryBitmap failed: %v", err)
	}
	if len(points) != count {
		t.Errorf("FindEveryBitmap returned %d points, CountOfBitmap %d", len(points), count)
	}
}

func TestFindBitmap_Oversized(t *testing.T) {
	b := New(createSolidImage(t, 3, 3, black), 1.0)
	needle := New(createSolidImage(t, 5, 5, black), 1.0)

	p, err := b.FindBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p != nil {
		t.Errorf("FindBitmap: oversized needle matched at %v", *p)
	}

	points, err := b.FindEveryBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindEveryBitmap failed: %v", err)
	}
	if len(points) != 0 {
		t.Errorf("FindEveryBitmap: got %d points, want 0", len(points))
	}

	count, err := b.CountOfBitmap(needle, nil)
	if err != nil {
		t.Fatalf("CountOfBitmap failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountOfBitmap: got %d, want 0", count)
	}
}

func TestFindBitmap_OversizedOneDimension(t *testing.T) {
	// Wider but not taller: the fast-reject does not apply, but the
	// per-candidate bounds check still rejects everything.
	b := New(createSolidImage(t, 3, 3, black), 1.0)
	needle := New(createSolidImage(t, 5, 2, black), 1.0)

	p, err := b.FindBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p != nil {
		t.Errorf("FindBitmap: too-wide needle matched at %v", *p)
	}

	count, err := b.CountOfBitmap(needle, nil)
	if err != nil {
		t.Fatalf("CountOfBitmap failed: %v", err)
	}
	if count != 0 {
		t.Errorf("CountOfBitmap: got %d, want 0", count)
	}
}

func TestFindBitmap_WithTolerance(t *testing.T) {
	haystack := createSolidImage(t, 4, 4, color.RGBA{100, 100, 100, 255})
	b := New(haystack, 1.0)

	// Needle is uniformly 5 units away per channel: distance sqrt(75).
	needle := New(createSolidImage(t, 2, 2, color.RGBA{105, 105, 105, 255}), 1.0)

	p, err := b.FindBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p != nil {
		t.Errorf("FindBitmap: got %v, want no match at tolerance 0", *p)
	}

	p, err = b.FindBitmap(needle, &SearchOptions{Tolerance: 0.05})
	if err != nil {
		t.Fatalf("FindBitmap failed: %v", err)
	}
	if p == nil || *p != geometry.Zero {
		t.Errorf("FindBitmap at tolerance 0.05: got %v, want (0, 0)", p)
	}
}

func TestFindEveryBitmap_OverlappingMatches(t *testing.T) {
	// A uniform needle in a uniform haystack matches at every anchor
	// whose footprint stays inside: (4-2+1)² = 9 positions.
	b := New(createSolidImage(t, 4, 4, black), 1.0)
	needle := New(createSolidImage(t, 2, 2, black), 1.0)

	points, err := b.FindEveryBitmap(needle, nil)
	if err != nil {
		t.Fatalf("FindEveryBitmap failed: %v", err)
	}
	if len(points) != 9 {
		t.Errorf("FindEveryBitmap: got %d matches, want 9", len(points))
	}

	count, err := b.CountOfBitmap(needle, nil)
	if err != nil {
		t.Fatalf("CountOfBitmap failed: %v", err)
	}
	if count != 9 {
		t.Errorf("CountOfBitmap: got %d, want 9", count)
	}
}
