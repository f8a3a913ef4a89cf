package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/bitmap-search-mcp/internal/geometry"
)

// ErrPointOutOfBounds reports a pixel lookup or start point outside a
// bitmap's bounds.
var ErrPointOutOfBounds = errors.New("point outside bitmap bounds")

// ErrRectOutOfBounds reports a crop or search rect not fully contained in a
// bitmap's bounds.
var ErrRectOutOfBounds = errors.New("rect outside bitmap bounds")

// PixelSource is the capability a search needle must provide: bounds and
// scale in logical units, plus per-point pixel access. Bitmap is the
// in-memory implementation.
type PixelSource interface {
	Bounds() geometry.Rect
	Scale() float64
	PixelAt(p geometry.Point) (color.RGBA, error)
}

// Bitmap owns a decoded 8-bit RGBA pixel buffer together with its logical
// size and scale factor (physical pixels per logical unit).
//
// A Bitmap is immutable once constructed. The buffer is owned exclusively:
// New copies the source image and Cropped copies the extracted sub-region,
// so no two Bitmaps ever alias pixel data.
type Bitmap struct {
	img   *image.RGBA
	size  geometry.Size
	scale float64
}

// New creates a Bitmap from a decoded image. A scale of 0 defaults to 1.0.
//
// The image is copied into an owned RGBA buffer; the logical size is the
// buffer size divided by the scale, so the invariant
// buffer == round(size * scale) holds in both axes.
func New(img image.Image, scale float64) *Bitmap {
	if scale <= 0 {
		scale = 1.0
	}
	rgba := clone.AsRGBA(img)
	// Anchor at the origin so physical indices are plain (x, y).
	rgba.Rect = rgba.Rect.Sub(rgba.Rect.Min)
	return &Bitmap{
		img:   rgba,
		size:  geometry.Sz(float64(rgba.Rect.Dx())/scale, float64(rgba.Rect.Dy())/scale),
		scale: scale,
	}
}

// Bounds returns the bitmap's bounds in logical units, with a zero origin.
func (b *Bitmap) Bounds() geometry.Rect {
	return geometry.Rect{Origin: geometry.Zero, Size: b.size}
}

// Scale returns the bitmap's physical-pixels-per-logical-unit factor.
func (b *Bitmap) Scale() float64 {
	return b.scale
}

// Image returns the underlying pixel buffer, for encoding. Callers must
// not mutate it.
func (b *Bitmap) Image() *image.RGBA {
	return b.img
}

// PixelAt returns the color at the given logical point. The point is
// converted to a physical index by scaling and rounding; an index outside
// the buffer returns ErrPointOutOfBounds.
func (b *Bitmap) PixelAt(p geometry.Point) (color.RGBA, error) {
	phys := p.Scaled(b.scale).Rounded()
	x, y := int(phys.X), int(phys.Y)
	if x < 0 || x >= b.img.Rect.Dx() || y < 0 || y >= b.img.Rect.Dy() {
		return color.RGBA{}, fmt.Errorf("%w: %v", ErrPointOutOfBounds, p)
	}
	return b.img.RGBAAt(x, y), nil
}

// Cropped returns a new Bitmap holding a deep copy of the given sub-region,
// with the same scale as the source. The rect must be fully contained in
// the bitmap's bounds or ErrRectOutOfBounds is returned.
func (b *Bitmap) Cropped(rect geometry.Rect) (*Bitmap, error) {
	if !b.Bounds().IsRectVisible(rect) {
		return nil, fmt.Errorf("%w: crop %v outside %v", ErrRectOutOfBounds, rect, b.Bounds())
	}
	phys := rect.Scaled(b.scale).Rounded()
	sub := imaging.Crop(b.img, image.Rect(
		int(phys.Origin.X),
		int(phys.Origin.Y),
		int(phys.MaxX()),
		int(phys.MaxY()),
	))
	return New(sub, b.scale), nil
}
