// Package capture is the platform boundary that produces bitmaps from the
// screen. Capture is modeled as stateless function calls returning owned
// buffers; no display handle or other process-wide state is kept.
package capture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/ironsheep/bitmap-search-mcp/internal/bitmap"
	"github.com/ironsheep/bitmap-search-mcp/internal/geometry"
)

// ErrNoDisplay reports that no active display is available to capture.
var ErrNoDisplay = errors.New("no active display")

// ErrCaptureFailed reports that the OS could not produce pixel data for a
// capture request.
var ErrCaptureFailed = errors.New("screen capture failed")

// DisplayBounds returns the bounds of the main display in logical units
// for the given scale. A scale of 0 defaults to 1.0.
func DisplayBounds(scale float64) (geometry.Rect, error) {
	if scale <= 0 {
		scale = 1.0
	}
	if screenshot.NumActiveDisplays() == 0 {
		return geometry.Rect{}, ErrNoDisplay
	}
	b := screenshot.GetDisplayBounds(0)
	phys := geometry.RectAt(float64(b.Min.X), float64(b.Min.Y), float64(b.Dx()), float64(b.Dy()))
	return phys.Scaled(1 / scale), nil
}

// Screen captures the entire main display into a Bitmap with the given
// scale. A scale of 0 defaults to 1.0.
func Screen(scale float64) (*bitmap.Bitmap, error) {
	bounds, err := DisplayBounds(scale)
	if err != nil {
		return nil, err
	}
	return Portion(bounds, scale)
}

// Portion captures the given logical-unit portion of the main display.
// The rect must lie fully inside the display bounds or
// bitmap.ErrRectOutOfBounds is returned; a failed OS capture surfaces as
// ErrCaptureFailed.
//
// The returned Bitmap's buffer dimensions equal the requested size scaled
// and rounded, so the usual size/scale invariant holds.
func Portion(rect geometry.Rect, scale float64) (*bitmap.Bitmap, error) {
	if scale <= 0 {
		scale = 1.0
	}
	display, err := DisplayBounds(scale)
	if err != nil {
		return nil, err
	}
	if !display.IsRectVisible(rect) {
		return nil, fmt.Errorf("%w: capture %v outside display %v", bitmap.ErrRectOutOfBounds, rect, display)
	}

	phys := rect.Scaled(scale).Rounded()
	img, err := screenshot.CaptureRect(image.Rect(
		int(phys.Origin.X),
		int(phys.Origin.Y),
		int(phys.MaxX()),
		int(phys.MaxY()),
	))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}

	return bitmap.New(img, scale), nil
}
