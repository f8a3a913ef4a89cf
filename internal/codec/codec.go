package codec

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/bitmap-search-mcp/internal/bitmap"
)

// Load decodes the image file at path into a Bitmap with the given scale.
// A scale of 0 defaults to 1.0.
func Load(path string, scale float64) (*bitmap.Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return bitmap.New(img, scale), nil
}

// Save encodes the bitmap's pixel buffer to path. The format is chosen by
// the file extension: .webp is written losslessly via the webp encoder,
// everything else (.png, .jpg, .gif, .tif, .bmp) goes through imaging.Save.
func Save(b *bitmap.Bitmap, path string) error {
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return saveWebP(b, path)
	}
	if err := imaging.Save(b.Image(), path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

func saveWebP(b *bitmap.Bitmap, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if err := webp.Encode(f, b.Image(), &webp.Options{Lossless: true}); err != nil {
		return fmt.Errorf("failed to encode webp: %w", err)
	}
	return nil
}

// ImageInfo describes an image file without decoding its pixel data.
type ImageInfo struct {
	Path   string `json:"path"`
	Format string `json:"format"` // "png", "jpeg", "gif", "bmp", "tiff", "webp"
	Width  int    `json:"width"`  // physical pixels
	Height int    `json:"height"` // physical pixels
}

// Info reads just enough of the file at path to report its format and
// dimensions.
func Info(path string) (*ImageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}

	return &ImageInfo{
		Path:   path,
		Format: format,
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}
