package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"image/png"

	"github.com/ironsheep/bitmap-search-mcp/internal/bitmap"
	"github.com/ironsheep/bitmap-search-mcp/internal/capture"
	"github.com/ironsheep/bitmap-search-mcp/internal/codec"
	"github.com/ironsheep/bitmap-search-mcp/internal/geometry"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_find_color").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Loads bitmaps from cache as needed
//  4. Calls the appropriate bitmap/capture/codec function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Region and Pixel Operations
	case "image_crop":
		return s.handleImageCrop(args)
	case "image_sample_pixel":
		return s.handleImageSamplePixel(args)

	// Color Search
	case "image_find_color":
		return s.handleImageFindColor(args)
	case "image_find_every_color":
		return s.handleImageFindEveryColor(args)
	case "image_count_color":
		return s.handleImageCountColor(args)

	// Bitmap Search
	case "image_find_bitmap":
		return s.handleImageFindBitmap(args)
	case "image_find_every_bitmap":
		return s.handleImageFindEveryBitmap(args)
	case "image_count_bitmap":
		return s.handleImageCountBitmap(args)

	// Screen Capture
	case "screen_capture":
		return s.handleScreenCapture(args)
	case "screen_info":
		return s.handleScreenInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// loadBitmap fetches a decoded bitmap, through the cache when enabled.
func (s *Server) loadBitmap(path string) (*bitmap.Bitmap, error) {
	if s.cfg.CacheBitmaps {
		return s.cache.Load(path)
	}
	return codec.Load(path, 1.0)
}

// === Shared Argument Types ===

type rectArg struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r *rectArg) toRect() geometry.Rect {
	return geometry.RectAt(r.X, r.Y, r.Width, r.Height)
}

type pointArg struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type colorArg struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c *colorArg) toRGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// searchArgs are the optional search parameters shared by every find/count
// tool. A nil Tolerance falls back to the configured default.
type searchArgs struct {
	Tolerance *float64  `json:"tolerance,omitempty"`
	Rect      *rectArg  `json:"rect,omitempty"`
	Start     *pointArg `json:"start,omitempty"`
}

func (s *Server) toSearchOptions(a searchArgs) *bitmap.SearchOptions {
	opts := &bitmap.SearchOptions{Tolerance: s.cfg.DefaultTolerance}
	if a.Tolerance != nil {
		opts.Tolerance = *a.Tolerance
	}
	if a.Rect != nil {
		rect := a.Rect.toRect()
		opts.Rect = &rect
	}
	if a.Start != nil {
		start := geometry.Pt(a.Start.X, a.Start.Y)
		opts.Start = &start
	}
	return opts
}

// === Shared Result Types ===

// PointResult is a match location in logical units.
type PointResult struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// MatchResult is the outcome of a single-match search.
type MatchResult struct {
	Found bool         `json:"found"`
	Point *PointResult `json:"point,omitempty"`
}

// MatchesResult is the outcome of an exhaustive search.
type MatchesResult struct {
	Count  int           `json:"count"`
	Points []PointResult `json:"points"`
}

// CountResult is the outcome of a counting search.
type CountResult struct {
	Count int `json:"count"`
}

func matchResult(p *geometry.Point) *MatchResult {
	if p == nil {
		return &MatchResult{Found: false}
	}
	return &MatchResult{Found: true, Point: &PointResult{X: p.X, Y: p.Y}}
}

func matchesResult(points []geometry.Point) *MatchesResult {
	result := &MatchesResult{Count: len(points), Points: make([]PointResult, len(points))}
	for i, p := range points {
		result.Points[i] = PointResult{X: p.X, Y: p.Y}
	}
	return result
}

// === Basic Image Information Handlers ===

type imagePathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if _, err := s.loadBitmap(a.Path); err != nil {
		return nil, err
	}
	return codec.Info(a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imagePathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return codec.Info(a.Path)
}

// === Region and Pixel Operation Handlers ===

type imageCropArgs struct {
	Path   string  `json:"path"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CropResult contains the cropped image data.
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

func (s *Server) handleImageCrop(args json.RawMessage) (interface{}, error) {
	var a imageCropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.loadBitmap(a.Path)
	if err != nil {
		return nil, err
	}
	crop, err := b.Cropped(geometry.RectAt(a.X, a.Y, a.Width, a.Height))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, crop.Image()); err != nil {
		return nil, fmt.Errorf("failed to encode cropped image: %w", err)
	}

	return &CropResult{
		Width:       crop.Image().Rect.Dx(),
		Height:      crop.Image().Rect.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

type imageSamplePixelArgs struct {
	Path string  `json:"path"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PixelResult contains the color at a sampled pixel.
type PixelResult struct {
	Hex string `json:"hex"` // "#RRGGBB" (no alpha)
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	A   uint8  `json:"a"`
}

func (s *Server) handleImageSamplePixel(args json.RawMessage) (interface{}, error) {
	var a imageSamplePixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.loadBitmap(a.Path)
	if err != nil {
		return nil, err
	}
	c, err := b.PixelAt(geometry.Pt(a.X, a.Y))
	if err != nil {
		return nil, err
	}
	return &PixelResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B),
		R:   c.R,
		G:   c.G,
		B:   c.B,
		A:   c.A,
	}, nil
}

// === Color Search Handlers ===

type colorSearchArgs struct {
	Path  string   `json:"path"`
	Color colorArg `json:"color"`
	searchArgs
}

func (s *Server) handleImageFindColor(args json.RawMessage) (interface{}, error) {
	var a colorSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.loadBitmap(a.Path)
	if err != nil {
		return nil, err
	}
	p, err := b.FindColor(a.Color.toRGBA(), s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return matchResult(p), nil
}

func (s *Server) handleImageFindEveryColor(args json.RawMessage) (interface{}, error) {
	var a colorSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.loadBitmap(a.Path)
	if err != nil {
		return nil, err
	}
	points, err := b.FindEveryColor(a.Color.toRGBA(), s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return matchesResult(points), nil
}

func (s *Server) handleImageCountColor(args json.RawMessage) (interface{}, error) {
	var a colorSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	b, err := s.loadBitmap(a.Path)
	if err != nil {
		return nil, err
	}
	count, err := b.CountOfColor(a.Color.toRGBA(), s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return &CountResult{Count: count}, nil
}

// === Bitmap Search Handlers ===

type bitmapSearchArgs struct {
	HaystackPath string `json:"haystack_path"`
	NeedlePath   string `json:"needle_path"`
	searchArgs
}

// loadHaystackNeedle loads both bitmaps of a bitmap-search request.
func (s *Server) loadHaystackNeedle(a bitmapSearchArgs) (haystack, needle *bitmap.Bitmap, err error) {
	if haystack, err = s.loadBitmap(a.HaystackPath); err != nil {
		return nil, nil, err
	}
	if needle, err = s.loadBitmap(a.NeedlePath); err != nil {
		return nil, nil, err
	}
	return haystack, needle, nil
}

func (s *Server) handleImageFindBitmap(args json.RawMessage) (interface{}, error) {
	var a bitmapSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	haystack, needle, err := s.loadHaystackNeedle(a)
	if err != nil {
		return nil, err
	}
	p, err := haystack.FindBitmap(needle, s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return matchResult(p), nil
}

func (s *Server) handleImageFindEveryBitmap(args json.RawMessage) (interface{}, error) {
	var a bitmapSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	haystack, needle, err := s.loadHaystackNeedle(a)
	if err != nil {
		return nil, err
	}
	points, err := haystack.FindEveryBitmap(needle, s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return matchesResult(points), nil
}

func (s *Server) handleImageCountBitmap(args json.RawMessage) (interface{}, error) {
	var a bitmapSearchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	haystack, needle, err := s.loadHaystackNeedle(a)
	if err != nil {
		return nil, err
	}
	count, err := haystack.CountOfBitmap(needle, s.toSearchOptions(a.searchArgs))
	if err != nil {
		return nil, err
	}
	return &CountResult{Count: count}, nil
}

// === Screen Capture Handlers ===

type screenCaptureArgs struct {
	Path string   `json:"path"`
	Rect *rectArg `json:"rect,omitempty"`
}

// ScreenCaptureResult describes a saved screen capture.
type ScreenCaptureResult struct {
	Path   string  `json:"path"`
	Width  float64 `json:"width"`  // logical units
	Height float64 `json:"height"` // logical units
	Scale  float64 `json:"scale"`
}

func (s *Server) handleScreenCapture(args json.RawMessage) (interface{}, error) {
	var a screenCaptureArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var b *bitmap.Bitmap
	var err error
	if a.Rect != nil {
		b, err = capture.Portion(a.Rect.toRect(), s.cfg.CaptureScale)
	} else {
		b, err = capture.Screen(s.cfg.CaptureScale)
	}
	if err != nil {
		return nil, err
	}

	if err := codec.Save(b, a.Path); err != nil {
		return nil, err
	}
	// A stale cache entry for this path would shadow the new capture.
	s.cache.Evict(a.Path)

	return &ScreenCaptureResult{
		Path:   a.Path,
		Width:  b.Bounds().Size.Width,
		Height: b.Bounds().Size.Height,
		Scale:  b.Scale(),
	}, nil
}

// ScreenInfoResult describes the main display.
type ScreenInfoResult struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

func (s *Server) handleScreenInfo(json.RawMessage) (interface{}, error) {
	bounds, err := capture.DisplayBounds(s.cfg.CaptureScale)
	if err != nil {
		return nil, err
	}
	return &ScreenInfoResult{
		X:      bounds.Origin.X,
		Y:      bounds.Origin.Y,
		Width:  bounds.Size.Width,
		Height: bounds.Size.Height,
		Scale:  s.cfg.CaptureScale,
	}, nil
}
