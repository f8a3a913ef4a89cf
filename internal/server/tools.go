package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema for an image file path argument.
func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// rectProperty is the schema for a rect argument in logical units.
func rectProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": description,
		"properties": map[string]interface{}{
			"x":      map[string]interface{}{"type": "number"},
			"y":      map[string]interface{}{"type": "number"},
			"width":  map[string]interface{}{"type": "number"},
			"height": map[string]interface{}{"type": "number"},
		},
		"required": []string{"x", "y", "width", "height"},
	}
}

// searchProperties returns the schema of the optional search parameters
// shared by the find/count tools: tolerance, search rect and start point.
func searchProperties() map[string]interface{} {
	return map[string]interface{}{
		"tolerance": map[string]interface{}{
			"type":        "number",
			"description": "Color tolerance in [0,1]: 0 = exact match, 1 = match anything. Defaults to the configured default tolerance.",
		},
		"rect": rectProperty("Restrict the search to this sub-rect. Defaults to the whole image."),
		"start": map[string]interface{}{
			"type":        "object",
			"description": "Point to resume the scan from, e.g. just after a previous match. Defaults to the search rect's origin.",
			"properties": map[string]interface{}{
				"x": map[string]interface{}{"type": "number"},
				"y": map[string]interface{}{"type": "number"},
			},
			"required": []string{"x", "y"},
		},
	}
}

// colorProperty is the schema for an RGB color argument.
func colorProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "RGB color to search for (alpha is ignored in comparisons)",
		"properties": map[string]interface{}{
			"r": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
			"g": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
			"b": map[string]interface{}{"type": "integer", "minimum": 0, "maximum": 255},
		},
		"required": []string{"r", "g", "b"},
	}
}

// merge combines property maps into a single schema properties object.
func merge(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	colorSearchSchema := map[string]interface{}{
		"type": "object",
		"properties": merge(
			map[string]interface{}{
				"path":  pathProperty("Absolute path to the haystack image file"),
				"color": colorProperty(),
			},
			searchProperties(),
		),
		"required": []string{"path", "color"},
	}
	bitmapSearchSchema := map[string]interface{}{
		"type": "object",
		"properties": merge(
			map[string]interface{}{
				"haystack_path": pathProperty("Absolute path to the haystack image file"),
				"needle_path":   pathProperty("Absolute path to the needle image file"),
			},
			searchProperties(),
		),
		"required": []string{"haystack_path", "needle_path"},
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. Decoded images are cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width, height and format of an image file without decoding its pixels.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},

		// Region and Pixel Operations
		{
			Name:        "image_crop",
			Description: "Crop a rectangular region from an image and return it as base64-encoded PNG. The rect must lie fully inside the image bounds.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":   pathProperty("Absolute path to the image file"),
					"x":      map[string]interface{}{"type": "number", "description": "Left edge of the crop"},
					"y":      map[string]interface{}{"type": "number", "description": "Top edge of the crop"},
					"width":  map[string]interface{}{"type": "number", "description": "Crop width"},
					"height": map[string]interface{}{"type": "number", "description": "Crop height"},
				},
				"required": []string{"path", "x", "y", "width", "height"},
			},
		},
		{
			Name:        "image_sample_pixel",
			Description: "Get the exact color value at a specific pixel coordinate.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
					"x":    map[string]interface{}{"type": "number", "description": "X coordinate (0-based, from left)"},
					"y":    map[string]interface{}{"type": "number", "description": "Y coordinate (0-based, from top)"},
				},
				"required": []string{"path", "x", "y"},
			},
		},

		// Color Search
		{
			Name:        "image_find_color",
			Description: "Find the first pixel matching a color within tolerance. Returns the match point in scan order, or found=false.",
			InputSchema: colorSearchSchema,
		},
		{
			Name:        "image_find_every_color",
			Description: "Find every pixel matching a color within tolerance, in ascending scan order.",
			InputSchema: colorSearchSchema,
		},
		{
			Name:        "image_count_color",
			Description: "Count pixels matching a color within tolerance, without materializing the match list.",
			InputSchema: colorSearchSchema,
		},

		// Bitmap (sub-image) Search
		{
			Name:        "image_find_bitmap",
			Description: "Find the first occurrence of a needle image inside a haystack image. Every needle pixel must match within tolerance.",
			InputSchema: bitmapSearchSchema,
		},
		{
			Name:        "image_find_every_bitmap",
			Description: "Find every occurrence of a needle image inside a haystack image, including overlapping ones, in ascending scan order.",
			InputSchema: bitmapSearchSchema,
		},
		{
			Name:        "image_count_bitmap",
			Description: "Count occurrences of a needle image inside a haystack image, without materializing the match list.",
			InputSchema: bitmapSearchSchema,
		},

		// Screen Capture
		{
			Name:        "screen_capture",
			Description: "Capture the main display (or a portion of it) and save it to a file for subsequent searches.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to write the captured image to (format chosen by extension)"),
					"rect": rectProperty("Portion of the display to capture. Defaults to the whole display."),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "screen_info",
			Description: "Get the main display's bounds in logical units and the configured capture scale.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
