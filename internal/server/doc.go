// Package server implements the MCP (Model Context Protocol) server for the
// bitmap search tools.
//
// This package provides a JSON-RPC 2.0 server that exposes color and
// sub-image search, cropping, pixel sampling and screen capture through the
// MCP protocol, for use by Claude and other MCP-compatible clients.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Decode an image and get metadata
//   - image_dimensions: Get width, height and format
//
// Region and Pixel Operations:
//   - image_crop: Extract a rectangular region
//   - image_sample_pixel: Get the color at a coordinate
//
// Color Search:
//   - image_find_color: First pixel matching a color within tolerance
//   - image_find_every_color: All matching pixels in scan order
//   - image_count_color: Count of matching pixels
//
// Bitmap Search:
//   - image_find_bitmap: First occurrence of a needle image
//   - image_find_every_bitmap: All occurrences, including overlapping
//   - image_count_bitmap: Count of occurrences
//
// Screen Capture:
//   - screen_capture: Capture the display to a file
//   - screen_info: Display bounds and capture scale
//
// # Bitmap Caching
//
// The server maintains an in-memory cache of decoded bitmaps keyed by path,
// reused across tool calls to avoid redundant disk I/O. The cache persists
// for the lifetime of the server process and can be disabled in the
// configuration.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
