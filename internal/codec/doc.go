// Package codec loads and saves the pixel buffers the search engine works
// on. It is the boundary to image file formats: the rest of the system only
// ever sees decoded bitmap.Bitmap values.
//
// Decoding supports PNG, JPEG, GIF, BMP, TIFF and WebP. Encoding is chosen
// by file extension; WebP is written losslessly so saved needles survive a
// round trip at tolerance 0.
//
// The Cache avoids redundant disk reads when the same needle or haystack
// file is used across many searches. It is safe for concurrent use.
package codec
