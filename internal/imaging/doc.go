// Package imaging decodes source images and scales them down to build size.
//
// All operations work with standard Go image.Image values and use a coordinate
// system where (0,0) is the top-left corner, X increases rightward and Y
// increases downward. Results are always fresh *image.NRGBA values with their
// origin at (0,0); inputs are never modified.
//
// # Resizing
//
// Resize preserves aspect ratio under a maximum-edge constraint. The shorter
// edge is computed with integer truncation, so extremely thin images can
// collapse to a zero edge. That case yields an empty image rather than an
// error, and callers see a zero-area build.
//
// Resampling is deterministic for a given Filter; FilterNearest is the default
// because it keeps source colors intact, which suits palette matching.
//
// # Decoding
//
// Decode accepts PNG, JPEG, GIF, BMP, TIFF and WebP. Animated GIFs are reduced
// to their first frame. Every decode failure wraps ErrDecode.
//
// # Thread Safety
//
// Every function in this package is stateless and safe for concurrent use.
package imaging
