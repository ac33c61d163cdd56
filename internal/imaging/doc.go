// Package imaging provides a flat collection of independent image-utility
// helpers over an explicit pixel buffer type.
//
// Each helper is usable in isolation: loading and validation, geometric
// transforms (resize, crop, rotate, pad), color-space and channel
// utilities, drawing/annotation, and image concatenation. Helpers never
// mutate their inputs; every call allocates and returns a fresh Buffer.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner: X increases rightward, Y increases downward. Rectangles are
// given as (X, Y, W, H) with the top-left pixel inclusive.
//
// # Buffers
//
// The Buffer type is a dense, interleaved array of 8-bit pixel values
// with an explicit width, height, and channel count (1, 3, or 4). Every
// helper validates its input buffer before operating and rejects
// malformed buffers with a *ValidationError rather than producing
// garbage output.
//
// # Error Handling
//
// Errors are returned at the point of detection and are never recovered
// internally:
//   - *LoadError: a file or byte source could not be read or decoded
//   - *ValidationError: a buffer violates a structural invariant
//   - *InvalidParameterError: a geometric or color parameter is out of range
//   - *UnsupportedConversionError: a color-format pair outside the supported set
//   - *ChannelMismatchError: channel buffers with inconsistent shapes
//
// All error types support errors.As matching and wrap any underlying
// cause. With one documented exception, helpers fail rather than repair
// bad input: drawing helpers clip out-of-canvas coordinates, because
// annotation is a best-effort overlay; Crop, by contrast, rejects any
// rectangle that leaves the source bounds.
//
// # Thread Safety
//
// Helpers are pure functions over their arguments and are safe for
// concurrent use on independent buffers. BufferCache is safe for
// concurrent use by multiple goroutines.
package imaging
