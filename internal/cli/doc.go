// Package cli implements the command-line surface of image-helpers.
//
// Each command reads one or more input images, applies a single helper
// from the imaging package, and writes the result to an output file.
// The library packages stay silent; all logging happens here, on
// stderr, so stdout remains free for command output.
//
// # Commands
//
//	info     print dimensions and channel count of an image
//	resize   resize to an exact width and height
//	crop     extract a rectangular region
//	rotate   rotate by an angle, optionally about a pivot point
//	convert  convert between color formats (gray, rgb, bgr, rgba)
//	concat   join images horizontally or vertically
//	annotate draw rectangles, grids, or labels onto a copy
//
// # Logging
//
// Log output goes to stderr via logrus. Set IMAGE_HELPERS_LOG_LEVEL to
// "debug" for per-step detail; the default level is warn so normal runs
// stay quiet.
package cli
