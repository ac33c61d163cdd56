package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
)

// Filter selects the resampling kernel used by Resize.
type Filter int

const (
	// FilterLanczos is a high-quality kernel, the default for downscaling
	// and general use.
	FilterLanczos Filter = iota

	// FilterLinear is bilinear interpolation.
	FilterLinear

	// FilterNearest is nearest-neighbor sampling; exact for integer
	// upscales of flat-color regions.
	FilterNearest

	// FilterBox averages source pixels per target pixel.
	FilterBox
)

// ParseFilter maps a filter name (lanczos, linear, nearest, box) to a
// Filter. Returns *InvalidParameterError for unknown names.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "lanczos", "":
		return FilterLanczos, nil
	case "linear":
		return FilterLinear, nil
	case "nearest":
		return FilterNearest, nil
	case "box":
		return FilterBox, nil
	}
	return 0, &InvalidParameterError{Param: "filter", Reason: fmt.Sprintf("unknown filter %q", s)}
}

func (f Filter) resample() imaging.ResampleFilter {
	switch f {
	case FilterLinear:
		return imaging.Linear
	case FilterNearest:
		return imaging.NearestNeighbor
	case FilterBox:
		return imaging.Box
	default:
		return imaging.Lanczos
	}
}

// Resize returns a new buffer with exactly width x height pixels, the
// channel count unchanged.
//
// Returns *InvalidParameterError if either target dimension is
// non-positive.
func Resize(b *Buffer, width, height int, filter Filter) (*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, &InvalidParameterError{Param: "size", Reason: fmt.Sprintf("target dimensions must be positive, got %dx%d", width, height)}
	}
	resized := imaging.Resize(b.ToImage(), width, height, filter.resample())
	return fromConverted(resized, b.Channels), nil
}

// Crop returns a new buffer restricted to r.
//
// The rectangle must lie fully inside the source: any part outside the
// bounds is rejected with *InvalidParameterError rather than clamped,
// so an out-of-range rectangle cannot silently shrink.
func Crop(b *Buffer, r Rect) (*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	if r.W <= 0 || r.H <= 0 {
		return nil, &InvalidParameterError{Param: "rect", Reason: fmt.Sprintf("crop size must be positive, got %dx%d", r.W, r.H)}
	}
	if r.X < 0 || r.Y < 0 || r.X+r.W > b.Width || r.Y+r.H > b.Height {
		return nil, &InvalidParameterError{Param: "rect", Reason: fmt.Sprintf(
			"crop region (%d,%d)+%dx%d outside image bounds %dx%d", r.X, r.Y, r.W, r.H, b.Width, b.Height)}
	}

	out := &Buffer{
		Pix:      make([]uint8, r.W*r.H*b.Channels),
		Width:    r.W,
		Height:   r.H,
		Channels: b.Channels,
	}
	rowLen := r.W * b.Channels
	for y := 0; y < r.H; y++ {
		si := ((r.Y+y)*b.Width + r.X) * b.Channels
		copy(out.Pix[y*rowLen:(y+1)*rowLen], b.Pix[si:si+rowLen])
	}
	return out, nil
}

// Rotate returns a new buffer with b rotated by angle degrees
// counterclockwise. Pixels vacated by the rotation are filled with
// zero (black; transparent black for 4-channel buffers).
//
// With a nil pivot the image rotates about its center and the output
// canvas grows to hold the whole rotated image; right-angle rotations
// take an exact pixel-shuffle path. With an explicit pivot the canvas
// keeps the source dimensions and the rotation happens about the given
// point.
func Rotate(b *Buffer, angle float64, pivot *Point) (*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}

	if pivot != nil {
		// bild treats positive angles as clockwise; negate so both
		// rotation paths agree on counterclockwise.
		rotated := transform.Rotate(b.ToImage(), -angle, &transform.RotationOptions{
			Pivot: &image.Point{X: pivot.X, Y: pivot.Y},
		})
		return fromConverted(rotated, b.Channels), nil
	}

	// Normalize to [0, 360) so right angles hit the exact paths.
	norm := math.Mod(angle, 360)
	if norm < 0 {
		norm += 360
	}
	switch norm {
	case 0:
		return b.Clone(), nil
	case 90:
		return fromConverted(imaging.Rotate90(b.ToImage()), b.Channels), nil
	case 180:
		return fromConverted(imaging.Rotate180(b.ToImage()), b.Channels), nil
	case 270:
		return fromConverted(imaging.Rotate270(b.ToImage()), b.Channels), nil
	}

	fill := color.NRGBA{A: 0xff}
	if b.Channels == 4 {
		fill = color.NRGBA{}
	}
	rotated := imaging.Rotate(b.ToImage(), norm, fill)
	return fromConverted(rotated, b.Channels), nil
}

// Pad places b at the top-left corner of a width x height canvas filled
// with fill. The fill must have one value per channel of b.
//
// Returns *InvalidParameterError if the target is smaller than the
// source in either dimension or the fill length does not match the
// channel count.
func Pad(b *Buffer, width, height int, fill Pixel) (*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	if len(fill) != b.Channels {
		return nil, &InvalidParameterError{Param: "fill", Reason: fmt.Sprintf(
			"fill has %d values for a %d-channel buffer", len(fill), b.Channels)}
	}
	if width < b.Width || height < b.Height {
		return nil, &InvalidParameterError{Param: "size", Reason: fmt.Sprintf(
			"target %dx%d smaller than source %dx%d", width, height, b.Width, b.Height)}
	}

	out, err := NewUniform(width, height, fill)
	if err != nil {
		return nil, err
	}
	blit(out, b, 0, 0)
	return out, nil
}

// blit copies src into dst at (x, y), clipping to dst's bounds. Both
// buffers must have the same channel count.
func blit(dst, src *Buffer, x, y int) {
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= dst.Height {
			continue
		}
		sx0, dx0 := 0, x
		if dx0 < 0 {
			sx0 = -dx0
			dx0 = 0
		}
		n := src.Width - sx0
		if over := dx0 + n - dst.Width; over > 0 {
			n -= over
		}
		if n <= 0 {
			continue
		}
		si := (sy*src.Width + sx0) * src.Channels
		di := (dy*dst.Width + dx0) * dst.Channels
		copy(dst.Pix[di:di+n*dst.Channels], src.Pix[si:si+n*src.Channels])
	}
}
