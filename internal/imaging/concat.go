package imaging

import (
	"fmt"
	"math"
)

// ConcatPolicy selects how Concat reconciles images of different sizes
// before joining them.
type ConcatPolicy int

const (
	// ConcatCut crops every image to the smallest height (horizontal) or
	// width (vertical), keeping the top-left region.
	ConcatCut ConcatPolicy = iota

	// ConcatFill pads every image to the largest height (horizontal) or
	// width (vertical) with a solid fill color.
	ConcatFill

	// ConcatResizeDown scales every image to the smallest height
	// (horizontal) or width (vertical), preserving aspect ratio.
	ConcatResizeDown

	// ConcatResizeUp scales every image to the largest height
	// (horizontal) or width (vertical), preserving aspect ratio.
	ConcatResizeUp
)

// ParseConcatPolicy maps a policy name (cut, fill, resize-down,
// resize-up) to a ConcatPolicy. Returns *InvalidParameterError for
// unknown names.
func ParseConcatPolicy(s string) (ConcatPolicy, error) {
	switch s {
	case "cut":
		return ConcatCut, nil
	case "fill":
		return ConcatFill, nil
	case "resize-down", "":
		return ConcatResizeDown, nil
	case "resize-up":
		return ConcatResizeUp, nil
	}
	return 0, &InvalidParameterError{Param: "policy", Reason: fmt.Sprintf("unknown concat policy %q", s)}
}

// ConcatHorizontal joins the buffers left to right into one buffer.
// Height differences are reconciled per the policy; fill supplies the
// pad color for ConcatFill and is ignored otherwise. The output width
// is the sum of the (possibly adjusted) input widths.
//
// Returns *InvalidParameterError for an empty input slice and
// *ChannelMismatchError when the inputs disagree on channel count.
func ConcatHorizontal(bufs []*Buffer, policy ConcatPolicy, fill Pixel) (*Buffer, error) {
	if err := checkConcatArgs(bufs, policy, fill); err != nil {
		return nil, err
	}

	adjusted, err := equalizeHeights(bufs, policy, fill)
	if err != nil {
		return nil, err
	}

	width := 0
	for _, b := range adjusted {
		width += b.Width
	}
	out, err := New(width, adjusted[0].Height, adjusted[0].Channels)
	if err != nil {
		return nil, err
	}
	x := 0
	for _, b := range adjusted {
		blit(out, b, x, 0)
		x += b.Width
	}
	return out, nil
}

// ConcatVertical joins the buffers top to bottom into one buffer.
// Width differences are reconciled per the policy; fill supplies the
// pad color for ConcatFill and is ignored otherwise. The output height
// is the sum of the (possibly adjusted) input heights.
//
// Returns *InvalidParameterError for an empty input slice and
// *ChannelMismatchError when the inputs disagree on channel count.
func ConcatVertical(bufs []*Buffer, policy ConcatPolicy, fill Pixel) (*Buffer, error) {
	if err := checkConcatArgs(bufs, policy, fill); err != nil {
		return nil, err
	}

	adjusted, err := equalizeWidths(bufs, policy, fill)
	if err != nil {
		return nil, err
	}

	height := 0
	for _, b := range adjusted {
		height += b.Height
	}
	out, err := New(adjusted[0].Width, height, adjusted[0].Channels)
	if err != nil {
		return nil, err
	}
	y := 0
	for _, b := range adjusted {
		blit(out, b, 0, y)
		y += b.Height
	}
	return out, nil
}

func checkConcatArgs(bufs []*Buffer, policy ConcatPolicy, fill Pixel) error {
	if len(bufs) == 0 {
		return &InvalidParameterError{Param: "bufs", Reason: "no images to concatenate"}
	}
	for _, b := range bufs {
		if err := Validate(b); err != nil {
			return err
		}
	}
	channels := bufs[0].Channels
	for i, b := range bufs {
		if b.Channels != channels {
			return &ChannelMismatchError{Reason: fmt.Sprintf(
				"image %d has %d channels, image 0 has %d", i, b.Channels, channels)}
		}
	}
	if policy == ConcatFill && len(fill) != channels {
		return &InvalidParameterError{Param: "fill", Reason: fmt.Sprintf(
			"fill has %d values for %d-channel images", len(fill), channels)}
	}
	return nil
}

// equalizeHeights brings every buffer to a common height per the
// policy. Inputs already at the target height pass through unchanged.
func equalizeHeights(bufs []*Buffer, policy ConcatPolicy, fill Pixel) ([]*Buffer, error) {
	hMin, hMax := bufs[0].Height, bufs[0].Height
	for _, b := range bufs[1:] {
		if b.Height < hMin {
			hMin = b.Height
		}
		if b.Height > hMax {
			hMax = b.Height
		}
	}

	out := make([]*Buffer, len(bufs))
	for i, b := range bufs {
		var err error
		switch policy {
		case ConcatCut:
			if b.Height == hMin {
				out[i] = b
			} else {
				out[i], err = Crop(b, Rect{W: b.Width, H: hMin})
			}
		case ConcatFill:
			if b.Height == hMax {
				out[i] = b
			} else {
				out[i], err = Pad(b, b.Width, hMax, fill)
			}
		case ConcatResizeDown:
			out[i], err = resizeToHeight(b, hMin)
		case ConcatResizeUp:
			out[i], err = resizeToHeight(b, hMax)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// equalizeWidths brings every buffer to a common width per the policy.
func equalizeWidths(bufs []*Buffer, policy ConcatPolicy, fill Pixel) ([]*Buffer, error) {
	wMin, wMax := bufs[0].Width, bufs[0].Width
	for _, b := range bufs[1:] {
		if b.Width < wMin {
			wMin = b.Width
		}
		if b.Width > wMax {
			wMax = b.Width
		}
	}

	out := make([]*Buffer, len(bufs))
	for i, b := range bufs {
		var err error
		switch policy {
		case ConcatCut:
			if b.Width == wMin {
				out[i] = b
			} else {
				out[i], err = Crop(b, Rect{W: wMin, H: b.Height})
			}
		case ConcatFill:
			if b.Width == wMax {
				out[i] = b
			} else {
				out[i], err = Pad(b, wMax, b.Height, fill)
			}
		case ConcatResizeDown:
			out[i], err = resizeToWidth(b, wMin)
		case ConcatResizeUp:
			out[i], err = resizeToWidth(b, wMax)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// resizeToHeight scales b to the target height, preserving aspect
// ratio. The scaled width is rounded to nearest, never below 1.
func resizeToHeight(b *Buffer, height int) (*Buffer, error) {
	if b.Height == height {
		return b, nil
	}
	width := int(math.Round(float64(b.Width) * float64(height) / float64(b.Height)))
	if width < 1 {
		width = 1
	}
	return Resize(b, width, height, FilterLanczos)
}

// resizeToWidth scales b to the target width, preserving aspect ratio.
func resizeToWidth(b *Buffer, width int) (*Buffer, error) {
	if b.Width == width {
		return b, nil
	}
	height := int(math.Round(float64(b.Height) * float64(width) / float64(b.Width)))
	if height < 1 {
		height = 1
	}
	return Resize(b, width, height, FilterLanczos)
}
