package imaging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Format identifies a color representation for Convert. The set is
// closed: conversions are only defined between members of this enum,
// and only for the pairs Convert documents.
type Format int

const (
	// FormatGray is single-channel luminance.
	FormatGray Format = iota

	// FormatRGB is 3-channel red, green, blue byte order.
	FormatRGB

	// FormatBGR is 3-channel blue, green, red byte order.
	FormatBGR

	// FormatRGBA is 4-channel red, green, blue, alpha byte order.
	FormatRGBA
)

func (f Format) String() string {
	switch f {
	case FormatGray:
		return "gray"
	case FormatRGB:
		return "rgb"
	case FormatBGR:
		return "bgr"
	case FormatRGBA:
		return "rgba"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// channels returns the channel count a buffer in this format must have.
func (f Format) channels() int {
	switch f {
	case FormatGray:
		return 1
	case FormatRGBA:
		return 4
	default:
		return 3
	}
}

// ParseFormat maps a format name (gray, rgb, bgr, rgba) to a Format.
// Returns *InvalidParameterError for unknown names.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "gray", "grey":
		return FormatGray, nil
	case "rgb":
		return FormatRGB, nil
	case "bgr":
		return FormatBGR, nil
	case "rgba":
		return FormatRGBA, nil
	}
	return 0, &InvalidParameterError{Param: "format", Reason: fmt.Sprintf("unknown color format %q", s)}
}

// BT.601 luminance weights, fixed so grayscale output cannot drift with
// a library default.
const (
	lumaRed   = 0.299
	lumaGreen = 0.587
	lumaBlue  = 0.114
)

// Convert returns a new buffer with b converted from one color format
// to another.
//
// Supported pairs:
//   - RGB <-> BGR: exact byte swap, losslessly invertible
//   - RGB -> Gray, BGR -> Gray: fixed BT.601 weighting
//     (0.299 R + 0.587 G + 0.114 B, rounded to nearest)
//   - Gray -> RGB, Gray -> BGR, Gray -> RGBA: channel replication,
//     alpha set to 255
//   - RGB <-> RGBA: alpha added as 255 / dropped
//   - identical from and to: clone
//
// Any other pair is rejected with *UnsupportedConversionError; a buffer
// whose channel count does not match the source format is rejected with
// *InvalidParameterError.
func Convert(b *Buffer, from, to Format) (*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	if from.channels() != b.Channels {
		return nil, &InvalidParameterError{Param: "from", Reason: fmt.Sprintf(
			"format %s needs %d channels, buffer has %d", from, from.channels(), b.Channels)}
	}
	if from == to {
		return b.Clone(), nil
	}

	switch {
	case from == FormatRGB && to == FormatBGR, from == FormatBGR && to == FormatRGB:
		out := b.Clone()
		for i := 0; i < len(out.Pix); i += 3 {
			out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
		}
		return out, nil

	case (from == FormatRGB || from == FormatBGR) && to == FormatGray:
		out := &Buffer{
			Pix:      make([]uint8, b.Width*b.Height),
			Width:    b.Width,
			Height:   b.Height,
			Channels: 1,
		}
		ri, bi := 0, 2
		if from == FormatBGR {
			ri, bi = 2, 0
		}
		for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+1 {
			y := lumaRed*float64(b.Pix[i+ri]) + lumaGreen*float64(b.Pix[i+1]) + lumaBlue*float64(b.Pix[i+bi])
			out.Pix[j] = uint8(y + 0.5)
		}
		return out, nil

	case from == FormatGray && (to == FormatRGB || to == FormatBGR || to == FormatRGBA):
		ch := to.channels()
		out := &Buffer{
			Pix:      make([]uint8, b.Width*b.Height*ch),
			Width:    b.Width,
			Height:   b.Height,
			Channels: ch,
		}
		for i, j := 0, 0; i < len(b.Pix); i, j = i+1, j+ch {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = b.Pix[i], b.Pix[i], b.Pix[i]
			if ch == 4 {
				out.Pix[j+3] = 0xff
			}
		}
		return out, nil

	case from == FormatRGB && to == FormatRGBA:
		out := &Buffer{
			Pix:      make([]uint8, b.Width*b.Height*4),
			Width:    b.Width,
			Height:   b.Height,
			Channels: 4,
		}
		for i, j := 0, 0; i < len(b.Pix); i, j = i+3, j+4 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = b.Pix[i], b.Pix[i+1], b.Pix[i+2], 0xff
		}
		return out, nil

	case from == FormatRGBA && to == FormatRGB:
		out := &Buffer{
			Pix:      make([]uint8, b.Width*b.Height*3),
			Width:    b.Width,
			Height:   b.Height,
			Channels: 3,
		}
		for i, j := 0, 0; i < len(b.Pix); i, j = i+4, j+3 {
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = b.Pix[i], b.Pix[i+1], b.Pix[i+2]
		}
		return out, nil
	}

	return nil, &UnsupportedConversionError{From: from, To: to}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" into a Pixel. The
// result has 3 values for 6-digit input and 4 for 8-digit input; the
// leading '#' is optional.
//
// Returns *InvalidParameterError for malformed input.
func ParseHexColor(s string) (Pixel, error) {
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 6:
		c, err := colorful.Hex("#" + hex)
		if err != nil {
			return nil, &InvalidParameterError{Param: "color", Reason: fmt.Sprintf("cannot parse %q: %v", s, err)}
		}
		r, g, b := c.RGB255()
		return Pixel{r, g, b}, nil
	case 8:
		c, err := colorful.Hex("#" + hex[:6])
		if err != nil {
			return nil, &InvalidParameterError{Param: "color", Reason: fmt.Sprintf("cannot parse %q: %v", s, err)}
		}
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return nil, &InvalidParameterError{Param: "color", Reason: fmt.Sprintf("cannot parse alpha of %q: %v", s, err)}
		}
		r, g, b := c.RGB255()
		return Pixel{r, g, b, uint8(a)}, nil
	}
	return nil, &InvalidParameterError{Param: "color", Reason: fmt.Sprintf("hex color %q must have 6 or 8 digits", s)}
}
