package imaging

import (
	"bytes"
	"image"
	"image/color"
)

// Pixel is a per-channel color value. Its length must match the channel
// count of the buffer it is applied to: 1 element for grayscale, 3 for
// RGB/BGR, 4 for RGBA.
type Pixel []uint8

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Rect is a rectangular region given by its top-left corner and size.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Buffer is a dense, interleaved array of 8-bit pixel values.
//
// Pix holds Height rows of Width pixels, each pixel Channels bytes, in
// row-major order with no padding: the value of channel c at (x, y) is
// Pix[(y*Width+x)*Channels+c]. Channels is 1 (grayscale), 3 (RGB or
// BGR), or 4 (RGBA). Three-channel buffers carry no format tag; helpers
// that care about channel order take an explicit Format argument.
type Buffer struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// New returns a zero-filled buffer of the given dimensions.
//
// Returns *InvalidParameterError if width or height is non-positive, or
// if channels is not 1, 3, or 4.
func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, &InvalidParameterError{Param: "size", Reason: "dimensions must be positive"}
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, &InvalidParameterError{Param: "channels", Reason: "channel count must be 1, 3, or 4"}
	}
	return &Buffer{
		Pix:      make([]uint8, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}, nil
}

// NewUniform returns a buffer of the given dimensions with every pixel
// set to fill. The channel count of the result is len(fill): a single
// element gives a grayscale buffer, three or four elements give a
// color buffer.
//
// Returns *InvalidParameterError if the dimensions are non-positive or
// len(fill) is not an accepted channel count.
func NewUniform(width, height int, fill Pixel) (*Buffer, error) {
	b, err := New(width, height, len(fill))
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(b.Pix); i += b.Channels {
		copy(b.Pix[i:i+b.Channels], fill)
	}
	return b, nil
}

// Clone returns a deep copy of b. The copy shares no memory with the
// original.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height, Channels: b.Channels}
}

// At returns the pixel value at (x, y) as a copy. It panics if the
// coordinates are outside the buffer, matching slice-indexing behavior.
func (b *Buffer) At(x, y int) Pixel {
	i := (y*b.Width + x) * b.Channels
	px := make(Pixel, b.Channels)
	copy(px, b.Pix[i:i+b.Channels])
	return px
}

// SetAt writes px at (x, y). Coordinates outside the buffer are
// ignored; a px shorter than the channel count writes only the channels
// it covers.
func (b *Buffer) SetAt(x, y int, px Pixel) {
	if x < 0 || x >= b.Width || y < 0 || y >= b.Height {
		return
	}
	i := (y*b.Width + x) * b.Channels
	n := b.Channels
	if len(px) < n {
		n = len(px)
	}
	copy(b.Pix[i:i+n], px[:n])
}

// Equal reports whether a and b have identical dimensions, channel
// counts, and pixel data.
func Equal(a, b *Buffer) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Width == b.Width && a.Height == b.Height &&
		a.Channels == b.Channels && bytes.Equal(a.Pix, b.Pix)
}

// FromImage converts a decoded image to a Buffer.
//
// Grayscale images become 1-channel buffers, images with an alpha
// channel become 4-channel RGBA buffers, and everything else becomes a
// 3-channel RGB buffer. 16-bit source values are truncated to 8 bits.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		b := &Buffer{Pix: make([]uint8, w*h), Width: w, Height: h, Channels: 1}
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(b.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
		return b
	case *image.NRGBA:
		b := &Buffer{Pix: make([]uint8, w*h*4), Width: w, Height: h, Channels: 4}
		for y := 0; y < h; y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(b.Pix[y*w*4:(y+1)*w*4], src.Pix[off:off+w*4])
		}
		return b
	}

	channels := 3
	switch img.(type) {
	case *image.RGBA, *image.RGBA64, *image.NRGBA64:
		channels = 4
	case *image.Gray16:
		channels = 1
	}

	b := &Buffer{Pix: make([]uint8, w*h*channels), Width: w, Height: h, Channels: channels}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			switch channels {
			case 1:
				b.Pix[i] = c.R
			case 3:
				b.Pix[i], b.Pix[i+1], b.Pix[i+2] = c.R, c.G, c.B
			case 4:
				b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.R, c.G, c.B, c.A
			}
			i += channels
		}
	}
	return b
}

// ToImage converts b to a standard library image for use with encoders
// and third-party processing libraries.
//
// 1-channel buffers become *image.Gray, 3-channel buffers *image.NRGBA
// with full alpha (channel order read as RGB), and 4-channel buffers
// *image.NRGBA.
func (b *Buffer) ToImage() image.Image {
	switch b.Channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width], b.Pix[y*b.Width:(y+1)*b.Width])
		}
		return img
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width*4], b.Pix[y*b.Width*4:(y+1)*b.Width*4])
		}
		return img
	default:
		img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
		si := 0
		for y := 0; y < b.Height; y++ {
			di := y * img.Stride
			for x := 0; x < b.Width; x++ {
				img.Pix[di] = b.Pix[si]
				img.Pix[di+1] = b.Pix[si+1]
				img.Pix[di+2] = b.Pix[si+2]
				img.Pix[di+3] = 0xff
				si += 3
				di += 4
			}
		}
		return img
	}
}

// fromConverted reads a processed image back into a buffer with the
// given channel count. Used after round trips through image-processing
// libraries so transforms preserve the input's channel count.
func fromConverted(img image.Image, channels int) *Buffer {
	b := FromImage(img)
	if b.Channels == channels {
		return b
	}
	out := &Buffer{
		Pix:      make([]uint8, b.Width*b.Height*channels),
		Width:    b.Width,
		Height:   b.Height,
		Channels: channels,
	}
	for i, j := 0, 0; i < len(b.Pix); i, j = i+b.Channels, j+channels {
		switch {
		case channels == 1:
			// Library output for a gray source keeps R == G == B.
			out.Pix[j] = b.Pix[i]
		case b.Channels == 1:
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = b.Pix[i], b.Pix[i], b.Pix[i]
			if channels == 4 {
				out.Pix[j+3] = 0xff
			}
		case channels == 4:
			out.Pix[j], out.Pix[j+1], out.Pix[j+2], out.Pix[j+3] = b.Pix[i], b.Pix[i+1], b.Pix[i+2], 0xff
		default:
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = b.Pix[i], b.Pix[i+1], b.Pix[i+2]
		}
	}
	return out
}
