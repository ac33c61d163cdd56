package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Drawing helpers clone their input and draw on the clone; the caller's
// buffer is never modified. Shape coordinates reaching outside the
// canvas are clipped to it rather than rejected: annotation is a
// best-effort overlay, so partial visibility beats failure. This is the
// one family of helpers where clamping is the intended policy.

// FillRect returns a copy of b with the rectangle r filled with c. The
// rectangle is clipped to the canvas.
//
// Returns *InvalidParameterError for a non-positive rectangle size or a
// color whose length does not match the channel count.
func FillRect(b *Buffer, r Rect, c Pixel) (*Buffer, error) {
	if err := checkDrawArgs(b, c); err != nil {
		return nil, err
	}
	if r.W <= 0 || r.H <= 0 {
		return nil, &InvalidParameterError{Param: "rect", Reason: fmt.Sprintf("rect size must be positive, got %dx%d", r.W, r.H)}
	}
	out := b.Clone()
	fillRectInPlace(out, r, c)
	return out, nil
}

// DrawRect returns a copy of b with the outline of r drawn in c at the
// given thickness, growing inward. The outline is clipped to the canvas.
//
// Returns *InvalidParameterError for a non-positive rectangle size or
// thickness, or a color whose length does not match the channel count.
func DrawRect(b *Buffer, r Rect, c Pixel, thickness int) (*Buffer, error) {
	if err := checkDrawArgs(b, c); err != nil {
		return nil, err
	}
	if r.W <= 0 || r.H <= 0 {
		return nil, &InvalidParameterError{Param: "rect", Reason: fmt.Sprintf("rect size must be positive, got %dx%d", r.W, r.H)}
	}
	if thickness <= 0 {
		return nil, &InvalidParameterError{Param: "thickness", Reason: fmt.Sprintf("thickness must be positive, got %d", thickness)}
	}

	out := b.Clone()
	t := thickness
	fillRectInPlace(out, Rect{X: r.X, Y: r.Y, W: r.W, H: t}, c)
	fillRectInPlace(out, Rect{X: r.X, Y: r.Y + r.H - t, W: r.W, H: t}, c)
	fillRectInPlace(out, Rect{X: r.X, Y: r.Y, W: t, H: r.H}, c)
	fillRectInPlace(out, Rect{X: r.X + r.W - t, Y: r.Y, W: t, H: r.H}, c)
	return out, nil
}

// DrawGrid returns a copy of b overlaid with a coordinate grid: a line
// every spacing pixels in both directions. With labeled set, each
// intersection is annotated with its "x,y" coordinates.
//
// Returns *InvalidParameterError for a non-positive spacing or a color
// whose length does not match the channel count.
func DrawGrid(b *Buffer, spacing int, c Pixel, labeled bool) (*Buffer, error) {
	if err := checkDrawArgs(b, c); err != nil {
		return nil, err
	}
	if spacing <= 0 {
		return nil, &InvalidParameterError{Param: "spacing", Reason: fmt.Sprintf("spacing must be positive, got %d", spacing)}
	}

	img := b.Clone().ToImage().(draw.Image)
	gc := pixelColor(c)

	for x := spacing; x < b.Width; x += spacing {
		for y := 0; y < b.Height; y++ {
			img.Set(x, y, gc)
		}
	}
	for y := spacing; y < b.Height; y += spacing {
		for x := 0; x < b.Width; x++ {
			img.Set(x, y, gc)
		}
	}

	if labeled {
		fg := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
		bg := color.NRGBA{A: 0xff}
		for y := spacing; y < b.Height; y += spacing {
			for x := spacing; x < b.Width; x += spacing {
				labelAt(img, x+2, y+2, fmt.Sprintf("%d,%d", x, y), fg, bg)
			}
		}
	}

	return fromConverted(img, b.Channels), nil
}

// DrawLabel returns a copy of b with text rendered at (x, y) in the
// foreground color on a background box. The label is clipped to the
// canvas, so a partially off-canvas label is simply cut off.
//
// Returns *InvalidParameterError if either color's length does not
// match the channel count.
func DrawLabel(b *Buffer, x, y int, text string, fg, bg Pixel) (*Buffer, error) {
	if err := checkDrawArgs(b, fg); err != nil {
		return nil, err
	}
	if len(bg) != b.Channels {
		return nil, &InvalidParameterError{Param: "bg", Reason: fmt.Sprintf(
			"color has %d values for a %d-channel buffer", len(bg), b.Channels)}
	}

	img := b.Clone().ToImage().(draw.Image)
	labelAt(img, x, y, text, pixelColor(fg), pixelColor(bg))
	return fromConverted(img, b.Channels), nil
}

// checkDrawArgs validates the buffer and the primary color argument
// shared by all drawing helpers.
func checkDrawArgs(b *Buffer, c Pixel) error {
	if err := Validate(b); err != nil {
		return err
	}
	if len(c) != b.Channels {
		return &InvalidParameterError{Param: "color", Reason: fmt.Sprintf(
			"color has %d values for a %d-channel buffer", len(c), b.Channels)}
	}
	return nil
}

// fillRectInPlace fills r with c, clipped to the buffer. The color
// length is assumed validated by the caller.
func fillRectInPlace(b *Buffer, r Rect, c Pixel) {
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W, r.Y+r.H
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > b.Width {
		x1 = b.Width
	}
	if y1 > b.Height {
		y1 = b.Height
	}
	for y := y0; y < y1; y++ {
		i := (y*b.Width + x0) * b.Channels
		for x := x0; x < x1; x++ {
			copy(b.Pix[i:i+b.Channels], c)
			i += b.Channels
		}
	}
}

// labelAt renders text with its background box onto img at (x, y),
// relying on the font drawer and draw.Draw for canvas clipping.
func labelAt(img draw.Image, x, y int, text string, fg, bg color.NRGBA) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()

	box := image.Rect(x-1, y-1, x+w+1, y+face.Height+1).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}

// pixelColor widens a per-channel value to NRGBA for use with the
// stdlib draw machinery. Grayscale replicates, 3-channel gets full
// alpha.
func pixelColor(px Pixel) color.NRGBA {
	switch len(px) {
	case 1:
		return color.NRGBA{R: px[0], G: px[0], B: px[0], A: 0xff}
	case 4:
		return color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]}
	default:
		return color.NRGBA{R: px[0], G: px[1], B: px[2], A: 0xff}
	}
}
