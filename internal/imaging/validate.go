package imaging

import "fmt"

// Validate checks the structural invariants of a buffer without
// touching pixel contents. It is pure and performs no I/O.
//
// The invariants are: non-nil buffer, positive width and height,
// channel count 1, 3, or 4, and a pixel slice of exactly
// Width*Height*Channels bytes. The returned *ValidationError names the
// first violated invariant.
func Validate(b *Buffer) error {
	if b == nil {
		return &ValidationError{Reason: "buffer is nil"}
	}
	if b.Width <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("width must be positive, got %d", b.Width)}
	}
	if b.Height <= 0 {
		return &ValidationError{Reason: fmt.Sprintf("height must be positive, got %d", b.Height)}
	}
	if b.Channels != 1 && b.Channels != 3 && b.Channels != 4 {
		return &ValidationError{Reason: fmt.Sprintf("channel count must be 1, 3, or 4, got %d", b.Channels)}
	}
	if want := b.Width * b.Height * b.Channels; len(b.Pix) != want {
		return &ValidationError{Reason: fmt.Sprintf("pixel data length %d does not match %dx%dx%d=%d",
			len(b.Pix), b.Width, b.Height, b.Channels, want)}
	}
	return nil
}
