package imaging

import "fmt"

// SplitChannels separates b into one single-channel buffer per channel,
// in the buffer's channel order. A 1-channel input yields a single
// clone.
func SplitChannels(b *Buffer) ([]*Buffer, error) {
	if err := Validate(b); err != nil {
		return nil, err
	}
	if b.Channels == 1 {
		return []*Buffer{b.Clone()}, nil
	}

	planes := make([]*Buffer, b.Channels)
	for c := range planes {
		planes[c] = &Buffer{
			Pix:      make([]uint8, b.Width*b.Height),
			Width:    b.Width,
			Height:   b.Height,
			Channels: 1,
		}
	}
	for i, j := 0, 0; i < len(b.Pix); i, j = i+b.Channels, j+1 {
		for c := 0; c < b.Channels; c++ {
			planes[c].Pix[j] = b.Pix[i+c]
		}
	}
	return planes, nil
}

// MergeChannels interleaves single-channel planes back into one buffer.
// It is the inverse of SplitChannels: MergeChannels(SplitChannels(x))
// reproduces x exactly.
//
// Returns *InvalidParameterError when given no planes or a plane count
// that is not an accepted channel count, and *ChannelMismatchError when
// a plane is not single-channel or the planes disagree on dimensions.
func MergeChannels(planes []*Buffer) (*Buffer, error) {
	if len(planes) == 0 {
		return nil, &InvalidParameterError{Param: "planes", Reason: "no channel planes given"}
	}
	if len(planes) != 1 && len(planes) != 3 && len(planes) != 4 {
		return nil, &InvalidParameterError{Param: "planes", Reason: fmt.Sprintf(
			"%d planes cannot form a 1-, 3-, or 4-channel buffer", len(planes))}
	}

	first := planes[0]
	for i, p := range planes {
		if err := Validate(p); err != nil {
			return nil, err
		}
		if p.Channels != 1 {
			return nil, &ChannelMismatchError{Reason: fmt.Sprintf(
				"plane %d has %d channels, want 1", i, p.Channels)}
		}
		if p.Width != first.Width || p.Height != first.Height {
			return nil, &ChannelMismatchError{Reason: fmt.Sprintf(
				"plane %d is %dx%d, plane 0 is %dx%d", i, p.Width, p.Height, first.Width, first.Height)}
		}
	}

	if len(planes) == 1 {
		return first.Clone(), nil
	}

	out := &Buffer{
		Pix:      make([]uint8, first.Width*first.Height*len(planes)),
		Width:    first.Width,
		Height:   first.Height,
		Channels: len(planes),
	}
	for i, j := 0, 0; j < first.Width*first.Height; i, j = i+out.Channels, j+1 {
		for c, p := range planes {
			out.Pix[i+c] = p.Pix[j]
		}
	}
	return out, nil
}
