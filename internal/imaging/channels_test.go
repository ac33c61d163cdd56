package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMerge_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		buf  func(t *testing.T) *Buffer
	}{
		{"rgb pattern", func(t *testing.T) *Buffer { return patternBuf(t, 9, 7) }},
		{"rgba uniform", func(t *testing.T) *Buffer { return uniformBuf(t, 5, 5, Pixel{9, 8, 7, 200}) }},
		{"gray", func(t *testing.T) *Buffer { return uniformBuf(t, 6, 3, Pixel{42}) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.buf(t)
			planes, err := SplitChannels(b)
			require.NoError(t, err)
			require.Len(t, planes, b.Channels)

			merged, err := MergeChannels(planes)
			require.NoError(t, err)
			assert.True(t, Equal(b, merged), "merge(split(x)) must reproduce x")
		})
	}
}

func TestSplitChannels_PlaneContents(t *testing.T) {
	b := uniformBuf(t, 4, 4, Pixel{10, 20, 30})

	planes, err := SplitChannels(b)
	require.NoError(t, err)
	require.Len(t, planes, 3)

	assert.Equal(t, Pixel{10}, planes[0].At(2, 2))
	assert.Equal(t, Pixel{20}, planes[1].At(2, 2))
	assert.Equal(t, Pixel{30}, planes[2].At(2, 2))
	for _, p := range planes {
		assert.Equal(t, 1, p.Channels)
		assert.Equal(t, b.Width, p.Width)
		assert.Equal(t, b.Height, p.Height)
	}
}

func TestSplitChannels_GrayClones(t *testing.T) {
	b := uniformBuf(t, 3, 3, Pixel{5})

	planes, err := SplitChannels(b)
	require.NoError(t, err)
	require.Len(t, planes, 1)

	planes[0].SetAt(0, 0, Pixel{99})
	assert.Equal(t, Pixel{5}, b.At(0, 0), "split output must not alias the input")
}

func TestMergeChannels_DimensionMismatch(t *testing.T) {
	a := uniformBuf(t, 4, 4, Pixel{1})
	c := uniformBuf(t, 4, 5, Pixel{3})

	_, err := MergeChannels([]*Buffer{a, a.Clone(), c})
	var cme *ChannelMismatchError
	require.ErrorAs(t, err, &cme)
}

func TestMergeChannels_NonSinglePlane(t *testing.T) {
	a := uniformBuf(t, 4, 4, Pixel{1})
	rgb := uniformBuf(t, 4, 4, Pixel{1, 2, 3})

	_, err := MergeChannels([]*Buffer{a, rgb, a.Clone()})
	var cme *ChannelMismatchError
	require.ErrorAs(t, err, &cme)
}

func TestMergeChannels_BadPlaneCount(t *testing.T) {
	a := uniformBuf(t, 2, 2, Pixel{1})

	for _, planes := range [][]*Buffer{
		nil,
		{},
		{a, a.Clone()},
		{a, a.Clone(), a.Clone(), a.Clone(), a.Clone()},
	} {
		_, err := MergeChannels(planes)
		var ipe *InvalidParameterError
		require.ErrorAs(t, err, &ipe)
	}
}
