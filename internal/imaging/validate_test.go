package imaging

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_OK(t *testing.T) {
	for _, channels := range []int{1, 3, 4} {
		b, err := New(8, 6, channels)
		require.NoError(t, err)
		assert.NoError(t, Validate(b))
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name   string
		buf    *Buffer
		reason string
	}{
		{"nil buffer", nil, "nil"},
		{"zero width", &Buffer{Pix: []uint8{}, Width: 0, Height: 2, Channels: 1}, "width"},
		{"negative height", &Buffer{Pix: []uint8{}, Width: 2, Height: -3, Channels: 1}, "height"},
		{"two channels", &Buffer{Pix: make([]uint8, 8), Width: 2, Height: 2, Channels: 2}, "channel count"},
		{"short pixel data", &Buffer{Pix: make([]uint8, 5), Width: 2, Height: 2, Channels: 3}, "length"},
		{"long pixel data", &Buffer{Pix: make([]uint8, 50), Width: 2, Height: 2, Channels: 3}, "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.buf)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.True(t, strings.Contains(ve.Reason, tt.reason),
				"reason %q should name the violated invariant %q", ve.Reason, tt.reason)
		})
	}
}
