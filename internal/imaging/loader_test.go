package imaging

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTempImage encodes b as PNG into a fresh temp file with the given
// name and returns its path.
func writeTempImage(t *testing.T, name string, b *Buffer) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, b.ToImage()))

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoad_PNG(t *testing.T) {
	path := writeTempImage(t, "fixture.png", uniformBuf(t, 10, 10, Pixel{128}))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 10, b.Width)
	assert.Equal(t, 10, b.Height)
	assert.Equal(t, Pixel{128}, b.At(5, 5))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.png"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.NotEmpty(t, le.Path)
}

func TestLoad_DetectsByContentNotExtension(t *testing.T) {
	// PNG bytes behind a .jpg extension must still decode as PNG.
	path := writeTempImage(t, "mislabeled.jpg", uniformBuf(t, 6, 4, Pixel{200}))

	b, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 6, b.Width)
	assert.Equal(t, 4, b.Height)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte("this is not an image"))

	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.Empty(t, le.Path)
}

func TestDecode_PNGBytes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, uniformBuf(t, 7, 3, Pixel{1, 2, 3, 255}).ToImage()))

	b, err := Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 7, b.Width)
	assert.Equal(t, 3, b.Height)
}

func TestSave_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		buf  Pixel
	}{
		{"gray png", "out.png", Pixel{90}},
		{"rgba png", "out.png", Pixel{10, 20, 30, 255}},
		{"rgba bmp", "out.bmp", Pixel{10, 20, 30, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := uniformBuf(t, 12, 9, tt.buf)
			path := filepath.Join(t.TempDir(), tt.ext)
			require.NoError(t, Save(b, path))

			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, b.Width, got.Width)
			assert.Equal(t, b.Height, got.Height)
			assert.Equal(t, b.At(3, 3), got.At(3, 3))
		})
	}
}

func TestSave_JPEG(t *testing.T) {
	// JPEG is lossy; check dimensions and that the pixel is close.
	b := uniformBuf(t, 16, 16, Pixel{100, 150, 200})
	path := filepath.Join(t.TempDir(), "out.jpg")
	require.NoError(t, Save(b, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, got.Width)
	assert.Equal(t, 16, got.Height)
	px := got.At(8, 8)
	assert.InDelta(t, 100, int(px[0]), 10)
	assert.InDelta(t, 150, int(px[1]), 10)
	assert.InDelta(t, 200, int(px[2]), 10)
}

func TestSave_UnsupportedExtension(t *testing.T) {
	b := uniformBuf(t, 2, 2, Pixel{0})
	err := Save(b, filepath.Join(t.TempDir(), "out.webp"))

	var ipe *InvalidParameterError
	require.ErrorAs(t, err, &ipe)
}

func TestSave_InvalidBuffer(t *testing.T) {
	bad := &Buffer{Pix: make([]uint8, 3), Width: 2, Height: 2, Channels: 3}
	err := Save(bad, filepath.Join(t.TempDir(), "out.png"))

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestBufferCache_LoadAndCache(t *testing.T) {
	path := writeTempImage(t, "cached.png", uniformBuf(t, 8, 8, Pixel{50}))
	cache := NewBufferCache()

	first, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// Remove the backing file; the second load must come from the cache.
	require.NoError(t, os.Remove(path))
	second, err := cache.Load(path)
	require.NoError(t, err)
	assert.True(t, Equal(first, second))
}

func TestBufferCache_ReturnsClones(t *testing.T) {
	path := writeTempImage(t, "cloned.png", uniformBuf(t, 4, 4, Pixel{50}))
	cache := NewBufferCache()

	first, err := cache.Load(path)
	require.NoError(t, err)
	first.SetAt(0, 0, Pixel{99})

	second, err := cache.Load(path)
	require.NoError(t, err)
	assert.Equal(t, Pixel{50}, second.At(0, 0), "mutating a returned buffer corrupted the cache")
}

func TestBufferCache_EvictAndClear(t *testing.T) {
	pathA := writeTempImage(t, "a.png", uniformBuf(t, 2, 2, Pixel{1}))
	pathB := writeTempImage(t, "b.png", uniformBuf(t, 2, 2, Pixel{2}))
	cache := NewBufferCache()

	_, err := cache.Load(pathA)
	require.NoError(t, err)
	_, err = cache.Load(pathB)
	require.NoError(t, err)
	require.Equal(t, 2, cache.Len())

	cache.Evict(pathA)
	assert.Equal(t, 1, cache.Len())
	cache.Evict("never-loaded")
	assert.Equal(t, 1, cache.Len())

	cache.Clear()
	assert.Equal(t, 0, cache.Len())
}

func TestBufferCache_Concurrent(t *testing.T) {
	path := writeTempImage(t, "conc.png", uniformBuf(t, 16, 16, Pixel{77}))
	cache := NewBufferCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := cache.Load(path)
			assert.NoError(t, err)
			assert.Equal(t, 16, b.Width)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, cache.Len())
}
