package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/image/bmp"
)

// jpegQuality is the encoding quality used by Save for JPEG output.
const jpegQuality = 90

// Load reads and decodes an image file into a Buffer.
//
// The format is detected from the file contents, not the extension;
// PNG, JPEG, GIF, and BMP are supported. Failures (missing file,
// undecodable data, zero-dimension result) are reported as *LoadError.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	b, err := Decode(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return b, nil
}

// Decode decodes in-memory image data into a Buffer.
//
// Format detection is content-based via the registered decoders (PNG,
// JPEG, GIF, BMP). Returns *LoadError if the data cannot be decoded or
// decodes to an image with a zero dimension.
func Decode(data []byte) (*Buffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Err: fmt.Errorf("decode: %w", err)}
	}
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, &LoadError{Err: fmt.Errorf("decoded to empty %dx%d image", bounds.Dx(), bounds.Dy())}
	}
	return FromImage(img), nil
}

// Save validates b and encodes it to path. The format is chosen by the
// file extension: .png, .jpg/.jpeg, .gif, or .bmp.
//
// Returns *ValidationError for a malformed buffer and
// *InvalidParameterError for an unrecognized extension.
func Save(b *Buffer, path string) error {
	if err := Validate(b); err != nil {
		return err
	}

	var buf bytes.Buffer
	img := b.ToImage()
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(&buf, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
	case ".gif":
		err = gif.Encode(&buf, img, nil)
	case ".bmp":
		err = bmp.Encode(&buf, img)
	default:
		return &InvalidParameterError{Param: "path", Reason: fmt.Sprintf("unsupported output format %q", filepath.Ext(path))}
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// BufferCache provides thread-safe caching of loaded buffers to avoid
// redundant disk reads.
//
// Buffers are keyed by the exact path string passed to Load; different
// paths to the same file get separate entries. Cached buffers remain in
// memory until removed with Evict or Clear. Callers receive clones, so
// later modification of a returned buffer cannot corrupt the cache.
type BufferCache struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
}

// NewBufferCache creates an empty cache ready for concurrent use.
func NewBufferCache() *BufferCache {
	return &BufferCache{
		buffers: make(map[string]*Buffer),
	}
}

// Load retrieves a buffer from the cache or loads it from disk if not
// cached. The returned buffer is a clone owned by the caller.
func (c *BufferCache) Load(path string) (*Buffer, error) {
	c.mu.RLock()
	if b, ok := c.buffers[path]; ok {
		c.mu.RUnlock()
		return b.Clone(), nil
	}
	c.mu.RUnlock()

	b, err := Load(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.buffers[path] = b
	c.mu.Unlock()

	return b.Clone(), nil
}

// Evict removes a single entry by its path. Unknown paths are ignored.
func (c *BufferCache) Evict(path string) {
	c.mu.Lock()
	delete(c.buffers, path)
	c.mu.Unlock()
}

// Clear removes all entries, freeing the associated memory.
func (c *BufferCache) Clear() {
	c.mu.Lock()
	c.buffers = make(map[string]*Buffer)
	c.mu.Unlock()
}

// Len returns the number of cached entries.
func (c *BufferCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.buffers)
}
