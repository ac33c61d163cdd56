package imaging

import "fmt"

// LoadError indicates that an image source could not be read or decoded,
// or that it decoded to an empty image.
type LoadError struct {
	// Path is the file path of the source, or empty for in-memory data.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load image: %v", e.Err)
	}
	return fmt.Sprintf("load image %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError indicates that a buffer violates a structural
// invariant. Reason names the violated invariant.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid image buffer: " + e.Reason
}

// InvalidParameterError indicates an out-of-range or inconsistent
// parameter to a helper, such as a non-positive target size or a crop
// rectangle that leaves the source bounds.
type InvalidParameterError struct {
	// Param is the name of the offending parameter.
	Param string

	// Reason describes why the value was rejected.
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Param, e.Reason)
}

// UnsupportedConversionError indicates a color-format pair outside the
// supported conversion set.
type UnsupportedConversionError struct {
	From Format
	To   Format
}

func (e *UnsupportedConversionError) Error() string {
	return fmt.Sprintf("unsupported color conversion: %s to %s", e.From, e.To)
}

// ChannelMismatchError indicates channel buffers whose shapes or counts
// are inconsistent with each other or with the operation.
type ChannelMismatchError struct {
	Reason string
}

func (e *ChannelMismatchError) Error() string {
	return "channel mismatch: " + e.Reason
}
