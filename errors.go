package textio

import (
	"errors"
	"fmt"
)

var (
	// ErrNilIO indicates that a Reader constructor was called with a nil io.Reader.
	ErrNilIO = errors.New("textio: NewReader called with a nil io.Reader")

	// ErrNilDecoder indicates that a Reader constructor was called with a nil
	// Decoder or Encoding.
	ErrNilDecoder = errors.New("textio: NewReader called with a nil Decoder")

	// ErrClosed indicates an operation on a Reader after Close.
	ErrClosed = errors.New("textio: reader is closed")

	// ErrSizeTooSmall indicates a staging buffer size too small to hold a
	// single encoded unit of any supported charset.
	ErrSizeTooSmall = errors.New("textio: staging buffer size smaller than 16")

	// ErrUnsupportedEncoding indicates that no charset is registered under the
	// requested name.
	ErrUnsupportedEncoding = errors.New("textio: unsupported encoding")

	// ErrInvalidRange indicates a nil output buffer or an out-of-bounds
	// offset/length window. Raised before any I/O is attempted.
	ErrInvalidRange = errors.New("textio: invalid buffer range")
)

// MalformedInputError reports input bytes that do not form a valid sequence
// under the active charset and that the decoder's substitution policy could
// not absorb. Length is the byte span of the offending run.
type MalformedInputError struct {
	Length int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("textio: malformed input of length %d", e.Length)
}

// UnmappableRuneError reports a valid encoded sequence with no corresponding
// rune in the target repertoire. Length is the byte span of the input.
type UnmappableRuneError struct {
	Length int
}

func (e *UnmappableRuneError) Error() string {
	return fmt.Sprintf("textio: unmappable character of length %d", e.Length)
}
