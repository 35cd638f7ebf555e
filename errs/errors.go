// Package errs defines the error values returned by the Paradox decoders.
//
// Header-level problems (truncated file, zero record size, bad signature)
// are returned as errors and abort decoding of that file. Field-level
// problems never surface here: a malformed field degrades to a null value
// and decoding continues, because the goal is maximum recovery from
// damaged archives.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRecordSize indicates a table header with record_size == 0.
	ErrInvalidRecordSize = errors.New("table header declares zero record size")

	// ErrMissingFieldDescriptors indicates that the field-info section
	// extends past the declared header area.
	ErrMissingFieldDescriptors = errors.New("field descriptors exceed header area")

	// ErrInvalidHeaderSize indicates a fixed-layout section of unexpected size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrBlobNotFound indicates that no candidate .MB file resolved the pointer.
	ErrBlobNotFound = errors.New("blob payload not found")

	// ErrOutOfBounds is the sentinel matched by OutOfBoundsError.
	ErrOutOfBounds = errors.New("read out of bounds")

	// ErrTooSmall is the sentinel matched by TooSmallError.
	ErrTooSmall = errors.New("buffer too small")

	// ErrInvalidSignature is the sentinel matched by InvalidSignatureError.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrUnsupportedFormat is the sentinel matched by UnsupportedFormatError.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// OutOfBoundsError reports a bounds-checked read that would run past the
// end of the buffer. The cursor is left unchanged by the failed read.
type OutOfBoundsError struct {
	Requested int
	Remaining int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("read out of bounds: requested %d bytes, %d remaining", e.Requested, e.Remaining)
}

func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// TooSmallError reports a buffer below the minimum prefix size for a format
// (128 bytes for tables, 2048 for indexes, 32 for table views).
type TooSmallError struct {
	Format  string
	Got     int
	Minimum int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("%s buffer too small: got %d bytes, need at least %d", e.Format, e.Got, e.Minimum)
}

func (e *TooSmallError) Is(target error) bool { return target == ErrTooSmall }

// InvalidSignatureError reports a container whose magic bytes do not match.
type InvalidSignatureError struct {
	Expected string
	Found    string
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature: expected %q, found %q", e.Expected, e.Found)
}

func (e *InvalidSignatureError) Is(target error) bool { return target == ErrInvalidSignature }

// UnsupportedFormatError reports a format the dispatcher has no decoder for.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %s", e.Format)
}

func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }

// IOError wraps a filesystem failure with the path that caused it.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
