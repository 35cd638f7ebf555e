package endian

import (
	"encoding/binary"

	"github.com/LasCondes/ParadoxDataKit/errs"
)

// Reader provides positional, bounds-checked reads over an immutable byte
// buffer. Scalar reads are little-endian, matching every fixed-layout
// structure in the Paradox family.
//
// No partial reads: when a read would run past the end of the buffer it
// fails with errs.OutOfBoundsError and the cursor does not move.
type Reader struct {
	data   []byte
	offset int
}

// NewReader creates a Reader over data with the cursor at offset 0.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the current cursor position.
func (r *Reader) Offset() int { return r.offset }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.offset }

// Len returns the total buffer length.
func (r *Reader) Len() int { return len(r.data) }

func (r *Reader) require(n int) error {
	if rem := r.Remaining(); rem < n {
		return &errs.OutOfBoundsError{Requested: n, Remaining: rem}
	}

	return nil
}

// Uint8 reads one byte and advances the cursor.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.require(1); err != nil {
		return 0, err
	}

	b := r.data[r.offset]
	r.offset++

	return b, nil
}

// Uint16 reads a little-endian uint16 and advances the cursor.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.require(2); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint16(r.data[r.offset:])
	r.offset += 2

	return v, nil
}

// Uint32 reads a little-endian uint32 and advances the cursor.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.require(4); err != nil {
		return 0, err
	}

	v := binary.LittleEndian.Uint32(r.data[r.offset:])
	r.offset += 4

	return v, nil
}

// Int16 reads a little-endian int16 and advances the cursor.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	if err != nil {
		return 0, err
	}

	return int16(v), nil
}

// Bytes reads n bytes and advances the cursor. The returned slice aliases
// the underlying buffer; callers must not modify it.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, &errs.OutOfBoundsError{Requested: n, Remaining: r.Remaining()}
	}
	if err := r.require(n); err != nil {
		return nil, err
	}

	b := r.data[r.offset : r.offset+n]
	r.offset += n

	return b, nil
}

// Seek moves the cursor to an absolute offset within [0, Len()].
func (r *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(r.data) {
		return &errs.OutOfBoundsError{Requested: offset, Remaining: len(r.data)}
	}

	r.offset = offset

	return nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	if n < 0 || r.Remaining() < n {
		return &errs.OutOfBoundsError{Requested: n, Remaining: r.Remaining()}
	}

	r.offset += n

	return nil
}

// CString reads bytes up to the next NUL and advances the cursor past it.
// When no NUL remains the rest of the buffer is consumed and returned.
func (r *Reader) CString() ([]byte, error) {
	if r.offset >= len(r.data) {
		return nil, &errs.OutOfBoundsError{Requested: 1, Remaining: 0}
	}

	start := r.offset
	for r.offset < len(r.data) && r.data[r.offset] != 0 {
		r.offset++
	}

	b := r.data[start:r.offset]
	if r.offset < len(r.data) {
		r.offset++ // consume the terminator
	}

	return b, nil
}
