// Package blob resolves Paradox memo, binary, OLE and graphic field
// payloads from the companion .MB file.
//
// A blob-typed field stores a small inline preview (the leader) followed
// by a 10-byte pointer addressing a block inside the .MB. Two block
// layouts exist: type 0x02 holds a single large blob, type 0x03 holds a
// directory of up to 63 sub-blobs. Anything else counts as a resolution
// failure and the caller falls back to the leader.
package blob

// PointerSize is the fixed trailer of every blob-typed field.
const PointerSize = 10

// Pointer is the 10-byte blob pointer embedded at the end of a blob field.
type Pointer struct {
	OffsetRaw uint32 // low 8 bits: sub-blob index; high 24 bits: block offset
	Length    uint32
	ModNumber uint16
}

// Index returns the sub-blob index within a type-0x03 directory block.
// The value 0xFF means the pointer addresses a whole type-0x02 block.
func (p Pointer) Index() int {
	return int(p.OffsetRaw & 0xFF)
}

// BlockOffset returns the byte offset of the addressed block in the .MB.
func (p Pointer) BlockOffset() int {
	return int(p.OffsetRaw &^ 0xFF)
}

// Inline reports whether the field data is stored entirely in the leader.
func (p Pointer) Inline() bool {
	return p.OffsetRaw == 0
}

// SplitField splits a blob field's in-row bytes into the leader and the
// trailing 10-byte pointer. Fields shorter than the pointer are all
// leader, reported with ok == false.
func SplitField(field []byte) (leader []byte, ptr Pointer, ok bool) {
	if len(field) < PointerSize {
		return field, Pointer{}, false
	}

	tail := field[len(field)-PointerSize:]
	leader = field[:len(field)-PointerSize]

	ptr = Pointer{
		OffsetRaw: uint32(tail[0]) | uint32(tail[1])<<8 | uint32(tail[2])<<16 | uint32(tail[3])<<24,
		Length:    uint32(tail[4]) | uint32(tail[5])<<8 | uint32(tail[6])<<16 | uint32(tail[7])<<24,
		ModNumber: uint16(tail[8]) | uint16(tail[9])<<8,
	}

	return leader, ptr, true
}
