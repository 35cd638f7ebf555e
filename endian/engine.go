// Package endian provides byte order utilities for decoding Paradox files.
//
// Paradox headers, blob pointers and index block links are little-endian,
// while the numeric field payloads are big-endian with a sign-bit twist
// (handled in the encoding package). This package supplies the byte-order
// engines for both paths plus a bounds-checked positional Reader used by
// the table header, field descriptor, index and table-view parsers.
//
// # Basic Usage
//
//	r := endian.NewReader(data)
//	recordSize, err := r.Uint16()
//	headerLength, err := r.Uint16()
//
// All Reader operations fail with errs.OutOfBoundsError when insufficient
// bytes remain; a failed read leaves the cursor unchanged.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order
// operations. It is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine used for all
// Paradox header structures.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine used for Paradox
// numeric field payloads.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// PeekUint16 reads a little-endian uint16 at index without any cursor
// involvement. Returns false when fewer than two bytes remain at index.
func PeekUint16(data []byte, index int) (uint16, bool) {
	if index < 0 || index+2 > len(data) {
		return 0, false
	}

	return binary.LittleEndian.Uint16(data[index : index+2]), true
}

// PeekUint32 reads a little-endian uint32 at index without any cursor
// involvement. Returns false when fewer than four bytes remain at index.
func PeekUint32(data []byte, index int) (uint32, bool) {
	if index < 0 || index+4 > len(data) {
		return 0, false
	}

	return binary.LittleEndian.Uint32(data[index : index+4]), true
}
