// Package section implements the fixed-layout header structures of the
// Paradox file family: the 128-byte .DB table header prefix, the field
// descriptor region that follows it, and the 2048-byte index file header.
package section

import (
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/errs"
	"github.com/LasCondes/ParadoxDataKit/format"
)

// TableHeaderSize is the fixed prefix every .DB file must carry.
const TableHeaderSize = 128

// Field-info offsets, selected by whether the file carries the extended
// data header.
const (
	fieldInfoOffsetBase     = 0x58
	fieldInfoOffsetExtended = 0x78
)

// TableHeader is the fixed metadata parsed from the first 128 bytes of a
// .DB file (and of .Xnn secondary-index data files, which share the
// table layout).
type TableHeader struct {
	RecordSize         uint16              // byte offset 0x00
	HeaderLength       uint16              // byte offset 0x02
	FileType           format.FileTypeCode // byte offset 0x04
	MaxTableSizeFactor uint8               // byte offset 0x05, block size = factor * 1024
	RowCount           uint32              // byte offset 0x06
	FieldCount         uint16              // byte offset 0x21
	KeyFieldCount      uint16              // byte offset 0x23
	FileVersionID      uint8               // byte offset 0x39
	AutoIncrement      uint32              // byte offset 0x48
	AutoIncrementSeed  uint32              // byte offset 0x49, overlaps AutoIncrement
	CodePage           uint16              // byte offset 0x6A
}

// Parse parses the header from the leading bytes of a .DB file.
//
// Parameters:
//   - data: Full file bytes (at least 128)
//
// Returns:
//   - error: errs.TooSmallError below 128 bytes, errs.ErrInvalidRecordSize
//     when the header declares a zero record size
func (h *TableHeader) Parse(data []byte) error {
	if len(data) < TableHeaderSize {
		return &errs.TooSmallError{Format: "table", Got: len(data), Minimum: TableHeaderSize}
	}

	r := endian.NewReader(data)

	h.RecordSize, _ = r.Uint16()
	h.HeaderLength, _ = r.Uint16()
	fileType, _ := r.Uint8()
	h.FileType = format.FileTypeCode(fileType)
	h.MaxTableSizeFactor, _ = r.Uint8()
	h.RowCount, _ = r.Uint32()

	_ = r.Seek(0x21)
	h.FieldCount, _ = r.Uint16()
	h.KeyFieldCount, _ = r.Uint16()

	_ = r.Seek(0x39)
	h.FileVersionID, _ = r.Uint8()

	// The two auto-increment reads overlap on purpose: 0x48 is the live
	// counter, 0x49 is reported separately as the seed. Callers get both.
	h.AutoIncrement, _ = endian.PeekUint32(data, 0x48)
	h.AutoIncrementSeed, _ = endian.PeekUint32(data, 0x49)

	h.CodePage, _ = endian.PeekUint16(data, 0x6A)

	if h.RecordSize == 0 {
		return errs.ErrInvalidRecordSize
	}

	return nil
}

// NormalizedVersion maps the raw file-version byte onto the Paradox
// release line: 30, 35, 40, 50 or 70.
func (h *TableHeader) NormalizedVersion() int {
	switch {
	case h.FileVersionID <= 0x03:
		return 30
	case h.FileVersionID == 0x04:
		return 35
	case h.FileVersionID <= 0x09:
		return 40
	case h.FileVersionID <= 0x0B:
		return 50
	default:
		return 70
	}
}

// IncludesDataHeader reports whether the file carries the extended data
// header that shifts the field-info section to 0x78.
func (h *TableHeader) IncludesDataHeader() bool {
	return h.FileType.HasDataHeader(h.NormalizedVersion())
}

// FieldInfoOffset returns the byte offset of the field descriptor pairs.
func (h *TableHeader) FieldInfoOffset() int {
	if h.IncludesDataHeader() {
		return fieldInfoOffsetExtended
	}

	return fieldInfoOffsetBase
}

// BlockSize returns the data block size in bytes.
func (h *TableHeader) BlockSize() int {
	return int(h.MaxTableSizeFactor) * 1024
}

// ParseTableHeader parses a TableHeader from the leading bytes of data.
func ParseTableHeader(data []byte) (*TableHeader, error) {
	h := &TableHeader{}
	if err := h.Parse(data); err != nil {
		return nil, err
	}

	return h, nil
}
