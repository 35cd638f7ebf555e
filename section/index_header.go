package section

import (
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/errs"
	"github.com/LasCondes/ParadoxDataKit/format"
)

// IndexHeaderSize is the minimum prefix of a .PX or .Ynn index file.
const IndexHeaderSize = 2048

// IndexHeader is the fixed metadata of a B-tree index file, parsed from
// its first 2048 bytes.
type IndexHeader struct {
	RecordLength   uint16              // byte offset 0x00
	HeaderLength   uint16              // byte offset 0x02
	FileType       format.FileTypeCode // byte offset 0x04
	BlockSizeCode  uint8               // byte offset 0x05, bytes = code * 1024
	RecordCount    uint32              // byte offset 0x06
	BlocksInUse    uint16              // byte offset 0x0A
	TotalBlocks    uint16              // byte offset 0x0C
	FirstDataBlock uint16              // byte offset 0x0E
	LastBlock      uint16              // byte offset 0x10
	RootBlock      uint16              // byte offset 0x1E
	LevelCount     uint8               // byte offset 0x20
	FieldCount     uint8               // byte offset 0x21
}

// Parse parses the index header from the leading bytes of the file.
func (h *IndexHeader) Parse(data []byte) error {
	if len(data) < IndexHeaderSize {
		return &errs.TooSmallError{Format: "index", Got: len(data), Minimum: IndexHeaderSize}
	}

	r := endian.NewReader(data)

	h.RecordLength, _ = r.Uint16()
	h.HeaderLength, _ = r.Uint16()
	fileType, _ := r.Uint8()
	h.FileType = format.FileTypeCode(fileType)
	h.BlockSizeCode, _ = r.Uint8()
	h.RecordCount, _ = r.Uint32()

	_ = r.Seek(0x0A)
	h.BlocksInUse, _ = r.Uint16()
	h.TotalBlocks, _ = r.Uint16()
	h.FirstDataBlock, _ = r.Uint16()
	h.LastBlock, _ = r.Uint16()

	_ = r.Seek(0x1E)
	h.RootBlock, _ = r.Uint16()
	h.LevelCount, _ = r.Uint8()
	h.FieldCount, _ = r.Uint8()

	return nil
}

// BlockSize returns the index block size in bytes.
func (h *IndexHeader) BlockSize() int {
	return int(h.BlockSizeCode) * 1024
}

// ParseIndexHeader parses an IndexHeader from the leading bytes of data.
func ParseIndexHeader(data []byte) (*IndexHeader, error) {
	h := &IndexHeader{}
	if err := h.Parse(data); err != nil {
		return nil, err
	}

	return h, nil
}
