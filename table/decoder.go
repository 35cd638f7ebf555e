package table

import (
	"github.com/LasCondes/ParadoxDataKit/blob"
	"github.com/LasCondes/ParadoxDataKit/section"
)

// blockHeaderSize is the fixed prefix of every data block; its content is
// not interpreted by this decoder.
const blockHeaderSize = 6

// Decode parses a complete .DB image: header, field descriptors and all
// data blocks. A nil store is allowed; blob fields then degrade to their
// inline leaders.
//
// Parameters:
//   - data: Full file bytes
//   - store: Blob store for the companion .MB, or nil
//
// Returns:
//   - *Table: Decoded table
//   - error: Header-level failures only; malformed fields degrade to null
func Decode(data []byte, store *blob.Store) (*Table, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}

	fieldInfo, err := section.ParseFieldDescriptors(data, header)
	if err != nil {
		return nil, err
	}

	return DecodeWithLayout(data, header, fieldInfo, store)
}

// DecodeWithLayout parses the data blocks of a table whose header and
// field layout were parsed beforehand. Secondary-index data files reuse
// this and then read their trailing header metadata.
func DecodeWithLayout(data []byte, header *section.TableHeader, fieldInfo *section.FieldInfo, store *blob.Store) (*Table, error) {
	t := &Table{
		Header:    header,
		Fields:    fieldInfo.Descriptors,
		TableName: fieldInfo.TableName,
		SortOrder: fieldInfo.SortOrder,
		store:     store,
		namesEnd:  fieldInfo.NamesEnd,
	}
	t.buildFieldIndex()

	recordSize := int(header.RecordSize)
	blockSize := header.BlockSize()
	dataStart := int(header.HeaderLength)

	if dataStart >= len(data) || blockSize <= blockHeaderSize || recordSize > blockSize-blockHeaderSize {
		return t, nil
	}

	target := int(header.RowCount)

	for blockStart := dataStart; blockStart < len(data); blockStart += blockSize {
		blockEnd := blockStart + blockSize
		if blockEnd > len(data) {
			blockEnd = len(data) // partial final block, truncated
		}

		slotStart := blockStart + blockHeaderSize
		for ; slotStart+recordSize <= blockEnd; slotStart += recordSize {
			row := data[slotStart : slotStart+recordSize]
			if isTombstone(row) {
				continue
			}

			t.Records = append(t.Records, &Record{raw: row, table: t})
			if target > 0 && len(t.Records) >= target {
				return t, nil
			}
		}
	}

	return t, nil
}

// isTombstone reports an all-zero record slot, left behind by deletions.
func isTombstone(row []byte) bool {
	for _, b := range row {
		if b != 0 {
			return false
		}
	}

	return true
}
