package index

import (
	"github.com/LasCondes/ParadoxDataKit/blob"
	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/section"
	"github.com/LasCondes/ParadoxDataKit/table"
)

// SecondaryData is a decoded .Xnn secondary-index data file: a regular
// table image plus the trailing header metadata that ties the index back
// to its base table.
type SecondaryData struct {
	Table *table.Table

	// FieldNumbers are references back into the base table identifying
	// the original columns of the indexed fields.
	FieldNumbers []uint16

	SortOrder  string
	IndexLabel string
}

// ParseSecondaryData decodes a .Xnn file. The record area is parsed
// exactly like a .DB table; the trailing metadata sits in the header
// region immediately after the field names.
//
// Returns:
//   - *SecondaryData: Decoded table and index metadata
//   - error: Header-level table parsing failures
func ParseSecondaryData(data []byte, store *blob.Store) (*SecondaryData, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}

	fieldInfo, err := section.ParseFieldDescriptors(data, header)
	if err != nil {
		return nil, err
	}

	t, err := table.DecodeWithLayout(data, header, fieldInfo, store)
	if err != nil {
		return nil, err
	}

	sd := &SecondaryData{Table: t}

	headerArea := int(header.HeaderLength)
	if headerArea > len(data) {
		headerArea = len(data)
	}
	if fieldInfo.NamesEnd >= headerArea {
		return sd, nil
	}

	r := endian.NewReader(data[:headerArea])
	_ = r.Seek(fieldInfo.NamesEnd)

	for i := 0; i < int(header.FieldCount); i++ {
		num, err := r.Uint16()
		if err != nil {
			return sd, nil
		}
		sd.FieldNumbers = append(sd.FieldNumbers, num)
	}

	if raw, err := r.CString(); err == nil {
		sd.SortOrder = encoding.RecoverText(raw)
	}
	if raw, err := r.CString(); err == nil {
		sd.IndexLabel = encoding.RecoverText(raw)
	}

	return sd, nil
}
