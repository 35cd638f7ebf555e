package section

import (
	"fmt"
	"strings"

	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/errs"
	"github.com/LasCondes/ParadoxDataKit/format"
)

// FieldDescriptor describes one column of a table: its declaration order,
// type code, payload width in bytes and recovered name.
type FieldDescriptor struct {
	Index  int
	Type   format.FieldType
	Length int
	Name   string
}

// DisplayName returns the field name, or "Field N" (1-based) when the
// stored name is empty or whitespace only.
func (d FieldDescriptor) DisplayName() string {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Sprintf("Field %d", d.Index+1)
	}

	return d.Name
}

// FieldInfo is the parsed field descriptor region of a table header: the
// type/length pairs, the embedded table name, the per-field names and the
// trailing sort-order label.
//
// NamesEnd is the byte offset just past the last field name terminator;
// secondary-index data files continue with index metadata from there.
type FieldInfo struct {
	Descriptors []FieldDescriptor
	TableName   string
	SortOrder   string
	NamesEnd    int
}

// DisplayNames returns the display name of every field in declaration order.
func (fi *FieldInfo) DisplayNames() []string {
	names := make([]string, len(fi.Descriptors))
	for i, d := range fi.Descriptors {
		names[i] = d.DisplayName()
	}

	return names
}

// ParseFieldDescriptors parses the field-info region that follows the
// fixed table header.
//
// Layout, starting at the header's field-info offset:
//   - FieldCount pairs of (type u8, length u8)
//   - an opaque pointer section of 4 + 4*FieldCount bytes, skipped
//   - an opaque field-number section of 2*FieldCount bytes, skipped
//   - the NUL-padded table name
//   - FieldCount NUL-terminated field names in declaration order
//   - any remaining run of non-zero bytes: the sort-order label
//
// Returns:
//   - *FieldInfo: Parsed descriptors and names
//   - error: errs.ErrMissingFieldDescriptors when the descriptor pairs do
//     not fit inside the declared header area
func ParseFieldDescriptors(data []byte, header *TableHeader) (*FieldInfo, error) {
	fieldCount := int(header.FieldCount)
	infoOffset := header.FieldInfoOffset()

	headerArea := int(header.HeaderLength)
	if headerArea > len(data) {
		headerArea = len(data)
	}

	if infoOffset+2*fieldCount > headerArea {
		return nil, errs.ErrMissingFieldDescriptors
	}

	r := endian.NewReader(data[:headerArea])
	_ = r.Seek(infoOffset)

	fi := &FieldInfo{Descriptors: make([]FieldDescriptor, 0, fieldCount)}

	for i := 0; i < fieldCount; i++ {
		typeCode, _ := r.Uint8()
		length, _ := r.Uint8()
		fi.Descriptors = append(fi.Descriptors, FieldDescriptor{
			Index:  i,
			Type:   format.FieldType(typeCode),
			Length: int(length),
		})
	}

	// Pointer section and field-number section carry in-memory state the
	// on-disk reader has no use for.
	if err := r.Skip(4 + 4*fieldCount); err != nil {
		return fi, nil
	}
	if err := r.Skip(2 * fieldCount); err != nil {
		return fi, nil
	}

	name, ok := nextNonZeroRun(r)
	if !ok {
		fi.NamesEnd = r.Offset()
		return fi, nil
	}
	fi.TableName = encoding.RecoverText(name)

	skipZeros(r)

	for i := 0; i < fieldCount; i++ {
		raw, err := r.CString()
		if err != nil {
			break
		}
		fi.Descriptors[i].Name = encoding.RecoverText(raw)
	}
	fi.NamesEnd = r.Offset()

	if label, ok := nextNonZeroRun(r); ok {
		fi.SortOrder = encoding.RecoverText(label)
	}

	return fi, nil
}

// nextNonZeroRun skips NUL padding and collects the following run of
// non-zero bytes.
func nextNonZeroRun(r *endian.Reader) ([]byte, bool) {
	skipZeros(r)
	if r.Remaining() == 0 {
		return nil, false
	}

	raw, err := r.CString()
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	return raw, true
}

func skipZeros(r *endian.Reader) {
	for r.Remaining() > 0 {
		next, err := r.Bytes(1)
		if err != nil {
			return
		}
		if next[0] != 0 {
			_ = r.Seek(r.Offset() - 1)
			return
		}
	}
}
