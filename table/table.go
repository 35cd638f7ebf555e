package table

import (
	"github.com/LasCondes/ParadoxDataKit/blob"
	"github.com/LasCondes/ParadoxDataKit/internal/hash"
	"github.com/LasCondes/ParadoxDataKit/section"
)

// Table is a fully decoded .DB file: header, field descriptors, records
// and the blob store backing any memo, binary or graphic fields.
type Table struct {
	Header  *section.TableHeader
	Fields  []section.FieldDescriptor
	Records []*Record

	// TableName and SortOrder are recovered from the header's name region.
	TableName string
	SortOrder string

	store      *blob.Store
	fieldIndex map[uint64]int

	// namesEnd is the offset just past the field names, where
	// secondary-index data files continue with their trailing metadata.
	namesEnd int
}

// FieldNames returns the stored field names in declaration order.
func (t *Table) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, d := range t.Fields {
		names[i] = d.Name
	}

	return names
}

// FieldDisplayNames returns the display name of every field, substituting
// "Field N" for unnamed columns.
func (t *Table) FieldDisplayNames() []string {
	names := make([]string, len(t.Fields))
	for i, d := range t.Fields {
		names[i] = d.DisplayName()
	}

	return names
}

// FieldByName returns the descriptor whose name matches case-insensitively.
func (t *Table) FieldByName(name string) (section.FieldDescriptor, bool) {
	idx, ok := t.fieldIndex[hash.FoldedID(name)]
	if !ok {
		return section.FieldDescriptor{}, false
	}

	return t.Fields[idx], true
}

// CodePage returns the 16-bit code-page identifier from the header.
func (t *Table) CodePage() uint16 { return t.Header.CodePage }

// AutoIncrement returns the live auto-increment counter (header offset 0x48).
func (t *Table) AutoIncrement() uint32 { return t.Header.AutoIncrement }

// AutoIncrementSeed returns the overlapping seed value (header offset
// 0x49). Both are surfaced because the two reads overlap in the header;
// callers cross-checking against known-good files need them separately.
func (t *Table) AutoIncrementSeed() uint32 { return t.Header.AutoIncrementSeed }

// NamesEnd returns the header offset just past the last field name, the
// point where secondary-index data files place their trailing metadata.
func (t *Table) NamesEnd() int { return t.namesEnd }

// FormattedRecords renders up to sampleCount records through
// Record.FormattedValues. A non-positive sampleCount renders every record.
func (t *Table) FormattedRecords(sampleCount int) [][]string {
	n := len(t.Records)
	if sampleCount > 0 && sampleCount < n {
		n = sampleCount
	}

	out := make([][]string, n)
	for i := 0; i < n; i++ {
		out[i] = t.Records[i].FormattedValues()
	}

	return out
}

func (t *Table) buildFieldIndex() {
	t.fieldIndex = make(map[uint64]int, len(t.Fields))
	// Later duplicates do not displace earlier fields.
	for i := len(t.Fields) - 1; i >= 0; i-- {
		t.fieldIndex[hash.FoldedID(t.Fields[i].Name)] = i
	}
}
