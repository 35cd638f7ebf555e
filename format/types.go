package format

type (
	// FormatKind identifies a Paradox family file format, inferred from the
	// file extension or supplied explicitly by the caller.
	FormatKind uint8

	// FileTypeCode is the file-type byte at offset 0x04 of a .DB header.
	FileTypeCode uint8

	// FieldType is a Paradox field type code from a field descriptor.
	FieldType uint8

	// FamilyKind classifies an entry of a .FAM manifest by its extension.
	FamilyKind uint8
)

const (
	KindUnknown            FormatKind = iota
	KindTable                         // .DB
	KindQuery                         // .QBE
	KindReport                        // .RSL
	KindTableView                     // .TV
	KindFamily                        // .FAM
	KindPrimaryIndex                  // .PX
	KindSecondaryIndex                // .Ynn B-tree
	KindSecondaryIndexData            // .Xnn index data table
	KindScript                        // .SSL / .SDL
	KindSpreadsheet                   // .XLS / .XLSX
	KindSnapshot                      // .BAK / .TMP
)

const (
	FileTypeIndexedTable    FileTypeCode = 0x00
	FileTypePrimaryIndex    FileTypeCode = 0x01
	FileTypeUnindexedTable  FileTypeCode = 0x02
	FileTypeNonIncSecondary FileTypeCode = 0x03
	FileTypeSecondaryIndex  FileTypeCode = 0x04
	FileTypeIncSecondary    FileTypeCode = 0x05
	FileTypeSecondaryIndexG FileTypeCode = 0x07
	FileTypeIncSecondaryG   FileTypeCode = 0x08
)

const (
	FieldAlpha         FieldType = 0x01
	FieldDate          FieldType = 0x02
	FieldShort         FieldType = 0x03
	FieldLong          FieldType = 0x04
	FieldCurrency      FieldType = 0x05
	FieldNumber        FieldType = 0x06
	FieldLogical       FieldType = 0x07
	FieldMemo          FieldType = 0x08
	FieldLogicalAlt    FieldType = 0x09
	FieldBLOB          FieldType = 0x0C
	FieldBinary        FieldType = 0x0D
	FieldFormattedMemo FieldType = 0x0E
	FieldOLE           FieldType = 0x0F
	FieldGraphic       FieldType = 0x10
	FieldTime          FieldType = 0x14
	FieldTimestamp     FieldType = 0x15
	FieldAutoInc       FieldType = 0x16
	FieldBCD           FieldType = 0x17
	FieldBytes         FieldType = 0x18
)

const (
	FamilyTable FamilyKind = iota
	FamilyPrimaryIndex
	FamilySecondaryIndex
	FamilyMemo
	FamilyValidity
	FamilyQuery
	FamilyTableView
	FamilyReport
	FamilyScript
	FamilyFamily
	FamilyImage
	FamilyOther
)

func (k FormatKind) String() string {
	switch k {
	case KindTable:
		return "Table"
	case KindQuery:
		return "Query"
	case KindReport:
		return "Report"
	case KindTableView:
		return "TableView"
	case KindFamily:
		return "Family"
	case KindPrimaryIndex:
		return "PrimaryIndex"
	case KindSecondaryIndex:
		return "SecondaryIndex"
	case KindSecondaryIndexData:
		return "SecondaryIndexData"
	case KindScript:
		return "Script"
	case KindSpreadsheet:
		return "Spreadsheet"
	case KindSnapshot:
		return "Snapshot"
	default:
		return "Unknown"
	}
}

func (c FileTypeCode) String() string {
	switch c {
	case FileTypeIndexedTable:
		return "IndexedTable"
	case FileTypePrimaryIndex:
		return "PrimaryIndex"
	case FileTypeUnindexedTable:
		return "UnindexedTable"
	case FileTypeNonIncSecondary:
		return "NonIncrementingSecondaryIndex"
	case FileTypeSecondaryIndex:
		return "SecondaryIndex"
	case FileTypeIncSecondary:
		return "IncrementingSecondaryIndex"
	case FileTypeSecondaryIndexG:
		return "SecondaryIndexGuarded"
	case FileTypeIncSecondaryG:
		return "IncrementingSecondaryIndexGuarded"
	default:
		return "Unknown"
	}
}

// IsIndex reports whether the file-type byte denotes an index file rather
// than a data table.
func (c FileTypeCode) IsIndex() bool {
	switch c {
	case FileTypePrimaryIndex, FileTypeSecondaryIndex, FileTypeSecondaryIndexG:
		return true
	default:
		return false
	}
}

// HasDataHeader reports whether a file of this type carries the extended
// data header. Only table-like files of normalized version 40 or later do,
// which pushes the field-info section from 0x58 to 0x78.
func (c FileTypeCode) HasDataHeader(normalizedVersion int) bool {
	if normalizedVersion < 40 {
		return false
	}
	switch c {
	case FileTypeIndexedTable, FileTypeUnindexedTable, FileTypeNonIncSecondary, FileTypeIncSecondary:
		return true
	default:
		return false
	}
}

func (t FieldType) String() string {
	switch t {
	case FieldAlpha:
		return "Alpha"
	case FieldDate:
		return "Date"
	case FieldShort:
		return "Short"
	case FieldLong:
		return "Long"
	case FieldCurrency:
		return "Currency"
	case FieldNumber:
		return "Number"
	case FieldLogical, FieldLogicalAlt:
		return "Logical"
	case FieldMemo:
		return "Memo"
	case FieldBLOB:
		return "MemoBLOB"
	case FieldFormattedMemo:
		return "FormattedMemo"
	case FieldBinary:
		return "Binary"
	case FieldOLE:
		return "OLE"
	case FieldGraphic:
		return "Graphic"
	case FieldTime:
		return "Time"
	case FieldTimestamp:
		return "Timestamp"
	case FieldAutoInc:
		return "AutoInc"
	case FieldBCD:
		return "BCD"
	case FieldBytes:
		return "Bytes"
	default:
		return "Unknown"
	}
}

// IsBlob reports whether values of this type live in the companion .MB
// file and are addressed through a 10-byte blob pointer.
func (t FieldType) IsBlob() bool {
	switch t {
	case FieldMemo, FieldBLOB, FieldFormattedMemo, FieldBinary, FieldOLE, FieldGraphic:
		return true
	default:
		return false
	}
}

// IsMemo reports whether the blob payload should be recovered as text.
func (t FieldType) IsMemo() bool {
	switch t {
	case FieldMemo, FieldBLOB, FieldFormattedMemo:
		return true
	default:
		return false
	}
}

func (k FamilyKind) String() string {
	switch k {
	case FamilyTable:
		return "Table"
	case FamilyPrimaryIndex:
		return "PrimaryIndex"
	case FamilySecondaryIndex:
		return "SecondaryIndex"
	case FamilyMemo:
		return "Memo"
	case FamilyValidity:
		return "Validity"
	case FamilyQuery:
		return "Query"
	case FamilyTableView:
		return "TableView"
	case FamilyReport:
		return "Report"
	case FamilyScript:
		return "Script"
	case FamilyFamily:
		return "Family"
	case FamilyImage:
		return "Image"
	default:
		return "Other"
	}
}
