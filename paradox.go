// Package paradox decodes the Borland Paradox family of on-disk database
// artifacts into typed in-memory structures: .DB tables, .MB memo blobs,
// .PX/.Xnn/.Ynn indexes, .TV table views, .FAM manifests and .QBE query
// text. It targets archival databases where the original software is
// gone; the canonical use is pointing Load at files extracted from an old
// data directory and walking the rows, schemas and index structure.
//
// # Basic Usage
//
//	file, err := paradox.Load("ARCHIVE/CUSTOMER.DB")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if d, ok := file.Details.(*paradox.TableDetails); ok {
//	    for _, rec := range d.Table.Records {
//	        fmt.Println(rec.FormattedValues())
//	    }
//	}
//
// # Package Structure
//
// This package is the dispatcher: it infers a format from the file
// extension and routes the bytes to the right decoder. The decoders live
// in the table, blob, index, view and family packages; the shared
// primitives (bounds-checked reads, the sign-biased numeric transforms,
// Windows-1252 recovery) live in endian and encoding.
//
// # Error Model
//
// Header-level failures are fatal for that file. Field-level damage
// degrades to null values, blob failures degrade to the inline leader,
// and .FAM parsing never fails: the goal is maximum recovery from
// damaged archives.
package paradox

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/LasCondes/ParadoxDataKit/blob"
	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/errs"
	"github.com/LasCondes/ParadoxDataKit/family"
	"github.com/LasCondes/ParadoxDataKit/format"
	"github.com/LasCondes/ParadoxDataKit/index"
	"github.com/LasCondes/ParadoxDataKit/section"
	"github.com/LasCondes/ParadoxDataKit/table"
	"github.com/LasCondes/ParadoxDataKit/view"
)

// File is the result of decoding one Paradox artifact.
type File struct {
	Path    string
	Format  format.FormatKind
	Size    int
	Details Details
}

// Details is the closed union of per-format decoding results.
type Details interface {
	isDetails()
}

// TableDetails carries a decoded .DB table.
type TableDetails struct {
	Table *table.Table
}

// QueryDetails carries the raw text of a .QBE file. Queries are not
// evaluated; only the text and the encoding used to recover it surface.
type QueryDetails struct {
	Text         string
	EncodingUsed string
}

// TableViewDetails carries a decoded .TV container.
type TableViewDetails struct {
	View *view.TableView
}

// FamilyDetails carries a decoded .FAM manifest.
type FamilyDetails struct {
	Family *family.Family
}

// IndexDetails carries a decoded .PX or .Ynn B-tree index.
type IndexDetails struct {
	Index *index.Index
}

// SecondaryIndexDataDetails carries a decoded .Xnn index data file.
type SecondaryIndexDataDetails struct {
	Data *index.SecondaryData
}

// BinaryDetails carries the generic fallback for formats without a
// structural decoder (reports, scripts, spreadsheets, snapshots and
// unknown extensions).
type BinaryDetails struct {
	Binary *GenericBinary
}

func (*TableDetails) isDetails()              {}
func (*QueryDetails) isDetails()              {}
func (*TableViewDetails) isDetails()          {}
func (*FamilyDetails) isDetails()             {}
func (*IndexDetails) isDetails()              {}
func (*SecondaryIndexDataDetails) isDetails() {}
func (*BinaryDetails) isDetails()             {}

// InferFormat maps a file path to its format by lowercased extension.
func InferFormat(path string) format.FormatKind {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	switch ext {
	case "db":
		return format.KindTable
	case "qbe":
		return format.KindQuery
	case "rsl":
		return format.KindReport
	case "tv":
		return format.KindTableView
	case "fam":
		return format.KindFamily
	case "px":
		return format.KindPrimaryIndex
	case "ssl", "sdl":
		return format.KindScript
	case "xls", "xlsx":
		return format.KindSpreadsheet
	case "bak", "tmp":
		return format.KindSnapshot
	}

	switch {
	case strings.HasPrefix(ext, "x") && ext != "":
		return format.KindSecondaryIndexData
	case strings.HasPrefix(ext, "y") && ext != "":
		return format.KindSecondaryIndex
	default:
		return format.KindUnknown
	}
}

// Load reads the file at path, infers its format from the extension and
// decodes it. Tables and secondary-index data get a blob store rooted at
// the file's directory, so memo and graphic fields resolve against the
// sibling .MB.
//
// Returns:
//   - *File: Decoded file
//   - error: errs.IOError when the file is unreadable, or the decoder's
//     header-level failure
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errs.IOError{Path: path, Err: err}
	}

	kind := InferFormat(path)

	file, derr := decode(data, kind, path)
	if derr != nil {
		return nil, derr
	}
	file.Path = path

	return file, nil
}

// LoadBytes decodes an in-memory buffer as the given format, skipping
// extension inference. Without a path there is no blob store; blob fields
// degrade to their inline leaders.
func LoadBytes(data []byte, kind format.FormatKind) (*File, error) {
	return decode(data, kind, "")
}

func decode(data []byte, kind format.FormatKind, path string) (*File, error) {
	file := &File{
		Format: kind,
		Size:   len(data),
	}

	switch kind {
	case format.KindTable:
		t, err := decodeTable(data, path)
		if err != nil {
			return nil, err
		}
		file.Details = &TableDetails{Table: t}

	case format.KindQuery:
		text, enc := encoding.DetectText(data)
		file.Details = &QueryDetails{Text: text, EncodingUsed: enc}

	case format.KindTableView:
		tv, err := view.Parse(data)
		if err != nil {
			return nil, err
		}
		file.Details = &TableViewDetails{View: tv}

	case format.KindFamily:
		file.Details = &FamilyDetails{Family: family.Parse(data)}

	case format.KindPrimaryIndex, format.KindSecondaryIndex:
		idx, err := index.Parse(data, kind)
		if err != nil {
			return nil, err
		}
		file.Details = &IndexDetails{Index: idx}

	case format.KindSecondaryIndexData:
		sd, err := index.ParseSecondaryData(data, storeFor(data, path))
		if err != nil {
			return nil, err
		}
		file.Details = &SecondaryIndexDataDetails{Data: sd}

	case format.KindReport, format.KindScript, format.KindSpreadsheet, format.KindSnapshot, format.KindUnknown:
		file.Details = &BinaryDetails{Binary: NewGenericBinary(data)}

	default:
		return nil, &errs.UnsupportedFormatError{Format: kind.String()}
	}

	return file, nil
}

func decodeTable(data []byte, path string) (*table.Table, error) {
	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil, err
	}

	fieldInfo, err := section.ParseFieldDescriptors(data, header)
	if err != nil {
		return nil, err
	}

	var store *blob.Store
	if path != "" {
		store = blob.NewStore(path, fieldInfo.TableName)
	}

	return table.DecodeWithLayout(data, header, fieldInfo, store)
}

func storeFor(data []byte, path string) *blob.Store {
	if path == "" {
		return nil
	}

	header, err := section.ParseTableHeader(data)
	if err != nil {
		return nil
	}
	fieldInfo, err := section.ParseFieldDescriptors(data, header)
	if err != nil {
		return nil
	}

	return blob.NewStore(path, fieldInfo.TableName)
}
