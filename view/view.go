// Package view parses Paradox .TV table-view containers, a "Borland
// Standard File" holding the directory hint, table filename and display
// labels of a saved table view. The payload past the header strings is
// undocumented and preserved as opaque bytes.
package view

import (
	"strings"

	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/errs"
)

// Signature is the exact 21-byte ASCII prefix of every .TV file.
const Signature = "Borland Standard File"

// MinSize is the smallest buffer that can hold the signature and header.
const MinSize = 32

const maxLabels = 4

// TableView is a decoded .TV container.
type TableView struct {
	Signature        string
	Version          uint16
	Flags            uint16
	DeclaredLength   uint32
	FirstBlockOffset uint16

	DirectoryHint string
	TableFilename string
	Labels        []string

	// Remainder is the undocumented tail after the header strings,
	// preserved verbatim.
	Remainder []byte

	Size int
}

// ResolvedTableReference joins the directory hint and table filename,
// inserting a backslash unless the hint already ends in a separator.
func (tv *TableView) ResolvedTableReference() string {
	if tv.DirectoryHint == "" {
		return tv.TableFilename
	}
	if tv.TableFilename == "" {
		return tv.DirectoryHint
	}
	if strings.HasSuffix(tv.DirectoryHint, "/") || strings.HasSuffix(tv.DirectoryHint, "\\") {
		return tv.DirectoryHint + tv.TableFilename
	}

	return tv.DirectoryHint + "\\" + tv.TableFilename
}

// Parse decodes a .TV image.
//
// Returns:
//   - *TableView: Parsed container
//   - error: errs.TooSmallError below 32 bytes, errs.InvalidSignatureError
//     when the Borland Standard File prefix is absent
func Parse(data []byte) (*TableView, error) {
	if len(data) < MinSize {
		return nil, &errs.TooSmallError{Format: "tableview", Got: len(data), Minimum: MinSize}
	}

	found := string(data[:len(Signature)])
	if found != Signature {
		return nil, &errs.InvalidSignatureError{Expected: Signature, Found: found}
	}

	tv := &TableView{
		Signature: Signature,
		Size:      len(data),
	}

	r := endian.NewReader(data)
	_ = r.Seek(len(Signature))

	skipNULs(r)

	tv.Version, _ = r.Uint16()
	tv.Flags, _ = r.Uint16()
	tv.DeclaredLength, _ = r.Uint32()
	tv.FirstBlockOffset, _ = r.Uint16()

	skipNULs(r)

	collected := 0
	for r.Remaining() > 0 && collected < 2+maxLabels {
		raw, err := r.CString()
		if err != nil {
			break
		}
		if len(raw) == 0 {
			continue
		}

		s := encoding.RecoverText(raw)
		switch collected {
		case 0:
			tv.DirectoryHint = s
		case 1:
			tv.TableFilename = s
		default:
			tv.Labels = append(tv.Labels, s)
		}
		collected++
	}

	if r.Remaining() > 0 {
		tv.Remainder, _ = r.Bytes(r.Remaining())
	}

	return tv, nil
}

func skipNULs(r *endian.Reader) {
	for r.Remaining() > 0 {
		b, err := r.Bytes(1)
		if err != nil {
			return
		}
		if b[0] != 0 {
			_ = r.Seek(r.Offset() - 1)
			return
		}
	}
}
