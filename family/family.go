// Package family parses Paradox .FAM manifests, the loose text files
// listing every auxiliary file belonging to one table. Parsing never
// fails: unreadable bytes become spaces and the reference list may
// simply come out empty.
package family

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/format"
	"github.com/LasCondes/ParadoxDataKit/internal/hash"
)

var tokenPattern = regexp.MustCompile(`(?i)[A-Z0-9_\-]+\.[A-Z0-9]{1,4}`)

// Reference is one filename token found in a manifest.
type Reference struct {
	Name       string
	Kind       format.FamilyKind
	LineNumber int
	Context    string
}

// Family is a decoded .FAM manifest.
type Family struct {
	References []Reference
}

// Parse decodes a .FAM manifest. Bytes are treated as Windows-1252 text
// with embedded NULs acting as line breaks and non-printable bytes
// replaced by spaces; filename tokens are extracted per line and
// de-duplicated case-insensitively, first occurrence winning.
func Parse(data []byte) *Family {
	normalized := make([]byte, len(data))
	for i, b := range data {
		switch {
		case b == 0:
			normalized[i] = '\n'
		case b == '\n' || b == '\r' || b == '\t':
			normalized[i] = b
		case b < 0x20:
			normalized[i] = ' '
		default:
			normalized[i] = b
		}
	}

	text := strings.Map(func(r rune) rune {
		if r != '\n' && r != '\r' && r != '\t' && !unicode.IsPrint(r) {
			return ' '
		}
		return r
	}, encoding.RecoverText(normalized))

	fam := &Family{}
	seen := make(map[uint64]bool)

	for lineNo, line := range strings.Split(text, "\n") {
		for _, token := range tokenPattern.FindAllString(line, -1) {
			id := hash.FoldedID(token)
			if seen[id] {
				continue
			}
			seen[id] = true

			fam.References = append(fam.References, Reference{
				Name:       token,
				Kind:       Classify(token),
				LineNumber: lineNo + 1,
				Context:    strings.TrimSpace(line),
			})
		}
	}

	return fam
}

// Classify maps a filename to its family kind by extension. Xnn and Ynn
// patterns (leading X or Y followed by two hex digits) are secondary
// indexes; other three-character X/Y extensions such as XLS are not.
func Classify(name string) format.FamilyKind {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return format.FamilyOther
	}

	ext := strings.ToUpper(name[dot+1:])

	if len(ext) == 3 && (ext[0] == 'X' || ext[0] == 'Y') && isSecondaryIndexTail(ext[1:]) {
		return format.FamilySecondaryIndex
	}

	switch ext {
	case "DB":
		return format.FamilyTable
	case "PX":
		return format.FamilyPrimaryIndex
	case "MB":
		return format.FamilyMemo
	case "VAL":
		return format.FamilyValidity
	case "QBE":
		return format.FamilyQuery
	case "TV":
		return format.FamilyTableView
	case "RSL":
		return format.FamilyReport
	case "SSL", "SDL":
		return format.FamilyScript
	case "FAM":
		return format.FamilyFamily
	case "BMP", "PNG", "GIF", "TIF", "JPG", "PCX":
		return format.FamilyImage
	default:
		return format.FamilyOther
	}
}

// isSecondaryIndexTail matches the two-character hex counter of Xnn/Ynn
// index filenames.
func isSecondaryIndexTail(tail string) bool {
	for i := 0; i < len(tail); i++ {
		c := tail[i]
		if (c < '0' || c > '9') && (c < 'A' || c > 'F') {
			return false
		}
	}

	return true
}
