package encoding

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// Windows1252Name is the canonical label reported for the default code page.
const Windows1252Name = "Windows-1252"

// RecoverText decodes legacy bytes as text, trying Windows-1252 first,
// then ISO-8859-1, then a printable-ASCII fallback where unmappable bytes
// become U+FFFD. Paradox text is Windows-1252 in practice; UTF-8 is never
// attempted because it is wrong in the common case.
func RecoverText(buf []byte) string {
	if len(buf) == 0 {
		return ""
	}

	if s, err := charmap.Windows1252.NewDecoder().Bytes(buf); err == nil && utf8.Valid(s) {
		return string(s)
	}
	if s, err := charmap.ISO8859_1.NewDecoder().Bytes(buf); err == nil && utf8.Valid(s) {
		return string(s)
	}

	return asciiFallback(buf)
}

// RecoverAlpha decodes an Alpha field payload: leading and trailing NULs
// and trailing spaces are padding, interior NULs are treated as spaces.
func RecoverAlpha(buf []byte) string {
	trimmed := bytes.TrimLeft(buf, "\x00")
	trimmed = bytes.TrimRight(trimmed, "\x00")
	trimmed = bytes.TrimRight(trimmed, " ")
	if len(trimmed) == 0 {
		return ""
	}

	if bytes.IndexByte(trimmed, 0) >= 0 {
		clean := make([]byte, len(trimmed))
		copy(clean, trimmed)
		for i, b := range clean {
			if b == 0 {
				clean[i] = ' '
			}
		}
		trimmed = clean
	}

	return RecoverText(trimmed)
}

// CutAtNUL returns the prefix of buf before the first NUL byte, or all of
// buf when it contains none.
func CutAtNUL(buf []byte) []byte {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return buf[:i]
	}

	return buf
}

// DetectText decodes free-form text such as a query body, confirming the
// Windows-1252 assumption with a charset detection pass first. It returns
// the decoded string together with the label of the encoding actually used.
func DetectText(buf []byte) (text string, encodingName string) {
	if len(buf) == 0 {
		return "", Windows1252Name
	}

	// Pure ASCII is a subset of Windows-1252; no detection needed.
	allASCII := true
	for _, b := range buf {
		if b >= 0x80 {
			allASCII = false
			break
		}
	}

	if !allASCII {
		detector := chardet.NewTextDetector()
		if result, err := detector.DetectBest(buf); err == nil && result != nil {
			if strings.EqualFold(result.Charset, "utf-8") && utf8.Valid(buf) {
				return string(buf), "UTF-8"
			}
		}
	}

	return RecoverText(buf), Windows1252Name
}

func asciiFallback(buf []byte) string {
	var sb strings.Builder
	sb.Grow(len(buf))
	for _, b := range buf {
		if b >= 0x20 && b < 0x7F {
			sb.WriteByte(b)
		} else {
			sb.WriteRune(utf8.RuneError)
		}
	}

	return sb.String()
}
