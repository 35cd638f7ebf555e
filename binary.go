package paradox

import (
	"fmt"

	"github.com/LasCondes/ParadoxDataKit/internal/pool"
)

// PreviewSize is the number of leading bytes surfaced eagerly on a
// GenericBinary; everything else is computed on demand.
const PreviewSize = 64

// GenericBinary is the fallback shape for formats without a structural
// decoder: reports, scripts, spreadsheets, snapshots and unknown
// extensions. It exposes the size, a leading preview, and on-demand hex
// dump and ASCII-segment detection.
type GenericBinary struct {
	Size    int
	Preview []byte

	data []byte
}

// NewGenericBinary wraps raw bytes in the generic fallback shape.
func NewGenericBinary(data []byte) *GenericBinary {
	preview := data
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}

	return &GenericBinary{
		Size:    len(data),
		Preview: preview,
		data:    data,
	}
}

// Bytes returns the full underlying buffer.
func (g *GenericBinary) Bytes() []byte { return g.data }

// HexDump renders up to limit bytes as classic 16-byte rows: offset, hex
// columns and an ASCII gutter. A non-positive limit dumps everything.
func (g *GenericBinary) HexDump(limit int) string {
	data := g.data
	if limit > 0 && limit < len(data) {
		data = data[:limit]
	}

	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	for row := 0; row < len(data); row += 16 {
		end := row + 16
		if end > len(data) {
			end = len(data)
		}

		buf.WriteString(fmt.Sprintf("%08X  ", row))

		for i := row; i < row+16; i++ {
			if i < end {
				buf.WriteString(fmt.Sprintf("%02X ", data[i]))
			} else {
				buf.WriteString("   ")
			}
			if i == row+7 {
				buf.WriteByte(' ')
			}
		}

		buf.WriteString(" |")
		for i := row; i < end; i++ {
			b := data[i]
			if b >= 0x20 && b < 0x7F {
				buf.WriteByte(b)
			} else {
				buf.WriteByte('.')
			}
		}
		buf.WriteString("|\n")
	}

	return buf.String()
}

// ASCIISegments returns every run of at least minLen printable ASCII
// bytes, in file order. A minLen below 4 is raised to 4 to keep noise
// out of the result.
func (g *GenericBinary) ASCIISegments(minLen int) []string {
	if minLen < 4 {
		minLen = 4
	}

	var segments []string

	buf := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(buf)

	flush := func() {
		if buf.Len() >= minLen {
			segments = append(segments, buf.String())
		}
		buf.Reset()
	}

	for _, b := range g.data {
		if b >= 0x20 && b < 0x7F {
			buf.WriteByte(b)
		} else {
			flush()
		}
	}
	flush()

	return segments
}
