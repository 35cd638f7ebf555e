// Package index walks the B-tree block structure of Paradox .PX primary
// and .Ynn secondary index files, and decodes .Xnn secondary-index data
// files, which are structurally regular tables with trailing metadata.
//
// The block walker is deliberately shallow: it reports what block headers
// claim and does not attempt to recover corrupted tree structure. Parsing
// is capped at the first 64 blocks and 12 records per block; the header's
// declared total is surfaced so callers know how much was skipped.
package index

import (
	"fmt"

	"github.com/LasCondes/ParadoxDataKit/encoding"
	"github.com/LasCondes/ParadoxDataKit/endian"
	"github.com/LasCondes/ParadoxDataKit/format"
	"github.com/LasCondes/ParadoxDataKit/section"
)

// Parsing limits for the block walk.
const (
	MaxBlocks          = 64
	MaxRecordsPerBlock = 12

	blockLinkSize   = 6 // next, prev, last offset
	recordTailSize  = 6 // child block, statistics, reserved
	firstBlockIndex = 1
)

// Record is one entry of an index block: the key bytes followed by a
// 6-byte tail of sign-biased shorts.
type Record struct {
	KeyBytes   []byte
	ChildBlock int16
	Statistics int16
	Reserved   int16
}

// KeyHex renders the key bytes as space-separated uppercase hex for
// display. The raw bytes remain available through KeyBytes.
func (r Record) KeyHex() string {
	return fmt.Sprintf("% X", r.KeyBytes)
}

// Block is one B-tree block: its 1-based position, sibling links and the
// records the block header claims.
type Block struct {
	ID         int
	NextBlock  uint16
	PrevBlock  uint16
	LastOffset int16
	Records    []Record
}

// RecordCount derives the number of records from the block's last-offset
// field: (last_offset / record_length) + 1, or 0 when last_offset is
// negative.
func RecordCount(lastOffset int16, recordLength int) int {
	if lastOffset < 0 || recordLength <= 0 {
		return 0
	}

	return int(lastOffset)/recordLength + 1
}

// Index is a decoded .PX or .Ynn file.
type Index struct {
	Header *section.IndexHeader
	Kind   format.FormatKind
	Blocks []Block

	// TotalBlocksReported is the header's declared block total; blocks
	// beyond the parsing cap are not walked.
	TotalBlocksReported int
}

// Parse decodes an index file image. kind distinguishes .PX
// (format.KindPrimaryIndex) from .Ynn (format.KindSecondaryIndex).
//
// Returns:
//   - *Index: Parsed header and capped block array
//   - error: errs.TooSmallError when the 2048-byte header prefix is missing
func Parse(data []byte, kind format.FormatKind) (*Index, error) {
	header, err := section.ParseIndexHeader(data)
	if err != nil {
		return nil, err
	}

	idx := &Index{
		Header:              header,
		Kind:                kind,
		TotalBlocksReported: int(header.TotalBlocks),
	}

	blockSize := header.BlockSize()
	recordLength := int(header.RecordLength)
	if blockSize <= blockLinkSize || recordLength <= 0 {
		return idx, nil
	}

	blockStart := int(header.HeaderLength)
	for id := firstBlockIndex; id <= MaxBlocks && blockStart+blockLinkSize <= len(data); id++ {
		end := blockStart + blockSize
		if end > len(data) {
			end = len(data)
		}

		block, ok := parseBlock(data[blockStart:end], id, recordLength)
		if ok {
			idx.Blocks = append(idx.Blocks, block)
		}

		blockStart += blockSize
	}

	return idx, nil
}

func parseBlock(data []byte, id, recordLength int) (Block, bool) {
	r := endian.NewReader(data)

	next, err := r.Uint16()
	if err != nil {
		return Block{}, false
	}
	prev, _ := r.Uint16()
	lastOffset, _ := r.Int16()

	block := Block{
		ID:         id,
		NextBlock:  next,
		PrevBlock:  prev,
		LastOffset: lastOffset,
	}

	count := RecordCount(lastOffset, recordLength)
	if count > MaxRecordsPerBlock {
		count = MaxRecordsPerBlock
	}

	keyLength := recordLength - recordTailSize
	if keyLength < 0 {
		return block, true
	}

	for i := 0; i < count; i++ {
		raw, err := r.Bytes(recordLength)
		if err != nil {
			break
		}

		block.Records = append(block.Records, Record{
			KeyBytes:   raw[:keyLength],
			ChildBlock: indexShort(raw[keyLength : keyLength+2]),
			Statistics: indexShort(raw[keyLength+2 : keyLength+4]),
			Reserved:   indexShort(raw[keyLength+4 : keyLength+6]),
		})
	}

	return block, true
}

// indexShort decodes the 2-byte sign-biased short used in record tails.
func indexShort(buf []byte) int16 {
	v, _ := encoding.DecodeSignedBE(buf)

	return int16(v)
}

// KeyString recovers an index key's printable form for display, trimming
// padding the way Alpha fields are trimmed.
func KeyString(key []byte) string {
	return encoding.RecoverAlpha(key)
}
