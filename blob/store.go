package blob

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/LasCondes/ParadoxDataKit/internal/hash"
)

// Block types supported in .MB files. Anything else fails resolution.
const (
	blockTypeSingle    = 0x02
	blockTypeSubBlob   = 0x03
	wholeBlockIndex    = 0xFF
	subBlobDirOffset   = 12
	subBlobEntrySize   = 5
	singleBlobDataSkip = 9
)

var copySuffixPattern = regexp.MustCompile(` \(\d+\)$`)

// Store locates the companion .MB file of a table and resolves blob
// pointers against it.
//
// The store loads each candidate .MB into memory on first use and caches
// it for the lifetime of the owning table. It is a single-consumer
// structure: one table, one goroutine, no locking.
type Store struct {
	candidates []string
	cache      map[uint64][]byte
	failed     map[uint64]bool
}

// NewStore creates a Store for the table at tablePath with the declared
// in-header tableName.
//
// Candidate base names come from the table file's stem and the declared
// name's stem, each also stripped of a trailing " (N)" disambiguator and
// a leading "Copy of " prefix. Candidates are matched case-insensitively
// against the directory's .MB entries; when none match, every .MB in the
// directory is tried.
func NewStore(tablePath, tableName string) *Store {
	s := &Store{
		cache:  make(map[uint64][]byte),
		failed: make(map[uint64]bool),
	}

	dir := filepath.Dir(tablePath)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return s
	}

	var memoFiles []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mb") {
			memoFiles = append(memoFiles, entry.Name())
		}
	}
	if len(memoFiles) == 0 {
		return s
	}

	bases := candidateBases(tablePath, tableName)

	seen := make(map[uint64]bool)
	for _, base := range bases {
		for _, name := range memoFiles {
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if !strings.EqualFold(stem, base) {
				continue
			}
			path := filepath.Join(dir, name)
			if id := hash.FoldedID(path); !seen[id] {
				seen[id] = true
				s.candidates = append(s.candidates, path)
			}
		}
	}

	if len(s.candidates) == 0 {
		for _, name := range memoFiles {
			path := filepath.Join(dir, name)
			if id := hash.FoldedID(path); !seen[id] {
				seen[id] = true
				s.candidates = append(s.candidates, path)
			}
		}
	}

	return s
}

// candidateBases generates the ordered, case-insensitively de-duplicated
// base names to match against .MB files.
func candidateBases(tablePath, tableName string) []string {
	var bases []string
	seen := make(map[uint64]bool)

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if id := hash.FoldedID(name); !seen[id] {
			seen[id] = true
			bases = append(bases, name)
		}
	}

	expand := func(stem string) {
		add(stem)

		stripped := copySuffixPattern.ReplaceAllString(stem, "")
		add(stripped)

		for _, s := range []string{stem, stripped} {
			lower := strings.ToLower(s)
			if strings.HasPrefix(lower, "copy of ") {
				add(s[len("copy of "):])
			}
		}
	}

	fileName := filepath.Base(tablePath)
	expand(strings.TrimSuffix(fileName, filepath.Ext(fileName)))

	if tableName != "" {
		declared := filepath.Base(tableName)
		expand(strings.TrimSuffix(declared, filepath.Ext(declared)))
	}

	return bases
}

// Resolve resolves a blob field's in-row bytes to its payload.
//
// Inline fields (offset_raw of zero) return the leader directly. Otherwise
// every candidate .MB is tried in order until one contains a supported
// block at the pointer's offset. On failure the leader is returned when
// non-empty, with ok == false signalling that no .MB payload was found.
func (s *Store) Resolve(field []byte) (payload []byte, ok bool) {
	leader, ptr, hasPtr := SplitField(field)
	if !hasPtr {
		return leader, false
	}
	if ptr.Inline() {
		return leader, true
	}

	for _, path := range s.candidates {
		data := s.load(path)
		if data == nil {
			continue
		}
		if payload, ok := resolveIn(data, ptr); ok {
			return payload, true
		}
	}

	return leader, false
}

func (s *Store) load(path string) []byte {
	id := hash.FoldedID(path)
	if data, ok := s.cache[id]; ok {
		return data
	}
	if s.failed[id] {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		s.failed[id] = true
		return nil
	}
	s.cache[id] = data

	return data
}

// resolveIn resolves ptr against one loaded .MB image.
func resolveIn(data []byte, ptr Pointer) ([]byte, bool) {
	offset := ptr.BlockOffset()
	if offset < 0 || offset >= len(data) {
		return nil, false
	}

	switch data[offset] {
	case blockTypeSingle:
		return resolveSingle(data, offset, ptr)
	case blockTypeSubBlob:
		if ptr.Index() == wholeBlockIndex {
			return nil, false
		}
		return resolveSubBlob(data, offset, ptr)
	default:
		return nil, false
	}
}

// resolveSingle reads a type-0x02 block: one large blob occupying
// chunk_count 4KiB chunks, payload after a 9-byte block header.
func resolveSingle(data []byte, offset int, ptr Pointer) ([]byte, bool) {
	if offset+singleBlobDataSkip > len(data) {
		return nil, false
	}

	chunkCount := int(data[offset+1]) | int(data[offset+2])<<8
	blockLength := chunkCount * 0x1000
	blobLength := int(uint32(data[offset+3]) | uint32(data[offset+4])<<8 |
		uint32(data[offset+5])<<16 | uint32(data[offset+6])<<24)

	length := blobLength
	if length == 0 {
		length = int(ptr.Length)
	}
	if limit := blockLength - singleBlobDataSkip; length > limit {
		length = limit
	}
	if length < 0 {
		return nil, false
	}

	start := offset + singleBlobDataSkip
	if start > len(data) {
		return nil, false
	}
	if start+length > len(data) {
		length = len(data) - start
	}

	return data[start : start+length], true
}

// resolveSubBlob reads one entry of a type-0x03 sub-blob directory block.
// Entry layout: {offset_chunks u8, chunk_count u8, _, _, remainder u8},
// with offsets and lengths in 16-byte chunks.
func resolveSubBlob(data []byte, offset int, ptr Pointer) ([]byte, bool) {
	entryOffset := offset + subBlobDirOffset + ptr.Index()*subBlobEntrySize
	if entryOffset+subBlobEntrySize > len(data) {
		return nil, false
	}

	entry := data[entryOffset : entryOffset+subBlobEntrySize]
	allZero := true
	for _, b := range entry {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return nil, false
	}

	offsetChunks := int(entry[0])
	chunkCount := int(entry[1])
	remainder := int(entry[4])

	entryLength := 0
	if chunkCount > 0 {
		entryLength = (chunkCount - 1) * 16
		if remainder == 0 {
			entryLength += 16
		} else {
			entryLength += remainder
		}
	} else if remainder > 0 {
		entryLength = remainder
	}

	length := entryLength
	if ptr.Length > 0 && int(ptr.Length) < entryLength {
		length = int(ptr.Length)
	}

	start := offset + offsetChunks*16
	if start >= len(data) || length <= 0 {
		return nil, false
	}
	if start+length > len(data) {
		length = len(data) - start
	}

	return data[start : start+length], true
}
