package hash

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// FoldedID computes the xxHash64 of the upper-cased string. Paradox names
// (fields, family entries, companion files) compare case-insensitively, so
// folded IDs serve as their map keys.
func FoldedID(name string) uint64 {
	return xxhash.Sum64String(strings.ToUpper(name))
}
