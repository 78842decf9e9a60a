package domain

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ContentHash is the hex digest of a spec's raw bytes. It detects drift between a spec
// and the lockfile frozen from it; it is not a security primitive.
type ContentHash string

// ContentHashLen is the length of every ContentHash.
const ContentHashLen = 16

// ComputeHash digests raw bytes. Identical bytes always produce identical hashes.
func ComputeHash(b []byte) ContentHash {
	return contentHashOf(xxhash.Sum64(b))
}

func contentHashOf(sum uint64) ContentHash {
	return ContentHash(fmt.Sprintf("%016x", sum))
}

func (h ContentHash) String() string {
	return string(h)
}
