// Package hash provides xxHash64 helpers used for non-cryptographic content
// identification: framed-packet digests (ccsds.RawPacketBytes.Digest) and
// memoized literal-coercion keys in the XTCE match-criteria evaluator.
package hash

import "github.com/cespare/xxhash/v2"

// Bytes computes the xxHash64 of a byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// String computes the xxHash64 of a string without allocating a copy.
func String(s string) uint64 {
	return xxhash.Sum64String(s)
}
