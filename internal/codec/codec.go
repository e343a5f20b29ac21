// Package codec implements the canonical byte encodings used for hashing
// and signing. Every integer is fixed-width little-endian; every fixed
// byte array is emitted verbatim. There are no length prefixes, no
// variable-length integers, no text encodings, and no padding beyond the
// widths stated here. Domain tags are raw ASCII with no terminator.
package codec

import "github.com/cakechain/cakechain/internal/chaintypes"

// Domain tags prefix their respective byte strings to prevent cross-type
// hash collisions. Lengths (4, 7, 7) are part of the canonical layout.
const (
	TagTransaction = "TXv1"
	TagState       = "STATEv1"
	TagBlock       = "BLOCKv1"
)

// PutUint64LE appends v to dst as 8 bytes, least significant byte first.
func PutUint64LE(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56),
	)
}

// Uint64LE decodes the first 8 bytes of b as a little-endian u64. The
// caller must ensure len(b) >= 8.
func Uint64LE(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) |
		uint64(b[1])<<8 |
		uint64(b[2])<<16 |
		uint64(b[3])<<24 |
		uint64(b[4])<<32 |
		uint64(b[5])<<40 |
		uint64(b[6])<<48 |
		uint64(b[7])<<56
}

// PutAddress appends the address's raw bytes verbatim.
func PutAddress(dst []byte, a chaintypes.Address) []byte {
	return append(dst, a[:]...)
}

// PutSignature appends the signature's raw bytes verbatim.
func PutSignature(dst []byte, s chaintypes.Signature) []byte {
	return append(dst, s[:]...)
}

// PutHash appends the hash's raw bytes verbatim.
func PutHash(dst []byte, h chaintypes.Hash32) []byte {
	return append(dst, h[:]...)
}
