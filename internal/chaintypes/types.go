// Package chaintypes defines the fixed-width primitive types that every
// other protocol package builds on: addresses, signatures, hashes, and the
// scalar integers used for amounts, nonces, heights, and the chain ID.
package chaintypes

import (
	"encoding/hex"
	"fmt"
)

// AddressSize is the byte length of an Address (an Ed25519 public key).
const AddressSize = 32

// SignatureSize is the byte length of a Signature (an Ed25519 signature).
const SignatureSize = 64

// HashSize is the byte length of a Hash32 (a SHA-256 digest).
const HashSize = 32

// Address identifies an account. It is interpreted as a raw Ed25519 public
// key; equality is byte-wise.
type Address [AddressSize]byte

// String renders the address as lowercase hex, for logs and errors only —
// never part of a canonical encoding.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Less reports whether a sorts before b in ascending lexicographic byte
// order, the ordering state_root() relies on.
func (a Address) Less(b Address) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Signature is a raw 64-byte Ed25519 signature.
type Signature [SignatureSize]byte

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// Hash32 is an opaque 32-byte SHA-256 digest.
type Hash32 [HashSize]byte

func (h Hash32) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is the all-zero value, as required for
// the genesis parent hash.
func (h Hash32) IsZero() bool {
	return h == Hash32{}
}

// ChainID identifies the deployment a signature is bound to; it is part of
// transaction signing bytes but never of canonical transaction bytes.
type ChainID uint64

// Amount is a transfer value, in the chain's smallest unit. All arithmetic
// on Amount must be checked; see AddChecked/SubChecked.
type Amount uint64

// Nonce is a per-sender replay counter.
type Nonce uint64

// BlockHeight is a block's position in the linear chain, starting at 0.
type BlockHeight uint64

// AddressFromBytes copies exactly AddressSize bytes into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressSize {
		return a, fmt.Errorf("chaintypes: address must be %d bytes, got %d", AddressSize, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// SignatureFromBytes copies exactly SignatureSize bytes into a Signature.
func SignatureFromBytes(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureSize {
		return s, fmt.Errorf("chaintypes: signature must be %d bytes, got %d", SignatureSize, len(b))
	}
	copy(s[:], b)
	return s, nil
}

// Hash32FromBytes copies exactly HashSize bytes into a Hash32.
func Hash32FromBytes(b []byte) (Hash32, error) {
	var h Hash32
	if len(b) != HashSize {
		return h, fmt.Errorf("chaintypes: hash must be %d bytes, got %d", HashSize, len(b))
	}
	copy(h[:], b)
	return h, nil
}

// AddChecked returns a+b, or an error if the sum overflows u64.
func (a Amount) AddChecked(b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("chaintypes: amount overflow adding %d + %d", a, b)
	}
	return sum, nil
}

// SubChecked returns a-b, or an error if b > a.
func (a Amount) SubChecked(b Amount) (Amount, error) {
	if b > a {
		return 0, fmt.Errorf("chaintypes: amount underflow subtracting %d - %d", a, b)
	}
	return a - b, nil
}

// AddChecked returns n+delta, or an error on overflow (astronomically
// unlikely for a u64 nonce, but the protocol forbids silent wrap regardless).
func (n Nonce) AddChecked(delta Nonce) (Nonce, error) {
	sum := n + delta
	if sum < n {
		return 0, fmt.Errorf("chaintypes: nonce overflow adding %d + %d", n, delta)
	}
	return sum, nil
}

// AddChecked returns h+delta, or an error on overflow.
func (h BlockHeight) AddChecked(delta BlockHeight) (BlockHeight, error) {
	sum := h + delta
	if sum < h {
		return 0, fmt.Errorf("chaintypes: height overflow adding %d + %d", h, delta)
	}
	return sum, nil
}
