// Package chaincrypto adapts the two cryptographic primitives the protocol
// core needs: SHA-256 hashing and Ed25519 signature verification. Signing
// is deliberately not part of the core — transactions arrive pre-signed;
// external signers use codec.TagTransaction signing bytes directly.
package chaincrypto

import (
	"crypto/ed25519"
	"crypto/sha256"

	"github.com/cakechain/cakechain/internal/chaintypes"
)

// SHA256 hashes data and returns the digest as a Hash32.
func SHA256(data []byte) chaintypes.Hash32 {
	return chaintypes.Hash32(sha256.Sum256(data))
}

// VerifyEd25519 verifies sig over message under pubKey with
// crypto/ed25519.Verify and adds no checks of its own. That rejects
// signatures whose S scalar is not canonical; it uses the cofactorless
// verification equation and does not reject small-order public keys or
// small-order R points.
func VerifyEd25519(pubKey chaintypes.Address, message []byte, sig chaintypes.Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(pubKey[:]), message, sig[:])
}
