// Package block implements the block module: canonical block bytes, block
// hashing, and sequential transaction application with first-failure
// reporting and a state-root check against the block's claimed root.
package block

import (
	"github.com/cakechain/cakechain/internal/chaincrypto"
	"github.com/cakechain/cakechain/internal/chainerrors"
	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/codec"
	"github.com/cakechain/cakechain/internal/state"
	"github.com/cakechain/cakechain/internal/txn"
)

// Block is a batch of transactions applied atomically to the state, with
// the resulting root committed in the header so any verifier can check it
// independently. Order of Txs is semantically significant.
type Block struct {
	ParentHash chaintypes.Hash32
	Height     chaintypes.BlockHeight
	Txs        []txn.Transaction
	StateRoot  chaintypes.Hash32
}

// CanonicalBytes returns:
//
//	"BLOCKv1" || parent_hash(32) || height_le || tx_count_le ||
//	  tx_0_canonical || ... || state_root(32)
//
// state_root is the root claimed by the block, never recomputed here.
func (b *Block) CanonicalBytes() []byte {
	size := len(codec.TagBlock) + chaintypes.HashSize + 16 + chaintypes.HashSize
	txBytes := make([][]byte, len(b.Txs))
	for i := range b.Txs {
		txBytes[i] = b.Txs[i].CanonicalBytes()
		size += len(txBytes[i])
	}

	buf := make([]byte, 0, size)
	buf = append(buf, codec.TagBlock...)
	buf = codec.PutHash(buf, b.ParentHash)
	buf = codec.PutUint64LE(buf, uint64(b.Height))
	buf = codec.PutUint64LE(buf, uint64(len(b.Txs)))
	for _, tb := range txBytes {
		buf = append(buf, tb...)
	}
	buf = codec.PutHash(buf, b.StateRoot)
	return buf
}

// Hash returns sha256(CanonicalBytes()).
func (b *Block) Hash() chaintypes.Hash32 {
	return chaincrypto.SHA256(b.CanonicalBytes())
}

// Apply validates b against tipHash/tipHeight and s, applying b's
// transactions to s in order as each one passes its validity check. On a
// non-nil error s may already hold part of the block's effect (the
// transactions before the failing one, or all of them when only the
// state-root check fails); the caller passes a throwaway snapshot, not the
// committed state, so a rejection leaves the real state untouched.
//
// Checks, in order: parent hash, height, sequential transaction validity
// (first failing index/cause reported), and finally the state-root check
// against the post-application root. An empty transaction list is
// permitted; the state-root check still applies to it.
func Apply(b *Block, tipHash chaintypes.Hash32, tipHeight chaintypes.BlockHeight, s *state.State, chainID chaintypes.ChainID) error {
	if b.ParentHash != tipHash {
		return &chainerrors.BadParentError{Expected: tipHash, Got: b.ParentHash}
	}

	expectedHeight, err := tipHeight.AddChecked(1)
	if err != nil {
		return err
	}
	if b.Height != expectedHeight {
		return &chainerrors.BadHeightError{Expected: uint64(expectedHeight), Got: uint64(b.Height)}
	}

	for i := range b.Txs {
		tx := &b.Txs[i]
		if err := txn.CheckValidity(tx, chainID, s); err != nil {
			return &chainerrors.TxInvalidError{Index: i, Cause: err}
		}
		if err := txn.Apply(tx, s); err != nil {
			return &chainerrors.TxInvalidError{Index: i, Cause: err}
		}
	}

	computed := s.Root()
	if computed != b.StateRoot {
		return &chainerrors.BadStateRootError{Expected: b.StateRoot, Computed: computed}
	}

	return nil
}
