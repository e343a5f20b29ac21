// Package txn implements the transaction module: canonical byte
// derivations, static and state-dependent validity checks in their
// normative order, and state application.
package txn

import (
	"github.com/cakechain/cakechain/internal/chaincrypto"
	"github.com/cakechain/cakechain/internal/chainerrors"
	"github.com/cakechain/cakechain/internal/chaintypes"
	"github.com/cakechain/cakechain/internal/codec"
	"github.com/cakechain/cakechain/internal/state"
)

// Transaction is the ephemeral unit of value transfer: it has no identity
// beyond its content, and carries no timestamp or fee (those are the
// embedder's concern, not the protocol core's).
type Transaction struct {
	From      chaintypes.Address
	To        chaintypes.Address
	Amount    chaintypes.Amount
	Nonce     chaintypes.Nonce
	Signature chaintypes.Signature
}

// SigningBytes returns the bytes signed by the sender:
//
//	"TXv1" || chain_id_le || from(32) || to(32) || amount_le || nonce_le
//
// The signature field is excluded — it is what the signature is over.
func (tx *Transaction) SigningBytes(chainID chaintypes.ChainID) []byte {
	buf := make([]byte, 0, len(codec.TagTransaction)+8+chaintypes.AddressSize*2+16)
	buf = append(buf, codec.TagTransaction...)
	buf = codec.PutUint64LE(buf, uint64(chainID))
	buf = codec.PutAddress(buf, tx.From)
	buf = codec.PutAddress(buf, tx.To)
	buf = codec.PutUint64LE(buf, uint64(tx.Amount))
	buf = codec.PutUint64LE(buf, uint64(tx.Nonce))
	return buf
}

// CanonicalBytes returns the bytes used inside a block's canonical
// encoding: from || to || amount_le || nonce_le || signature(64). Unlike
// SigningBytes, the signature is included here.
func (tx *Transaction) CanonicalBytes() []byte {
	buf := make([]byte, 0, chaintypes.AddressSize*2+16+chaintypes.SignatureSize)
	buf = codec.PutAddress(buf, tx.From)
	buf = codec.PutAddress(buf, tx.To)
	buf = codec.PutUint64LE(buf, uint64(tx.Amount))
	buf = codec.PutUint64LE(buf, uint64(tx.Nonce))
	buf = codec.PutSignature(buf, tx.Signature)
	return buf
}

// StaticValidity checks amount and address rules that need no state.
// Tie-break when both fail: amount is reported before addresses.
func (tx *Transaction) StaticValidity() error {
	if tx.Amount == 0 {
		return chainerrors.ErrAmountZero
	}
	if tx.From == tx.To {
		return chainerrors.ErrSelfTransfer
	}
	return nil
}

// CheckValidity runs every check in the exact normative order:
//  1. static validity (AmountZero, SelfTransfer)
//  2. signature verification
//  3. nonce match
//  4. sufficient sender balance
//  5. no recipient balance overflow
//
// Each check presupposes all earlier checks passed; the first failure is
// returned and no later check is attempted.
func CheckValidity(tx *Transaction, chainID chaintypes.ChainID, s *state.State) error {
	if err := tx.StaticValidity(); err != nil {
		return err
	}

	if !chaincrypto.VerifyEd25519(tx.From, tx.SigningBytes(chainID), tx.Signature) {
		return chainerrors.ErrInvalidSignature
	}

	senderNonce := s.GetNonce(tx.From)
	if uint64(tx.Nonce) != senderNonce {
		return &chainerrors.WrongNonceError{Expected: senderNonce, Got: uint64(tx.Nonce)}
	}

	senderBalance := s.GetBalance(tx.From)
	if senderBalance < uint64(tx.Amount) {
		return &chainerrors.InsufficientBalanceError{Have: senderBalance, Need: uint64(tx.Amount)}
	}

	recipientBalance := s.GetBalance(tx.To)
	if _, err := chaintypes.Amount(recipientBalance).AddChecked(tx.Amount); err != nil {
		return chainerrors.ErrBalanceOverflow
	}

	return nil
}

// Apply mutates s to reflect tx, which must already have passed
// CheckValidity against s. It is never called with tx.From == tx.To,
// since that is rejected statically before any state is touched. The
// arithmetic still routes through the checked primitives rather than
// trusting CheckValidity as its only guard, so the invariant holds at the
// mutation site itself, not just at its caller.
func Apply(tx *Transaction, s *state.State) error {
	senderBalance := chaintypes.Amount(s.GetBalance(tx.From))
	recipientBalance := chaintypes.Amount(s.GetBalance(tx.To))
	senderNonce := chaintypes.Nonce(s.GetNonce(tx.From))

	newSenderBalance, err := senderBalance.SubChecked(tx.Amount)
	if err != nil {
		return err
	}
	newRecipientBalance, err := recipientBalance.AddChecked(tx.Amount)
	if err != nil {
		return err
	}
	newSenderNonce, err := senderNonce.AddChecked(1)
	if err != nil {
		return err
	}

	s.SetBalance(tx.From, uint64(newSenderBalance))
	s.SetBalance(tx.To, uint64(newRecipientBalance))
	s.SetNonce(tx.From, uint64(newSenderNonce))
	return nil
}
