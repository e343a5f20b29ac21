// Package chainerrors defines the ordered error taxonomy for transaction and
// block validation. Simple cases are sentinel errors meant to be compared
// with errors.Is; cases that carry data are typed errors meant to be
// unwrapped with errors.As. Nothing in this package panics.
package chainerrors

import (
	"errors"
	"fmt"
)

// Transaction-level sentinel errors, in the normative check order from
// the transaction module: AmountZero, SelfTransfer, InvalidSignature,
// then the data-carrying WrongNonce / InsufficientBalance / BalanceOverflow
// below.
var (
	// ErrAmountZero means tx.amount == 0.
	ErrAmountZero = errors.New("chainerrors: transaction amount is zero")
	// ErrSelfTransfer means tx.from == tx.to.
	ErrSelfTransfer = errors.New("chainerrors: transaction sender equals recipient")
	// ErrInvalidSignature means ed25519 verification failed, or the crypto
	// adapter rejected the inputs outright (e.g. malformed key length).
	ErrInvalidSignature = errors.New("chainerrors: invalid transaction signature")
	// ErrBalanceOverflow means the recipient's balance would exceed u64 max.
	ErrBalanceOverflow = errors.New("chainerrors: recipient balance would overflow")
)

// WrongNonceError reports a transaction nonce that does not match the
// sender's current account nonce.
type WrongNonceError struct {
	Expected uint64
	Got      uint64
}

func (e *WrongNonceError) Error() string {
	return fmt.Sprintf("chainerrors: wrong nonce: expected %d, got %d", e.Expected, e.Got)
}

// InsufficientBalanceError reports a sender whose balance cannot cover the
// transaction amount.
type InsufficientBalanceError struct {
	Have uint64
	Need uint64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("chainerrors: insufficient balance: have %d, need %d", e.Have, e.Need)
}

// Block-level errors.

// BadParentError reports a block whose parent hash does not match the
// current tip.
type BadParentError struct {
	Expected [32]byte
	Got      [32]byte
}

func (e *BadParentError) Error() string {
	return fmt.Sprintf("chainerrors: bad parent hash: expected %x, got %x", e.Expected, e.Got)
}

// BadHeightError reports a block whose height does not extend the tip by
// exactly one.
type BadHeightError struct {
	Expected uint64
	Got      uint64
}

func (e *BadHeightError) Error() string {
	return fmt.Sprintf("chainerrors: bad height: expected %d, got %d", e.Expected, e.Got)
}

// TxInvalidError reports the first transaction in a block that failed
// validation, with its index and the underlying cause.
type TxInvalidError struct {
	Index int
	Cause error
}

func (e *TxInvalidError) Error() string {
	return fmt.Sprintf("chainerrors: transaction %d invalid: %v", e.Index, e.Cause)
}

func (e *TxInvalidError) Unwrap() error {
	return e.Cause
}

// BadStateRootError reports a block whose claimed state root does not
// match the root computed after applying its transactions.
type BadStateRootError struct {
	Expected [32]byte
	Computed [32]byte
}

func (e *BadStateRootError) Error() string {
	return fmt.Sprintf("chainerrors: bad state root: expected %x, computed %x", e.Expected, e.Computed)
}
