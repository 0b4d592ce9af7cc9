package svm

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
)

// AccountInfo is a raw account handle delivered by the host for the
// duration of one instruction: a region of host-managed memory plus the
// metadata flags the runtime derived from the transaction.
//
// The handle is borrowed, not owned. Data access goes through BorrowData
// and BorrowDataMut, which enforce the host's single-threaded borrow
// bookkeeping: an exclusive hold blocks all access, a shared hold blocks
// exclusive access. This is a re-entrancy guard against cross-program
// invocations touching accounts the caller still has views over, not a
// lock; there is no blocking wait anywhere.
type AccountInfo struct {
	Key        solana.PublicKey
	Owner      solana.PublicKey
	Lamports   uint64
	Data       []byte
	IsSigner   bool
	IsWritable bool
	Executable bool

	sharedHolds   int
	exclusiveHold bool
}

// BorrowData returns a shared view of the account's bytes. It fails with
// ErrAccountBorrowFailed if an exclusive hold is outstanding.
func (a *AccountInfo) BorrowData() ([]byte, error) {
	if a.exclusiveHold {
		return nil, ErrAccountBorrowFailed
	}
	return a.Data, nil
}

// BorrowDataMut returns an exclusive view of the account's bytes. It fails
// with ErrAccountBorrowFailed if any hold is outstanding.
func (a *AccountInfo) BorrowDataMut() ([]byte, error) {
	if a.exclusiveHold || a.sharedHolds > 0 {
		return nil, ErrAccountBorrowFailed
	}
	return a.Data, nil
}

// HoldShared marks a shared hold on the account's data for the duration of
// a nested invocation. Fails if an exclusive hold is outstanding.
func (a *AccountInfo) HoldShared() error {
	if a.exclusiveHold {
		return ErrAccountBorrowFailed
	}
	a.sharedHolds++
	return nil
}

// HoldExclusive marks an exclusive hold on the account's data for the
// duration of a nested invocation. Fails if any hold is outstanding.
func (a *AccountInfo) HoldExclusive() error {
	if a.exclusiveHold || a.sharedHolds > 0 {
		return ErrAccountBorrowFailed
	}
	a.exclusiveHold = true
	return nil
}

// ReleaseShared drops one shared hold.
func (a *AccountInfo) ReleaseShared() {
	if a.sharedHolds > 0 {
		a.sharedHolds--
	}
}

// ReleaseExclusive drops the exclusive hold.
func (a *AccountInfo) ReleaseExclusive() {
	a.exclusiveHold = false
}

// DebitLamports removes lamports from the account balance.
func (a *AccountInfo) DebitLamports(amount uint64) error {
	if a.Lamports < amount {
		return ErrInsufficientFunds
	}
	a.Lamports -= amount
	return nil
}

// CreditLamports adds lamports to the account balance.
func (a *AccountInfo) CreditLamports(amount uint64) {
	a.Lamports += amount
}
