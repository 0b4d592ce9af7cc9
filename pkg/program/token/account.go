package token

import (
	"encoding/binary"

	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// AccountSize is the serialized size of an SPL token account.
const AccountSize = 165

// Token account offsets. Delegate, is_native, and close_authority are
// COption encoded: a little-endian u32 presence flag followed by the
// value.
const (
	accountMintOffset            = 0
	accountOwnerOffset           = 32
	accountAmountOffset          = 64
	accountDelegateOptionOffset  = 72
	accountDelegateOffset        = 76
	accountStateOffset           = 108
	accountIsNativeOptionOffset  = 109
	accountIsNativeOffset        = 113
	accountDelegatedAmountOffset = 121
	accountCloseAuthorityOption  = 129
	accountCloseAuthorityOffset  = 133
)

// Token account states.
const (
	accountStateUninitialized = 0
	accountStateFrozen        = 2
)

// Account is a read-only view over an SPL token account. Construction
// verifies ownership by a token program, the serialized size, and that
// the account has been initialized.
type Account struct {
	// Info is the underlying raw account handle.
	Info *svm.AccountInfo

	data []byte
}

// NewAccount validates and wraps a token account.
func NewAccount(info *svm.AccountInfo) (*Account, error) {
	if !isTokenProgram(info.Owner) {
		return nil, svm.ErrIllegalOwner
	}

	data, err := info.BorrowData()
	if err != nil {
		return nil, err
	}
	if len(data) < AccountSize {
		return nil, svm.ErrInvalidAccountData
	}
	if data[accountStateOffset] == accountStateUninitialized {
		return nil, svm.ErrUninitializedAccount
	}

	return &Account{Info: info, data: data}, nil
}

// Key returns the token account's address.
func (a *Account) Key() solana.PublicKey {
	return a.Info.Key
}

// Mint returns the mint this account holds balances of.
func (a *Account) Mint() solana.PublicKey {
	return solana.PublicKey(a.data[accountMintOffset : accountMintOffset+32])
}

// Owner returns the wallet authority over this account. Distinct from
// Info.Owner, which is the owning token program.
func (a *Account) Owner() solana.PublicKey {
	return solana.PublicKey(a.data[accountOwnerOffset : accountOwnerOffset+32])
}

// Amount returns the balance in base units.
func (a *Account) Amount() uint64 {
	return binary.LittleEndian.Uint64(a.data[accountAmountOffset:])
}

// Delegate returns the delegate authority, or false if none is set.
func (a *Account) Delegate() (solana.PublicKey, bool) {
	if binary.LittleEndian.Uint32(a.data[accountDelegateOptionOffset:]) == 0 {
		return nil, false
	}
	return solana.PublicKey(a.data[accountDelegateOffset : accountDelegateOffset+32]), true
}

// DelegatedAmount returns the base units the delegate may move.
func (a *Account) DelegatedAmount() uint64 {
	return binary.LittleEndian.Uint64(a.data[accountDelegatedAmountOffset:])
}

// IsFrozen reports whether the account has been frozen by the mint's
// freeze authority.
func (a *Account) IsFrozen() bool {
	return a.data[accountStateOffset] == accountStateFrozen
}

// IsNative reports whether the account wraps native lamports, returning
// the rent-exempt reserve when it does.
func (a *Account) IsNative() (uint64, bool) {
	if binary.LittleEndian.Uint32(a.data[accountIsNativeOptionOffset:]) == 0 {
		return 0, false
	}
	return binary.LittleEndian.Uint64(a.data[accountIsNativeOffset:]), true
}

// CloseAuthority returns the close authority, or false if none is set.
func (a *Account) CloseAuthority() (solana.PublicKey, bool) {
	if binary.LittleEndian.Uint32(a.data[accountCloseAuthorityOption:]) == 0 {
		return nil, false
	}
	return solana.PublicKey(a.data[accountCloseAuthorityOffset : accountCloseAuthorityOffset+32]), true
}
