package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// The wrapper types in this file prove a privilege or identity check at
// construction time. A handler that takes a *Signer can only ever be
// handed an account whose signature was verified; there is no way to
// conjure one around the check. Wrappers expose the underlying handle
// through Info for composition with the typed accessors.

// Signer wraps an account that signed the transaction.
type Signer struct {
	Info *svm.AccountInfo
}

// Payer is a signer expected to fund account creation. Alias kept for
// call-site readability; funding additionally requires the writable
// privilege, which the System program enforces on invoke.
type Payer = Signer

// NewSigner verifies the account signed the transaction.
func NewSigner(info *svm.AccountInfo) (*Signer, error) {
	if !info.IsSigner {
		return nil, svm.ErrMissingRequiredSignature
	}
	return &Signer{Info: info}, nil
}

// Key returns the account's address.
func (s *Signer) Key() solana.PublicKey {
	return s.Info.Key
}

// MutSigner wraps an account that signed the transaction and is writable.
type MutSigner struct {
	Info *svm.AccountInfo
}

// NewMutSigner verifies signature first, then writability. The signature
// check runs first so a missing signature is never misreported as a
// writability problem.
func NewMutSigner(info *svm.AccountInfo) (*MutSigner, error) {
	if !info.IsSigner {
		return nil, svm.ErrMissingRequiredSignature
	}
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}
	return &MutSigner{Info: info}, nil
}

// Key returns the account's address.
func (s *MutSigner) Key() solana.PublicKey {
	return s.Info.Key
}

// AsSigner downgrades to the signer-only wrapper.
func (s *MutSigner) AsSigner() *Signer {
	return &Signer{Info: s.Info}
}

// Writable wraps an account marked writable in the transaction.
type Writable struct {
	Info *svm.AccountInfo
}

// NewWritable verifies the account is writable.
func NewWritable(info *svm.AccountInfo) (*Writable, error) {
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}
	return &Writable{Info: info}, nil
}

// Key returns the account's address.
func (w *Writable) Key() solana.PublicKey {
	return w.Info.Key
}

// ReadOnly wraps an account the handler promises not to modify. No
// privilege is verified; the type exists so handler signatures document
// intent the same way the privileged wrappers do.
type ReadOnly struct {
	Info *svm.AccountInfo
}

// NewReadOnly wraps an account without further checks.
func NewReadOnly(info *svm.AccountInfo) *ReadOnly {
	return &ReadOnly{Info: info}
}

// Key returns the account's address.
func (r *ReadOnly) Key() solana.PublicKey {
	return r.Info.Key
}

// ValidateSigner fails with ErrMissingRequiredSignature unless the
// account signed the transaction.
func ValidateSigner(info *svm.AccountInfo) error {
	if !info.IsSigner {
		return svm.ErrMissingRequiredSignature
	}
	return nil
}

// ValidateWritable fails with ErrInvalidAccountData unless the account is
// writable.
func ValidateWritable(info *svm.AccountInfo) error {
	if !info.IsWritable {
		return svm.ErrInvalidAccountData
	}
	return nil
}

// ValidateKey fails with ErrIncorrectProgramID unless the account is at
// the expected address.
func ValidateKey(info *svm.AccountInfo, expected solana.PublicKey) error {
	if !solana.KeysEqual(info.Key, expected) {
		return svm.ErrIncorrectProgramID
	}
	return nil
}

// ValidateOwner fails with ErrIllegalOwner unless the account is owned by
// the expected program.
func ValidateOwner(info *svm.AccountInfo, expected solana.PublicKey) error {
	if !solana.KeysEqual(info.Owner, expected) {
		return svm.ErrIllegalOwner
	}
	return nil
}
