package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// AccountRef is a read-only typed view over a program-owned account.
//
// A ref is constructed fresh for every instruction invocation and must not
// be retained beyond it. Construction performs every structural check
// exactly once: ownership, minimum length, and the type discriminator.
// After a successful Load, Get is infallible.
type AccountRef[T Loadable] struct {
	// Info is the underlying raw account handle.
	Info *svm.AccountInfo

	programID solana.PublicKey
	data      []byte
	size      int
}

// Load validates and wraps a program-owned account for read access.
//
// Checks, in order: the account is owned by the framework's program
// (ErrIllegalOwner), the data is borrowable, the data holds at least one
// full T, and the first byte matches T's discriminator
// (ErrInvalidAccountData).
func Load[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRef[T], error) {
	if !solana.KeysEqual(info.Owner, f.programID) {
		return nil, svm.ErrIllegalOwner
	}
	return LoadUnchecked[T](f, info)
}

// LoadUnchecked wraps an account without verifying ownership. Length and
// discriminator checks still apply.
//
// This is the escape hatch for reading accounts owned by other programs.
// It must never be the default path; call sites are expected to justify
// themselves and the distinct name keeps them greppable in audits.
func LoadUnchecked[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRef[T], error) {
	data, err := info.BorrowData()
	if err != nil {
		return nil, err
	}

	size := sizeOf[T]()
	if len(data) < size {
		return nil, svm.ErrInvalidAccountData
	}
	if !checkDiscriminator(data, discriminatorOf[T]()) {
		return nil, svm.ErrInvalidAccountData
	}

	return &AccountRef[T]{
		Info:      info,
		programID: f.programID,
		data:      data,
		size:      size,
	}, nil
}

// Key returns the account's address.
func (r *AccountRef[T]) Key() solana.PublicKey {
	return r.Info.Key
}

// Get reinterprets the validated byte range as *T. Infallible after Load;
// the returned value is a view into the account buffer, not a copy.
func (r *AccountRef[T]) Get() *T {
	return viewAs[T](r.data)
}

// Data returns the full account data, including any variable-length tail
// beyond T's fixed layout.
func (r *AccountRef[T]) Data() []byte {
	return r.data
}

// IsPDA derives the canonical program-derived address for the given seeds
// under the framework's program id and compares it against this account's
// address. Returns the match result and the canonical bump.
//
// Derivation is expensive; callers validating the same seeds repeatedly
// should persist the bump instead.
func (r *AccountRef[T]) IsPDA(seeds ...[]byte) (bool, uint8) {
	expected, bump, err := solana.FindProgramAddressAndBump(r.programID, seeds...)
	if err != nil {
		return false, 0
	}
	return solana.KeysEqual(r.Info.Key, expected), bump
}
