package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// AccountRefMut is a writable typed view over a program-owned account.
//
// It performs all of AccountRef's construction checks plus a writability
// check, which runs first: it is the cheapest predicate and the most
// common misconfiguration, so it fails fast before any data is touched.
//
// Mutations through GetMut land directly in the account buffer; the buffer
// is the persisted state and there is no commit step. After any
// cross-program invocation that includes this account, the view is stale
// and Reload must be called before further access. The SDK cannot detect
// out-of-band rewrites.
type AccountRefMut[T Loadable] struct {
	// Info is the underlying raw account handle.
	Info *svm.AccountInfo

	programID solana.PublicKey
	data      []byte
	size      int
}

// LoadMut validates and wraps a program-owned account for write access.
//
// Checks, in order: writability (ErrInvalidAccountData), ownership
// (ErrIllegalOwner), then length and discriminator (ErrInvalidAccountData).
func LoadMut[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRefMut[T], error) {
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}
	if !solana.KeysEqual(info.Owner, f.programID) {
		return nil, svm.ErrIllegalOwner
	}
	return LoadUncheckedMut[T](f, info)
}

// TryLoadMut performs the same checks as LoadMut but converts every
// failure into nil. For optional accounts whose absence is legitimate,
// such as a neighboring shard that hasn't been created yet. Never use it
// to mask failures that are security-relevant.
func TryLoadMut[T Loadable](f *Framework, info *svm.AccountInfo) *AccountRefMut[T] {
	if !info.IsWritable {
		return nil
	}
	if !solana.KeysEqual(info.Owner, f.programID) {
		return nil
	}
	ref, err := LoadUncheckedMut[T](f, info)
	if err != nil {
		return nil
	}
	return ref
}

// LoadUncheckedMut wraps an account without verifying writability or
// ownership. Length and discriminator checks still apply.
//
// Escape hatch for cross-program account manipulation; the distinct name
// keeps call sites greppable in audits. Writing through a view obtained
// this way over a read-only account is a host-level fault.
func LoadUncheckedMut[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRefMut[T], error) {
	data, err := info.BorrowDataMut()
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

	return &AccountRefMut[T]{
		Info:      info,
		programID: f.programID,
		data:      data,
		size:      size,
	}, nil
}

// Key returns the account's address.
func (r *AccountRefMut[T]) Key() solana.PublicKey {
	return r.Info.Key
}

// Get reinterprets the validated byte range as *T.
func (r *AccountRefMut[T]) Get() *T {
	return viewAs[T](r.data)
}

// GetMut reinterprets the validated byte range as *T for mutation.
// Mutations are visible to the host immediately.
func (r *AccountRefMut[T]) GetMut() *T {
	return viewAs[T](r.data)
}

// Data returns the full account data slice.
func (r *AccountRefMut[T]) Data() []byte {
	return r.data
}

// DataMut returns the full account data slice for accounts carrying a
// variable-length tail beyond T's fixed layout.
func (r *AccountRefMut[T]) DataMut() []byte {
	return r.data
}

// Reload re-acquires the exclusive byte view from the handle. Required
// after any invocation of a sub-program that includes this account, since
// the sub-program may have resized or rewritten the buffer.
func (r *AccountRefMut[T]) Reload() error {
	data, err := r.Info.BorrowDataMut()
	if err != nil {
		return err
	}
	if len(data) < r.size {
		return svm.ErrInvalidAccountData
	}
	r.data = data
	return nil
}

// IsPDA derives the canonical program-derived address for the given seeds
// under the framework's program id and compares it against this account's
// address. Returns the match result and the canonical bump.
func (r *AccountRefMut[T]) IsPDA(seeds ...[]byte) (bool, uint8) {
	expected, bump, err := solana.FindProgramAddressAndBump(r.programID, seeds...)
	if err != nil {
		return false, 0
	}
	return solana.KeysEqual(r.Info.Key, expected), bump
}

// isUninitialized reports whether the account can still be initialized:
// either fresh system-owned memory, or owned by this program with the
// reserved zero discriminator.
func isUninitialized(f *Framework, info *svm.AccountInfo) bool {
	if solana.KeysEqual(info.Owner, SYSTEM_PROGRAM_ID) {
		return true
	}
	if solana.KeysEqual(info.Owner, f.programID) {
		return len(info.Data) == 0 || info.Data[0] == 0
	}
	return false
}

// Init initializes an uninitialized account as a T and wraps it.
//
// The account must be writable, must be uninitialized
// (ErrAccountAlreadyInitialized otherwise), and must already have space
// for a full T. Initialization writes the discriminator byte and nothing
// else; remaining bytes stay zeroed. Exactly-once semantics: a second
// Init on the now-initialized account fails.
func Init[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRefMut[T], error) {
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}
	if !isUninitialized(f, info) {
		return nil, svm.ErrAccountAlreadyInitialized
	}

	data, err := info.BorrowDataMut()
	if err != nil {
		return nil, err
	}
	if len(data) < sizeOf[T]() {
		return nil, svm.ErrInvalidAccountData
	}
	data[0] = discriminatorOf[T]()

	return LoadUncheckedMut[T](f, info)
}

// InitIfNeeded initializes the account if it is uninitialized, otherwise
// loads it as-is. Idempotent: safe to call on every interaction when the
// caller cannot cheaply know initialization state ahead of time. A second
// call leaves the discriminator untouched.
func InitIfNeeded[T Loadable](f *Framework, info *svm.AccountInfo) (*AccountRefMut[T], error) {
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}
	if isUninitialized(f, info) {
		data, err := info.BorrowDataMut()
		if err != nil {
			return nil, err
		}
		if len(data) < sizeOf[T]() {
			return nil, svm.ErrInvalidAccountData
		}
		data[0] = discriminatorOf[T]()
	}

	return LoadUncheckedMut[T](f, info)
}

// InitPDA creates the account via the System program (payer funds the
// rent-exempt balance for space bytes, ownership is assigned to the
// framework's program, and the address is signed for with seeds, bump
// included) and then initializes it as a T.
//
// This is the only initialization entry point that performs a sub-program
// invocation. It must run exactly once per derived address.
func InitPDA[T Loadable](f *Framework, info, payer *svm.AccountInfo, space uint64, seeds ...[]byte) (*AccountRefMut[T], error) {
	if !info.IsWritable {
		return nil, svm.ErrInvalidAccountData
	}

	if err := CreatePDAAccount(f, payer, info, space, seeds...); err != nil {
		return nil, err
	}

	data, err := info.BorrowDataMut()
	if err != nil {
		return nil, err
	}
	if len(data) < sizeOf[T]() {
		return nil, svm.ErrInvalidAccountData
	}
	data[0] = discriminatorOf[T]()

	return LoadUncheckedMut[T](f, info)
}
