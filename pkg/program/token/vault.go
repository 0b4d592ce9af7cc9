package token

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// Vault is a token account held by a known authority, typically a
// program-derived address. Construction layers an authority check on top
// of the regular token account checks, so a handler taking *Vault cannot
// be pointed at an attacker-controlled token account of the same mint.
type Vault struct {
	*Account
}

// NewVault validates the token account and verifies its wallet authority.
func NewVault(info *svm.AccountInfo, authority solana.PublicKey) (*Vault, error) {
	account, err := NewAccount(info)
	if err != nil {
		return nil, err
	}
	if !solana.KeysEqual(account.Owner(), authority) {
		return nil, svm.ErrInvalidAccountData
	}
	return &Vault{Account: account}, nil
}

// NewVaultForMint additionally pins the vault to an expected mint.
func NewVaultForMint(info *svm.AccountInfo, authority, mint solana.PublicKey) (*Vault, error) {
	vault, err := NewVault(info, authority)
	if err != nil {
		return nil, err
	}
	if !solana.KeysEqual(vault.Mint(), mint) {
		return nil, svm.ErrInvalidAccountData
	}
	return vault, nil
}

// SolVault is a native lamport vault at a program-derived address.
// Construction verifies the account sits at the canonical address for the
// given seeds under the owning program.
type SolVault struct {
	// Info is the underlying raw account handle.
	Info *svm.AccountInfo

	bump uint8
}

// NewSolVault derives the canonical address for the seeds and verifies
// the account sits there.
func NewSolVault(owner solana.PublicKey, info *svm.AccountInfo, seeds ...[]byte) (*SolVault, error) {
	expected, bump, err := solana.FindProgramAddressAndBump(owner, seeds...)
	if err != nil {
		return nil, svm.ErrInvalidSeeds
	}
	if !solana.KeysEqual(info.Key, expected) {
		return nil, svm.ErrInvalidSeeds
	}
	return &SolVault{Info: info, bump: bump}, nil
}

// Key returns the vault's address.
func (v *SolVault) Key() solana.PublicKey {
	return v.Info.Key
}

// Bump returns the canonical bump for the vault's derivation.
func (v *SolVault) Bump() uint8 {
	return v.bump
}

// Lamports returns the vault's balance.
func (v *SolVault) Lamports() uint64 {
	return v.Info.Lamports
}
