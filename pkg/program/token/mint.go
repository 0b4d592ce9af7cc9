package token

import (
	"encoding/binary"

	"github.com/code-payments/code-program-sdk/pkg/program"
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// MintSize is the serialized size of an SPL token mint.
const MintSize = 82

// Mint offsets. The mint and freeze authorities are COption<Pubkey>: a
// little-endian u32 presence flag followed by the key bytes.
const (
	mintAuthorityOptionOffset = 0
	mintAuthorityOffset       = 4
	mintSupplyOffset          = 36
	mintDecimalsOffset        = 44
	mintInitializedOffset     = 45
	mintFreezeAuthorityOption = 46
	mintFreezeAuthorityOffset = 50
)

// Mint is a read-only view over an SPL token mint account. Construction
// verifies ownership by a token program, the exact serialized size, and
// that the mint has been initialized.
type Mint struct {
	// Info is the underlying raw account handle.
	Info *svm.AccountInfo

	data []byte
}

// NewMint validates and wraps a token mint account.
func NewMint(info *svm.AccountInfo) (*Mint, error) {
	if !isTokenProgram(info.Owner) {
		return nil, svm.ErrIllegalOwner
	}

	data, err := info.BorrowData()
	if err != nil {
		return nil, err
	}
	if len(data) < MintSize {
		return nil, svm.ErrInvalidAccountData
	}
	if data[mintInitializedOffset] == 0 {
		return nil, svm.ErrUninitializedAccount
	}

	return &Mint{Info: info, data: data}, nil
}

// Key returns the mint's address.
func (m *Mint) Key() solana.PublicKey {
	return m.Info.Key
}

// Supply returns the total circulating supply in base units.
func (m *Mint) Supply() uint64 {
	return binary.LittleEndian.Uint64(m.data[mintSupplyOffset:])
}

// Decimals returns the mint's decimal precision.
func (m *Mint) Decimals() uint8 {
	return m.data[mintDecimalsOffset]
}

// Authority returns the mint authority, or false if minting is disabled.
func (m *Mint) Authority() (solana.PublicKey, bool) {
	if binary.LittleEndian.Uint32(m.data[mintAuthorityOptionOffset:]) == 0 {
		return nil, false
	}
	return solana.PublicKey(m.data[mintAuthorityOffset : mintAuthorityOffset+32]), true
}

// FreezeAuthority returns the freeze authority, or false if none is set.
func (m *Mint) FreezeAuthority() (solana.PublicKey, bool) {
	if binary.LittleEndian.Uint32(m.data[mintFreezeAuthorityOption:]) == 0 {
		return nil, false
	}
	return solana.PublicKey(m.data[mintFreezeAuthorityOffset : mintFreezeAuthorityOffset+32]), true
}

func isTokenProgram(key solana.PublicKey) bool {
	return solana.KeysEqual(key, program.SPL_TOKEN_PROGRAM_ID) ||
		solana.KeysEqual(key, program.SPL_TOKEN_2022_PROGRAM_ID)
}
