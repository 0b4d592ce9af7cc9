package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// Per-program wrappers. Construction verifies the account sits at the
// well-known address, so a handler taking *SystemProgram cannot be fed a
// lookalike program smuggled into the account list.

// SystemProgram wraps the account at the System program address.
type SystemProgram struct {
	Info *svm.AccountInfo
}

// NewSystemProgram verifies the account is the System program.
func NewSystemProgram(info *svm.AccountInfo) (*SystemProgram, error) {
	if err := ValidateKey(info, SYSTEM_PROGRAM_ID); err != nil {
		return nil, err
	}
	return &SystemProgram{Info: info}, nil
}

// TokenProgram wraps the account at either SPL token program address. The
// original and 2022 programs share instruction and account layouts for
// the operations this SDK touches, so one wrapper accepts both and
// records which it was given.
type TokenProgram struct {
	Info *svm.AccountInfo

	isToken2022 bool
}

// NewTokenProgram verifies the account is one of the two SPL token
// programs.
func NewTokenProgram(info *svm.AccountInfo) (*TokenProgram, error) {
	if solana.KeysEqual(info.Key, SPL_TOKEN_PROGRAM_ID) {
		return &TokenProgram{Info: info}, nil
	}
	if solana.KeysEqual(info.Key, SPL_TOKEN_2022_PROGRAM_ID) {
		return &TokenProgram{Info: info, isToken2022: true}, nil
	}
	return nil, svm.ErrIncorrectProgramID
}

// IsToken2022 reports whether the wrapped program is the 2022 variant.
func (p *TokenProgram) IsToken2022() bool {
	return p.isToken2022
}

// Key returns the wrapped program's address.
func (p *TokenProgram) Key() solana.PublicKey {
	return p.Info.Key
}

// AssociatedTokenProgram wraps the account at the associated token
// program address.
type AssociatedTokenProgram struct {
	Info *svm.AccountInfo
}

// NewAssociatedTokenProgram verifies the account is the associated token
// program.
func NewAssociatedTokenProgram(info *svm.AccountInfo) (*AssociatedTokenProgram, error) {
	if err := ValidateKey(info, ASSOCIATED_TOKEN_PROGRAM_ID); err != nil {
		return nil, err
	}
	return &AssociatedTokenProgram{Info: info}, nil
}

// AddressLookupTableProgram wraps the account at the address lookup table
// program address.
type AddressLookupTableProgram struct {
	Info *svm.AccountInfo
}

// NewAddressLookupTableProgram verifies the account is the address lookup
// table program.
func NewAddressLookupTableProgram(info *svm.AccountInfo) (*AddressLookupTableProgram, error) {
	if err := ValidateKey(info, ADDRESS_LOOKUP_TABLE_PROGRAM_ID); err != nil {
		return nil, err
	}
	return &AddressLookupTableProgram{Info: info}, nil
}

// Lut wraps an address lookup table account in either lifecycle state:
// system-owned (not yet created), ALT-owned with discriminator 0
// (allocated but not set up), or ALT-owned with discriminator 1 (active).
// Construction classifies the state instead of failing on the
// uninitialized ones, which is what idempotent create-if-absent flows
// need.
type Lut struct {
	Info *svm.AccountInfo

	initialized bool
}

// NewLut wraps a lookup table account, determining its initialization
// state. Fails with ErrIllegalOwner if the account is owned by neither
// the System program nor the address lookup table program.
func NewLut(info *svm.AccountInfo) (*Lut, error) {
	if solana.KeysEqual(info.Owner, SYSTEM_PROGRAM_ID) {
		return &Lut{Info: info}, nil
	}

	if solana.KeysEqual(info.Owner, ADDRESS_LOOKUP_TABLE_PROGRAM_ID) {
		data, err := info.BorrowData()
		if err != nil {
			return nil, err
		}
		return &Lut{
			Info:        info,
			initialized: len(data) > 0 && data[0] == 1,
		}, nil
	}

	return nil, svm.ErrIllegalOwner
}

// Key returns the lookup table's address.
func (l *Lut) Key() solana.PublicKey {
	return l.Info.Key
}

// IsInitialized reports whether the lookup table is active and usable.
func (l *Lut) IsInitialized() bool {
	return l.initialized
}

// NeedsInit reports whether the lookup table must be created through the
// address lookup table program before use.
func (l *Lut) NeedsInit() bool {
	return !l.initialized
}

// Sysvar wrappers. Same construction-time identity proof as the program
// wrappers, against the sysvar address table.

// ClockSysvar wraps the account at the clock sysvar address.
type ClockSysvar struct {
	Info *svm.AccountInfo
}

// NewClockSysvar verifies the account is the clock sysvar.
func NewClockSysvar(info *svm.AccountInfo) (*ClockSysvar, error) {
	if err := ValidateKey(info, CLOCK_SYSVAR_ID); err != nil {
		return nil, err
	}
	return &ClockSysvar{Info: info}, nil
}

// RentSysvar wraps the account at the rent sysvar address.
type RentSysvar struct {
	Info *svm.AccountInfo
}

// NewRentSysvar verifies the account is the rent sysvar.
func NewRentSysvar(info *svm.AccountInfo) (*RentSysvar, error) {
	if err := ValidateKey(info, RENT_SYSVAR_ID); err != nil {
		return nil, err
	}
	return &RentSysvar{Info: info}, nil
}

// SlotHashesSysvar wraps the account at the slot hashes sysvar address.
type SlotHashesSysvar struct {
	Info *svm.AccountInfo
}

// NewSlotHashesSysvar verifies the account is the slot hashes sysvar.
func NewSlotHashesSysvar(info *svm.AccountInfo) (*SlotHashesSysvar, error) {
	if err := ValidateKey(info, SLOT_HASHES_SYSVAR_ID); err != nil {
		return nil, err
	}
	return &SlotHashesSysvar{Info: info}, nil
}

// InstructionsSysvar wraps the account at the instructions sysvar
// address.
type InstructionsSysvar struct {
	Info *svm.AccountInfo
}

// NewInstructionsSysvar verifies the account is the instructions sysvar.
func NewInstructionsSysvar(info *svm.AccountInfo) (*InstructionsSysvar, error) {
	if err := ValidateKey(info, INSTRUCTIONS_SYSVAR_ID); err != nil {
		return nil, err
	}
	return &InstructionsSysvar{Info: info}, nil
}

// RecentBlockhashesSysvar wraps the account at the recent blockhashes
// sysvar address.
type RecentBlockhashesSysvar struct {
	Info *svm.AccountInfo
}

// NewRecentBlockhashesSysvar verifies the account is the recent
// blockhashes sysvar.
func NewRecentBlockhashesSysvar(info *svm.AccountInfo) (*RecentBlockhashesSysvar, error) {
	if err := ValidateKey(info, RECENT_BLOCKHASHES_SYSVAR_ID); err != nil {
		return nil, err
	}
	return &RecentBlockhashesSysvar{Info: info}, nil
}
