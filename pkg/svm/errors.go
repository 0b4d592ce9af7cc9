package svm

import "errors"

// Instruction outcome errors surfaced to the host. The host maps a non-nil
// return into a full rollback of every account mutation attempted by the
// instruction, so these are terminal: nothing in this SDK recovers from
// them internally.
var (
	// ErrIllegalOwner indicates an account is not owned by the expected
	// program.
	ErrIllegalOwner = errors.New("illegal account owner")

	// ErrIncorrectProgramID indicates an account's address does not match
	// the expected program or sysvar identity.
	ErrIncorrectProgramID = errors.New("incorrect program id")

	// ErrMissingRequiredSignature indicates an account that must sign the
	// transaction did not.
	ErrMissingRequiredSignature = errors.New("missing required signature")

	// ErrInvalidAccountData is the generic structural failure: data too
	// small, wrong discriminator, not writable, or a business-rule
	// violation.
	ErrInvalidAccountData = errors.New("invalid account data")

	// ErrAccountAlreadyInitialized indicates a second initialization
	// attempt on an already-initialized account.
	ErrAccountAlreadyInitialized = errors.New("account already initialized")

	// ErrUninitializedAccount indicates account data is present but the
	// structure's initialization flag is unset. Used for externally-owned
	// structures such as token mints.
	ErrUninitializedAccount = errors.New("uninitialized account")

	// ErrInvalidInstructionData indicates an empty, undersized, or
	// unroutable instruction buffer.
	ErrInvalidInstructionData = errors.New("invalid instruction data")

	// ErrAccountBorrowFailed indicates an attempt to borrow account data
	// in a way that conflicts with an outstanding borrow.
	ErrAccountBorrowFailed = errors.New("account borrow failed")

	// ErrNotEnoughAccountKeys indicates the instruction referenced more
	// accounts than the host supplied.
	ErrNotEnoughAccountKeys = errors.New("not enough account keys")

	// ErrInsufficientFunds indicates a lamport debit larger than the
	// account's balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidSeeds indicates a PDA seed list the host cannot sign with.
	ErrInvalidSeeds = errors.New("invalid seeds")
)
