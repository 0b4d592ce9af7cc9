package program

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
)

// Well-known program identities. Compile-time constant table used for
// identity checks; never fetched from the chain.
var (
	SYSTEM_PROGRAM_ID = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")

	SPL_TOKEN_PROGRAM_ID      = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	SPL_TOKEN_2022_PROGRAM_ID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")

	ASSOCIATED_TOKEN_PROGRAM_ID = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")

	ADDRESS_LOOKUP_TABLE_PROGRAM_ID = solana.MustPublicKeyFromBase58("AddressLookupTab1e1111111111111111111111111")
)

// Well-known sysvar identities.
var (
	CLOCK_SYSVAR_ID = solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111")

	RENT_SYSVAR_ID = solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111")

	SLOT_HASHES_SYSVAR_ID = solana.MustPublicKeyFromBase58("SysvarS1otHashes111111111111111111111111111")

	INSTRUCTIONS_SYSVAR_ID = solana.MustPublicKeyFromBase58("Sysvar1nstructions1111111111111111111111111")

	RECENT_BLOCKHASHES_SYSVAR_ID = solana.MustPublicKeyFromBase58("SysvarRecentB1ockHashes11111111111111111111")
)
