package token

import (
	"github.com/code-payments/code-program-sdk/pkg/program"
	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// AssociatedTokenAddress derives the canonical associated token account
// address for a wallet and mint under the given token program.
func AssociatedTokenAddress(wallet, mint, tokenProgram solana.PublicKey) (solana.PublicKey, error) {
	return solana.FindProgramAddress(
		program.ASSOCIATED_TOKEN_PROGRAM_ID,
		wallet,
		tokenProgram,
		mint,
	)
}

// ataCreateIdempotent is the ATA program command that creates the account
// only if it does not already exist.
const ataCreateIdempotent = 1

// InitATA creates the associated token account for a wallet and mint if
// it does not already exist.
//
// Idempotent by construction: if the account is already owned by a token
// program it is assumed initialized and no invocation happens at all;
// otherwise the ATA program's CreateIdempotent command runs, with the
// payer funding rent.
func InitATA(f *program.Framework, ata, payer, wallet, mint, systemProgram, tokenProgram, ataProgram *svm.AccountInfo) error {
	if isTokenProgram(ata.Owner) {
		return nil
	}

	if !isTokenProgram(tokenProgram.Key) {
		return svm.ErrIllegalOwner
	}
	if !solana.KeysEqual(ataProgram.Key, program.ASSOCIATED_TOKEN_PROGRAM_ID) {
		return svm.ErrIncorrectProgramID
	}

	ix := solana.NewInstruction(
		program.ASSOCIATED_TOKEN_PROGRAM_ID,
		[]byte{ataCreateIdempotent},
		solana.NewAccountMeta(payer.Key, true),
		solana.NewAccountMeta(ata.Key, false),
		solana.NewReadonlyAccountMeta(wallet.Key, false),
		solana.NewReadonlyAccountMeta(mint.Key, false),
		solana.NewReadonlyAccountMeta(systemProgram.Key, false),
		solana.NewReadonlyAccountMeta(tokenProgram.Key, false),
	)

	return f.Host().Invoke(ix, []*svm.AccountInfo{payer, ata, wallet, mint, systemProgram, tokenProgram})
}
