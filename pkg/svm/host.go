package svm

import (
	"github.com/code-payments/code-program-sdk/pkg/solana"
)

// Host is the execution environment's cross-program invocation surface.
//
// The host executes instructions synchronously on a single call-depth
// bounded stack. A sub-program invoked through Invoke or InvokeSigned may
// rewrite or resize any account it is handed, so callers holding typed
// views over those accounts must refresh them afterwards; the host gives
// no notification that underlying memory changed.
type Host interface {
	// Invoke executes ix synchronously. Every account the instruction
	// references must appear in accounts, and signer privileges must
	// already be held by the calling context.
	Invoke(ix solana.Instruction, accounts []*AccountInfo) error

	// InvokeSigned executes ix synchronously, additionally extending
	// signer privilege to any program-derived address whose seed list
	// appears in signerSeeds (each entry is one address's ordered seeds,
	// bump included).
	InvokeSigned(ix solana.Instruction, accounts []*AccountInfo, signerSeeds [][][]byte) error
}
