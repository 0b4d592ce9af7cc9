// Package svmtest provides an in-memory host for exercising programs in
// unit tests. It resolves instruction accounts, enforces signer
// privileges (including program-derived signing via seeds), and executes
// the subset of System program instructions the SDK's own utilities
// emit.
package svmtest

import (
	"encoding/binary"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

var (
	systemProgramID    = solana.MustPublicKeyFromBase58("11111111111111111111111111111111")
	ataProgramID       = solana.MustPublicKeyFromBase58("ATokenGPvbdGVxr1b2hvZbsiqW5xWH25efTNsLJA8knL")
	tokenProgramID     = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	token2022ProgramID = solana.MustPublicKeyFromBase58("TokenzQdBNbLqP5VEhdkAS6EPFLC1PHnBqCXEpPxuEb")
)

// Host is an in-memory svm.Host. It tracks accounts by address and
// executes System program invocations against them.
type Host struct {
	log *logrus.Entry

	program  solana.PublicKey
	accounts map[string]*svm.AccountInfo
}

// NewHost creates a host for a program under test. Program-derived
// signatures in InvokeSigned are verified against this program's
// identity.
func NewHost(program solana.PublicKey) *Host {
	return &Host{
		log:      logrus.StandardLogger().WithField("type", "svmtest/host"),
		program:  program,
		accounts: make(map[string]*svm.AccountInfo),
	}
}

// AddAccount registers an account with the host and returns it.
func (h *Host) AddAccount(info *svm.AccountInfo) *svm.AccountInfo {
	h.accounts[string(info.Key)] = info
	return info
}

// Account returns the registered account at the address, or nil.
func (h *Host) Account(key solana.PublicKey) *svm.AccountInfo {
	return h.accounts[string(key)]
}

// Invoke executes an instruction with no program-derived signers.
func (h *Host) Invoke(ix solana.Instruction, accounts []*svm.AccountInfo) error {
	return h.InvokeSigned(ix, accounts, nil)
}

// InvokeSigned executes an instruction. Accounts the instruction marks
// as signers must either carry a transaction signature or match an
// address derived from one of the signer seed sets under the host's
// program.
func (h *Host) InvokeSigned(ix solana.Instruction, accounts []*svm.AccountInfo, signerSeeds [][][]byte) error {
	h.log.WithFields(logrus.Fields{
		"method":   "InvokeSigned",
		"program":  solana.KeyToBase58(ix.Program),
		"accounts": len(ix.Accounts),
	}).Debug("invoking")

	resolved, err := h.resolve(ix, accounts)
	if err != nil {
		return err
	}

	derived, err := h.deriveSigners(signerSeeds)
	if err != nil {
		return err
	}

	for i, meta := range ix.Accounts {
		if !meta.IsSigner {
			continue
		}
		if resolved[i].IsSigner {
			continue
		}
		if _, ok := derived[string(meta.PublicKey)]; ok {
			continue
		}
		return svm.ErrMissingRequiredSignature
	}

	// Pin the accounts for the duration of execution the way the runtime
	// does: any outstanding caller-side borrow on an account the
	// invocation touches conflicts here instead of aliasing silently.
	release, err := h.holdAccounts(ix, resolved)
	if err != nil {
		return err
	}
	defer release()

	switch {
	case solana.KeysEqual(ix.Program, systemProgramID):
		return h.executeSystem(ix, resolved)
	case solana.KeysEqual(ix.Program, ataProgramID):
		return h.executeAssociatedToken(ix, resolved)
	default:
		return errors.Errorf("unsupported program: %s", solana.KeyToBase58(ix.Program))
	}
}

func (h *Host) holdAccounts(ix solana.Instruction, accounts []*svm.AccountInfo) (func(), error) {
	releases := make([]func(), 0, len(accounts))
	release := func() {
		for _, r := range releases {
			r()
		}
	}

	for i, meta := range ix.Accounts {
		info := accounts[i]
		if meta.IsWritable {
			if err := info.HoldExclusive(); err != nil {
				release()
				return nil, err
			}
			releases = append(releases, info.ReleaseExclusive)
		} else {
			if err := info.HoldShared(); err != nil {
				release()
				return nil, err
			}
			releases = append(releases, info.ReleaseShared)
		}
	}

	return release, nil
}

func (h *Host) resolve(ix solana.Instruction, accounts []*svm.AccountInfo) ([]*svm.AccountInfo, error) {
	resolved := make([]*svm.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		for _, info := range accounts {
			if solana.KeysEqual(info.Key, meta.PublicKey) {
				resolved[i] = info
				break
			}
		}
		if resolved[i] == nil {
			return nil, svm.ErrNotEnoughAccountKeys
		}
	}
	return resolved, nil
}

func (h *Host) deriveSigners(signerSeeds [][][]byte) (map[string]struct{}, error) {
	derived := make(map[string]struct{}, len(signerSeeds))
	for _, seeds := range signerSeeds {
		address, err := solana.CreateProgramAddress(h.program, seeds...)
		if err != nil {
			return nil, svm.ErrInvalidSeeds
		}
		derived[string(address)] = struct{}{}
	}
	return derived, nil
}

// System program instruction commands.
const (
	systemCreateAccount = 0
	systemTransfer      = 2
)

func (h *Host) executeSystem(ix solana.Instruction, accounts []*svm.AccountInfo) error {
	if len(ix.Data) < 4 {
		return svm.ErrInvalidInstructionData
	}

	switch binary.LittleEndian.Uint32(ix.Data) {
	case systemCreateAccount:
		return h.executeCreateAccount(ix, accounts)
	case systemTransfer:
		return h.executeTransfer(ix, accounts)
	default:
		return svm.ErrInvalidInstructionData
	}
}

func (h *Host) executeCreateAccount(ix solana.Instruction, accounts []*svm.AccountInfo) error {
	if len(ix.Data) < 52 || len(accounts) < 2 {
		return svm.ErrInvalidInstructionData
	}

	lamports := binary.LittleEndian.Uint64(ix.Data[4:])
	space := binary.LittleEndian.Uint64(ix.Data[12:])
	owner := solana.PublicKey(ix.Data[20:52])

	funder, account := accounts[0], accounts[1]

	if !solana.KeysEqual(account.Owner, systemProgramID) || len(account.Data) > 0 {
		return svm.ErrAccountAlreadyInitialized
	}
	if err := funder.DebitLamports(lamports); err != nil {
		return err
	}

	account.Lamports += lamports
	account.Owner = owner
	account.Data = make([]byte, space)

	return nil
}

func (h *Host) executeTransfer(ix solana.Instruction, accounts []*svm.AccountInfo) error {
	if len(ix.Data) < 12 || len(accounts) < 2 {
		return svm.ErrInvalidInstructionData
	}

	amount := binary.LittleEndian.Uint64(ix.Data[4:])
	from, to := accounts[0], accounts[1]

	if err := from.DebitLamports(amount); err != nil {
		return err
	}
	to.CreditLamports(amount)

	return nil
}

// Associated token account layout constants mirrored for execution.
const (
	tokenAccountSize        = 165
	tokenAccountStateOffset = 108
)

// executeAssociatedToken handles the ATA program's Create (0) and
// CreateIdempotent (1) commands. Accounts: payer, ata, wallet, mint,
// system program, token program.
func (h *Host) executeAssociatedToken(ix solana.Instruction, accounts []*svm.AccountInfo) error {
	if len(ix.Data) < 1 || len(accounts) < 6 {
		return svm.ErrInvalidInstructionData
	}
	idempotent := ix.Data[0] == 1

	payer, ata, wallet, mint := accounts[0], accounts[1], accounts[2], accounts[3]
	tokenProgram := accounts[5]

	if !solana.KeysEqual(tokenProgram.Key, tokenProgramID) &&
		!solana.KeysEqual(tokenProgram.Key, token2022ProgramID) {
		return svm.ErrIncorrectProgramID
	}

	derived, err := solana.FindProgramAddress(ataProgramID, wallet.Key, tokenProgram.Key, mint.Key)
	if err != nil {
		return svm.ErrInvalidSeeds
	}
	if !solana.KeysEqual(ata.Key, derived) {
		return svm.ErrInvalidSeeds
	}

	if solana.KeysEqual(ata.Owner, tokenProgram.Key) {
		if idempotent {
			return nil
		}
		return svm.ErrAccountAlreadyInitialized
	}

	rent := uint64(128+tokenAccountSize) * 6960
	if err := payer.DebitLamports(rent); err != nil {
		return err
	}
	ata.Lamports += rent
	ata.Owner = tokenProgram.Key

	data := make([]byte, tokenAccountSize)
	copy(data[0:], mint.Key)
	copy(data[32:], wallet.Key)
	data[tokenAccountStateOffset] = 1
	ata.Data = data

	return nil
}

// Snapshot returns a copy of an account's current data, for asserting
// that an operation left the buffer untouched.
func Snapshot(info *svm.AccountInfo) []byte {
	snapshot := make([]byte, len(info.Data))
	copy(snapshot, info.Data)
	return snapshot
}
