package program

import (
	"encoding/binary"

	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// System program instruction commands, little-endian u32 on the wire.
const (
	systemCommandCreateAccount = 0
	systemCommandTransfer      = 2
)

// maxCreateSeeds bounds the seed count for PDA creation, bump included.
const maxCreateSeeds = 6

const (
	// accountStorageOverhead is the per-account byte overhead the rent
	// model charges on top of the data length.
	accountStorageOverhead = 128

	// lamportsPerByte is the flat rent-exempt price per stored byte.
	lamportsPerByte = 6960
)

// RentExemptMinimum returns the lamport balance an account with dataLen
// bytes of data must hold to be exempt from rent collection.
func RentExemptMinimum(dataLen uint64) uint64 {
	return (accountStorageOverhead + dataLen) * lamportsPerByte
}

// newTransferInstruction builds a System program transfer of amount
// lamports from one account to another.
func newTransferInstruction(from, to solana.PublicKey, amount uint64) solana.Instruction {
	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data, systemCommandTransfer)
	binary.LittleEndian.PutUint64(data[4:], amount)

	return solana.NewInstruction(
		SYSTEM_PROGRAM_ID,
		data,
		solana.NewAccountMeta(from, true),
		solana.NewAccountMeta(to, false),
	)
}

// newCreateAccountInstruction builds a System program account creation
// funding the new account with lamports, sizing it to space bytes, and
// assigning ownership to owner.
func newCreateAccountInstruction(funder, account, owner solana.PublicKey, lamports, space uint64) solana.Instruction {
	data := make([]byte, 52)
	binary.LittleEndian.PutUint32(data, systemCommandCreateAccount)
	binary.LittleEndian.PutUint64(data[4:], lamports)
	binary.LittleEndian.PutUint64(data[12:], space)
	copy(data[20:], owner)

	return solana.NewInstruction(
		SYSTEM_PROGRAM_ID,
		data,
		solana.NewAccountMeta(funder, true),
		solana.NewAccountMeta(account, true),
	)
}

// TransferLamports moves amount lamports from the sender to the recipient
// through the System program. The sender must be a writable signer. A
// zero amount is a no-op and performs no invocation.
func TransferLamports(f *Framework, from, to *svm.AccountInfo, amount uint64) error {
	if amount == 0 {
		return nil
	}

	ix := newTransferInstruction(from.Key, to.Key, amount)
	return f.host.Invoke(ix, []*svm.AccountInfo{from, to})
}

// CreatePDAAccount creates an account at the program-derived address for
// the given seeds, funded to the rent-exempt minimum for space bytes by
// the payer and owned by the framework's program. The canonical bump is
// derived here and appended to the signer seeds, so callers pass only the
// logical seeds.
func CreatePDAAccount(f *Framework, payer, account *svm.AccountInfo, space uint64, seeds ...[]byte) error {
	if len(seeds)+1 > maxCreateSeeds {
		return svm.ErrInvalidSeeds
	}

	derived, bump, err := solana.FindProgramAddressAndBump(f.programID, seeds...)
	if err != nil {
		return svm.ErrInvalidSeeds
	}
	if !solana.KeysEqual(derived, account.Key) {
		return svm.ErrInvalidSeeds
	}

	signerSeeds := make([][]byte, 0, len(seeds)+1)
	signerSeeds = append(signerSeeds, seeds...)
	signerSeeds = append(signerSeeds, []byte{bump})

	ix := newCreateAccountInstruction(payer.Key, account.Key, f.programID, RentExemptMinimum(space), space)
	return f.host.InvokeSigned(ix, []*svm.AccountInfo{payer, account}, [][][]byte{signerSeeds})
}
