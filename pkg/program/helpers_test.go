package program

import (
	"crypto/ed25519"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
	"github.com/code-payments/code-program-sdk/pkg/svm/svmtest"
)

// vaultRecord is the account state struct used across these tests. The
// layout is explicit: discriminator byte, padding, then a little-endian
// balance.
type vaultRecord struct {
	Discriminator uint8
	Padding       [7]uint8
	Balance       uint64
}

func (vaultRecord) TypeDiscriminator() uint8 { return 1 }

const vaultRecordSize = 16

// ledgerRecord is a second account type for registry tests.
type ledgerRecord struct {
	Discriminator uint8
	Padding       [7]uint8
	Nonce         uint64
}

func (ledgerRecord) TypeDiscriminator() uint8 { return 2 }

// collidingRecord claims vaultRecord's discriminator.
type collidingRecord struct {
	Discriminator uint8
}

func (collidingRecord) TypeDiscriminator() uint8 { return 1 }

// reservedRecord claims the reserved discriminator.
type reservedRecord struct {
	Discriminator uint8
}

func (reservedRecord) TypeDiscriminator() uint8 { return 0 }

func generateKey(t *testing.T) solana.PublicKey {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	return pub
}

func newTestFramework(t *testing.T) (*Framework, *svmtest.Host) {
	programID := generateKey(t)
	host := svmtest.NewHost(programID)
	return NewFramework(programID, host), host
}

// newVaultAccount builds a writable, program-owned account holding an
// initialized vaultRecord with the given balance.
func newVaultAccount(t *testing.T, f *Framework, balance uint64) *svm.AccountInfo {
	data := make([]byte, vaultRecordSize)
	data[0] = 1
	binary.LittleEndian.PutUint64(data[8:], balance)

	return &svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      f.ProgramID(),
		Lamports:   RentExemptMinimum(vaultRecordSize),
		Data:       data,
		IsWritable: true,
	}
}

func deriveTestPDA(f *Framework, seeds ...[]byte) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(f.ProgramID(), seeds...)
}

func vaultBalanceBytes(info *svm.AccountInfo) uint64 {
	return binary.LittleEndian.Uint64(info.Data[8:])
}
