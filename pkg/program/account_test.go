package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-program-sdk/pkg/svm"
)

func TestRentExemptMinimum(t *testing.T) {
	assert.EqualValues(t, 128*6960, RentExemptMinimum(0))
	assert.EqualValues(t, (128+16)*6960, RentExemptMinimum(16))
	assert.EqualValues(t, (128+165)*6960, RentExemptMinimum(165))
}

func TestTransferLamports(t *testing.T) {
	f, host := newTestFramework(t)

	from := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   1000,
		IsSigner:   true,
		IsWritable: true,
	})
	to := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	require.NoError(t, TransferLamports(f, from, to, 600))
	assert.EqualValues(t, 400, from.Lamports)
	assert.EqualValues(t, 600, to.Lamports)
}

func TestTransferLamports_ZeroAmount(t *testing.T) {
	f, _ := newTestFramework(t)

	// A zero transfer performs no invocation at all, so even an unsigned
	// sender passes.
	from := &svm.AccountInfo{Key: generateKey(t)}
	to := &svm.AccountInfo{Key: generateKey(t)}
	require.NoError(t, TransferLamports(f, from, to, 0))
}

func TestTransferLamports_InsufficientFunds(t *testing.T) {
	f, host := newTestFramework(t)

	from := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   100,
		IsSigner:   true,
		IsWritable: true,
	})
	to := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	err := TransferLamports(f, from, to, 101)
	assert.Equal(t, svm.ErrInsufficientFunds, err)
	assert.EqualValues(t, 100, from.Lamports)
	assert.EqualValues(t, 0, to.Lamports)
}

func TestTransferLamports_MissingSignature(t *testing.T) {
	f, host := newTestFramework(t)

	from := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   1000,
		IsWritable: true,
	})
	to := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	err := TransferLamports(f, from, to, 1)
	assert.Equal(t, svm.ErrMissingRequiredSignature, err)
}

func TestTransferLamports_BorrowGuard(t *testing.T) {
	f, host := newTestFramework(t)

	from := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   1000,
		IsSigner:   true,
		IsWritable: true,
	})
	to := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	// A view pinned across the invocation conflicts with the host's
	// exclusive hold on the executed accounts.
	require.NoError(t, from.HoldShared())
	err := TransferLamports(f, from, to, 100)
	assert.Equal(t, svm.ErrAccountBorrowFailed, err)
	assert.EqualValues(t, 1000, from.Lamports)
	assert.EqualValues(t, 0, to.Lamports)

	from.ReleaseShared()
	require.NoError(t, TransferLamports(f, from, to, 100))
	assert.EqualValues(t, 900, from.Lamports)
	assert.EqualValues(t, 100, to.Lamports)
}

func TestCreatePDAAccount(t *testing.T) {
	f, host := newTestFramework(t)

	seeds := [][]byte{[]byte("state"), []byte("0")}
	derived, _, err := deriveTestPDA(f, seeds...)
	require.NoError(t, err)

	payer := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   10_000_000_000,
		IsSigner:   true,
		IsWritable: true,
	})
	account := host.AddAccount(&svm.AccountInfo{
		Key:        derived,
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	require.NoError(t, CreatePDAAccount(f, payer, account, 64, seeds...))

	assert.Equal(t, f.ProgramID(), account.Owner)
	assert.Len(t, account.Data, 64)
	assert.EqualValues(t, RentExemptMinimum(64), account.Lamports)
	assert.EqualValues(t, 10_000_000_000-RentExemptMinimum(64), payer.Lamports)
}

func TestCreatePDAAccount_WrongAddress(t *testing.T) {
	f, host := newTestFramework(t)

	payer := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Lamports:   10_000_000_000,
		IsSigner:   true,
		IsWritable: true,
	})
	account := host.AddAccount(&svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		IsWritable: true,
	})

	err := CreatePDAAccount(f, payer, account, 64, []byte("state"))
	assert.Equal(t, svm.ErrInvalidSeeds, err)
}

func TestCreatePDAAccount_TooManySeeds(t *testing.T) {
	f, _ := newTestFramework(t)

	seeds := [][]byte{{1}, {2}, {3}, {4}, {5}, {6}}
	err := CreatePDAAccount(f, &svm.AccountInfo{}, &svm.AccountInfo{}, 64, seeds...)
	assert.Equal(t, svm.ErrInvalidSeeds, err)
}
