package program

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-program-sdk/pkg/svm"
)

func TestLoadMut(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)

	ref, err := LoadMut[vaultRecord](f, info)
	require.NoError(t, err)

	// Mutations land in the account buffer immediately; there is no
	// commit step.
	ref.GetMut().Balance = 750
	assert.EqualValues(t, 750, vaultBalanceBytes(info))
	assert.EqualValues(t, 750, ref.Get().Balance)
}

func TestLoadMut_NotWritable(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)
	info.IsWritable = false

	_, err := LoadMut[vaultRecord](f, info)
	assert.Equal(t, svm.ErrInvalidAccountData, err)

	// Writability is checked before ownership: an account that fails both
	// reports the writability failure.
	info.Owner = generateKey(t)
	_, err = LoadMut[vaultRecord](f, info)
	assert.Equal(t, svm.ErrInvalidAccountData, err)
}

func TestLoadMut_WrongOwner(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)
	info.Owner = generateKey(t)

	_, err := LoadMut[vaultRecord](f, info)
	assert.Equal(t, svm.ErrIllegalOwner, err)

	ref, err := LoadUncheckedMut[vaultRecord](f, info)
	require.NoError(t, err)
	assert.EqualValues(t, 500, ref.Get().Balance)
}

func TestTryLoadMut(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)

	ref := TryLoadMut[vaultRecord](f, info)
	require.NotNil(t, ref)
	assert.EqualValues(t, 500, ref.Get().Balance)

	info.IsWritable = false
	assert.Nil(t, TryLoadMut[vaultRecord](f, info))

	info.IsWritable = true
	info.Data[0] = 9
	assert.Nil(t, TryLoadMut[vaultRecord](f, info))
}

func TestAccountRefMut_Reload(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)

	ref, err := LoadMut[vaultRecord](f, info)
	require.NoError(t, err)

	// Simulate a sub-program rewriting the account into fresh memory.
	rewritten := make([]byte, vaultRecordSize)
	rewritten[0] = 1
	binary.LittleEndian.PutUint64(rewritten[8:], 9000)
	info.Data = rewritten

	// The stale view still sees the old buffer until Reload.
	assert.EqualValues(t, 500, ref.Get().Balance)

	require.NoError(t, ref.Reload())
	assert.EqualValues(t, 9000, ref.Get().Balance)
}

func TestAccountRefMut_ReloadShrunk(t *testing.T) {
	f, _ := newTestFramework(t)
	info := newVaultAccount(t, f, 500)

	ref, err := LoadMut[vaultRecord](f, info)
	require.NoError(t, err)

	info.Data = make([]byte, vaultRecordSize-1)
	assert.Equal(t, svm.ErrInvalidAccountData, ref.Reload())
}

func TestInit(t *testing.T) {
	f, _ := newTestFramework(t)
	info := &svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      f.ProgramID(),
		Data:       make([]byte, vaultRecordSize),
		IsWritable: true,
	}

	ref, err := Init[vaultRecord](f, info)
	require.NoError(t, err)
	assert.EqualValues(t, 1, info.Data[0])
	assert.EqualValues(t, 0, ref.Get().Balance)

	// Exactly-once: a second init on the now-initialized account fails.
	_, err = Init[vaultRecord](f, info)
	assert.Equal(t, svm.ErrAccountAlreadyInitialized, err)
}

func TestInit_SystemOwned(t *testing.T) {
	f, _ := newTestFramework(t)
	info := &svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      SYSTEM_PROGRAM_ID,
		Data:       make([]byte, vaultRecordSize),
		IsWritable: true,
	}

	// System-owned accounts count as uninitialized regardless of content.
	_, err := Init[vaultRecord](f, info)
	require.NoError(t, err)
}

func TestInit_NotWritable(t *testing.T) {
	f, _ := newTestFramework(t)
	info := &svm.AccountInfo{
		Key:   generateKey(t),
		Owner: f.ProgramID(),
		Data:  make([]byte, vaultRecordSize),
	}

	_, err := Init[vaultRecord](f, info)
	assert.Equal(t, svm.ErrInvalidAccountData, err)
}

func TestInit_TooSmall(t *testing.T) {
	f, _ := newTestFramework(t)
	info := &svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      f.ProgramID(),
		Data:       make([]byte, vaultRecordSize-1),
		IsWritable: true,
	}

	_, err := Init[vaultRecord](f, info)
	assert.Equal(t, svm.ErrInvalidAccountData, err)
}

func TestInitIfNeeded(t *testing.T) {
	f, _ := newTestFramework(t)
	info := &svm.AccountInfo{
		Key:        generateKey(t),
		Owner:      f.ProgramID(),
		Data:       make([]byte, vaultRecordSize),
		IsWritable: true,
	}

	ref, err := InitIfNeeded[vaultRecord](f, info)
	require.NoError(t, err)
	ref.GetMut().Balance = 123

	// Idempotent: a second call loads the existing state untouched.
	ref, err = InitIfNeeded[vaultRecord](f, info)
	require.NoError(t, err)
	assert.EqualValues(t, 123, ref.Get().Balance)
}

func TestInitPDA(t *testing.T) {
	f, host := newTestFramework(t)

	seeds := [][]byte{[]byte("vault"), []byte("7")}
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

	ref, err := InitPDA[vaultRecord](f, account, payer, vaultRecordSize, seeds...)
	require.NoError(t, err)

	assert.Equal(t, f.ProgramID(), account.Owner)
	assert.Len(t, account.Data, vaultRecordSize)
	assert.EqualValues(t, RentExemptMinimum(vaultRecordSize), account.Lamports)
	assert.EqualValues(t, 1, account.Data[0])
	assert.EqualValues(t, 0, ref.Get().Balance)
}
