package svm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountInfo_Borrow(t *testing.T) {
	info := &AccountInfo{Data: []byte{1, 2, 3}}

	data, err := info.BorrowData()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	// Borrows are transient checks, not holds: repeated borrows of either
	// kind succeed.
	_, err = info.BorrowData()
	require.NoError(t, err)
	_, err = info.BorrowDataMut()
	require.NoError(t, err)
	_, err = info.BorrowDataMut()
	require.NoError(t, err)
}

func TestAccountInfo_SharedHold(t *testing.T) {
	info := &AccountInfo{Data: []byte{1}}

	require.NoError(t, info.HoldShared())
	require.NoError(t, info.HoldShared())

	// Shared holds permit reads but block exclusive access.
	_, err := info.BorrowData()
	assert.NoError(t, err)
	_, err = info.BorrowDataMut()
	assert.Equal(t, ErrAccountBorrowFailed, err)
	assert.Equal(t, ErrAccountBorrowFailed, info.HoldExclusive())

	info.ReleaseShared()
	_, err = info.BorrowDataMut()
	assert.Equal(t, ErrAccountBorrowFailed, err)

	info.ReleaseShared()
	_, err = info.BorrowDataMut()
	assert.NoError(t, err)
}

func TestAccountInfo_ExclusiveHold(t *testing.T) {
	info := &AccountInfo{Data: []byte{1}}

	require.NoError(t, info.HoldExclusive())

	_, err := info.BorrowData()
	assert.Equal(t, ErrAccountBorrowFailed, err)
	_, err = info.BorrowDataMut()
	assert.Equal(t, ErrAccountBorrowFailed, err)
	assert.Equal(t, ErrAccountBorrowFailed, info.HoldShared())
	assert.Equal(t, ErrAccountBorrowFailed, info.HoldExclusive())

	info.ReleaseExclusive()
	_, err = info.BorrowDataMut()
	assert.NoError(t, err)
}

func TestAccountInfo_Lamports(t *testing.T) {
	info := &AccountInfo{Lamports: 100}

	require.NoError(t, info.DebitLamports(60))
	assert.EqualValues(t, 40, info.Lamports)

	assert.Equal(t, ErrInsufficientFunds, info.DebitLamports(41))
	assert.EqualValues(t, 40, info.Lamports)

	info.CreditLamports(10)
	assert.EqualValues(t, 50, info.Lamports)
}
