package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// mixedParams exercises mixed integer widths with explicit padding, the
// same layout discipline account state structs follow.
type mixedParams struct {
	Kind    uint8
	Padding [1]uint8
	Count   uint16
	Slot    uint32
	Amount  uint64
}

func TestParseParams(t *testing.T) {
	data := []byte{
		7,          // Kind
		0,          // Padding
		0x34, 0x12, // Count
		0x78, 0x56, 0x34, 0x12, // Slot
		0xef, 0xcd, 0xab, 0x89, 0x67, 0x45, 0x23, 0x01, // Amount
	}

	params, err := ParseParams[mixedParams](data)
	require.NoError(t, err)

	assert.EqualValues(t, 7, params.Kind)
	assert.EqualValues(t, 0x1234, params.Count)
	assert.EqualValues(t, 0x12345678, params.Slot)
	assert.EqualValues(t, 0x0123456789abcdef, params.Amount)
}

func TestParseParams_Undersized(t *testing.T) {
	_, err := ParseParams[mixedParams](make([]byte, 15))
	assert.Equal(t, svm.ErrInvalidInstructionData, err)

	_, err = ParseParams[transferParams](nil)
	assert.Equal(t, svm.ErrInvalidInstructionData, err)
}

func TestParseParams_TrailingBytes(t *testing.T) {
	data := make([]byte, 24)
	data[0] = 3

	// Trailing bytes from extended encodings are ignored.
	params, err := ParseParams[mixedParams](data)
	require.NoError(t, err)
	assert.EqualValues(t, 3, params.Kind)
}

var recordedPhases []string

type phaseParams struct {
	FailAt uint8
}

type phaseHandler struct{}

func (h *phaseHandler) Build(f *Framework, accounts []*svm.AccountInfo, params *phaseParams) error {
	recordedPhases = append(recordedPhases, "build")
	if params.FailAt == 1 {
		return svm.ErrNotEnoughAccountKeys
	}
	return nil
}

func (h *phaseHandler) Validate(f *Framework, params *phaseParams) error {
	recordedPhases = append(recordedPhases, "validate")
	if params.FailAt == 2 {
		return svm.ErrInvalidAccountData
	}
	return nil
}

func (h *phaseHandler) Execute(f *Framework, params *phaseParams) error {
	recordedPhases = append(recordedPhases, "execute")
	return nil
}

func TestProcess_PhaseOrder(t *testing.T) {
	f, _ := newTestFramework(t)

	recordedPhases = nil
	err := Process[phaseParams, phaseHandler](f, nil, []byte{0})
	require.NoError(t, err)
	assert.Equal(t, []string{"build", "validate", "execute"}, recordedPhases)
}

func TestProcess_StopsAtFirstFailure(t *testing.T) {
	f, _ := newTestFramework(t)

	recordedPhases = nil
	err := Process[phaseParams, phaseHandler](f, nil, []byte{1})
	assert.ErrorIs(t, err, svm.ErrNotEnoughAccountKeys)
	assert.Equal(t, []string{"build"}, recordedPhases)

	recordedPhases = nil
	err = Process[phaseParams, phaseHandler](f, nil, []byte{2})
	assert.ErrorIs(t, err, svm.ErrInvalidAccountData)
	assert.Equal(t, []string{"build", "validate"}, recordedPhases)
}
