package program

import (
	"reflect"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/code-payments/code-program-sdk/pkg/svm"
)

// Handler is the three-phase contract every instruction implements.
//
// Build resolves the raw account list into typed fields on the handler
// and performs structural validation (wrappers, accessors, shard
// contexts). Validate checks business rules against the now-typed state
// and must not mutate anything. Execute performs the mutations and any
// sub-program invocations. The split guarantees that a validation
// failure leaves every account byte-for-byte untouched.
type Handler[P any] interface {
	Build(f *Framework, accounts []*svm.AccountInfo, params *P) error
	Validate(f *Framework, params *P) error
	Execute(f *Framework, params *P) error
}

// paramsSizeOf returns the wire size of a params struct.
func paramsSizeOf[P any]() int {
	return int(reflect.TypeOf((*P)(nil)).Elem().Size())
}

// ParseParams decodes a fixed-layout params struct from instruction data.
// The data must hold at least one full P; trailing bytes are ignored so
// extended encodings from newer clients still parse. Decoding copies, so
// P carries no alignment requirement on the input buffer.
func ParseParams[P any](data []byte) (P, error) {
	var params P

	size := paramsSizeOf[P]()
	if len(data) < size {
		return params, svm.ErrInvalidInstructionData
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(&params)), size)
	copy(dst, data[:size])

	return params, nil
}

// Process runs one instruction end to end: decode params, then the
// build, validate, and execute phases in order, stopping at the first
// failure. The data argument is the instruction payload after the
// discriminator byte has been stripped.
//
// H is the handler's struct type; its pointer must implement Handler[P].
// A fresh handler is allocated per invocation, so Build-resolved fields
// never leak across instructions.
func Process[P any, H any, PH interface {
	*H
	Handler[P]
}](f *Framework, accounts []*svm.AccountInfo, data []byte) error {
	params, err := ParseParams[P](data)
	if err != nil {
		return err
	}

	handler := PH(new(H))

	if err := handler.Build(f, accounts, &params); err != nil {
		return errors.Wrap(err, "build")
	}
	if err := handler.Validate(f, &params); err != nil {
		return errors.Wrap(err, "validate")
	}
	if err := handler.Execute(f, &params); err != nil {
		return errors.Wrap(err, "execute")
	}
	return nil
}
