package program

import (
	"github.com/pkg/errors"

	"github.com/code-payments/code-program-sdk/pkg/solana"
	"github.com/code-payments/code-program-sdk/pkg/svm"
)

var (
	ErrReservedDiscriminator  = errors.New("discriminator 0 is reserved for uninitialized accounts")
	ErrDuplicateDiscriminator = errors.New("duplicate discriminator")
)

// Framework carries the identity and capabilities of one program: the
// program id account ownership is validated against, the host used for
// cross-program invocations, and the registry of account-type
// discriminators declared by the program.
//
// One Framework is built at program start and shared by every instruction
// invocation; it holds no per-instruction state.
type Framework struct {
	programID solana.PublicKey
	host      svm.Host

	accountTypes map[uint8]string
}

// NewFramework creates a framework for the given program identity.
func NewFramework(programID solana.PublicKey, host svm.Host) *Framework {
	return &Framework{
		programID:    programID,
		host:         host,
		accountTypes: make(map[uint8]string),
	}
}

// ProgramID returns the program identity accounts are validated against.
func (f *Framework) ProgramID() solana.PublicKey {
	return f.programID
}

// Host returns the cross-program invocation surface.
func (f *Framework) Host() svm.Host {
	return f.host
}

// RegisterAccountType records T's discriminator in the program's account
// type registry. Registration happens once at program start; a duplicate
// discriminator or the reserved value 0 is a hard failure so collisions
// surface at startup instead of as silent account confusion at runtime.
func RegisterAccountType[T Loadable](f *Framework) error {
	discriminator := discriminatorOf[T]()
	name := typeNameOf[T]()

	if discriminator == 0 {
		return errors.Wrapf(ErrReservedDiscriminator, "registering %s", name)
	}
	if existing, ok := f.accountTypes[discriminator]; ok {
		return errors.Wrapf(ErrDuplicateDiscriminator, "%d claimed by both %s and %s", discriminator, existing, name)
	}

	f.accountTypes[discriminator] = name
	return nil
}

// AccountTypeName returns the registered name for a discriminator.
func (f *Framework) AccountTypeName(discriminator uint8) (string, bool) {
	name, ok := f.accountTypes[discriminator]
	return name, ok
}
