package program

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/code-program-sdk/pkg/svm"
)

type handlerFunc func(f *Framework, accounts []*svm.AccountInfo, data []byte) error

// Router dispatches incoming instructions on their one-byte
// discriminator. The first byte of instruction data selects the handler;
// the remaining bytes are the handler's params payload. Registration
// happens once at program start and rejects discriminator collisions
// outright, so a routing conflict can never reach runtime dispatch.
type Router struct {
	log *logrus.Entry
	f   *Framework

	handlers map[uint8]handlerFunc
	metas    map[uint8]*InstructionMeta
	order    []uint8
}

// NewRouter creates an empty router for the framework's program.
func NewRouter(f *Framework) *Router {
	return &Router{
		log:      logrus.StandardLogger().WithField("type", "program/router"),
		f:        f,
		handlers: make(map[uint8]handlerFunc),
		metas:    make(map[uint8]*InstructionMeta),
	}
}

// Route registers a handler type under a discriminator. H is the
// handler's struct type, P its params struct; the accounts document the
// expected account list for metadata projection and are not enforced at
// dispatch.
//
// Registering the same discriminator twice fails with
// ErrDuplicateDiscriminator naming both claimants.
func Route[P any, H any, PH interface {
	*H
	Handler[P]
}](r *Router, discriminator uint8, name string, accounts ...AccountSpec) error {
	if existing, ok := r.metas[discriminator]; ok {
		return errors.Wrapf(ErrDuplicateDiscriminator, "%d claimed by both %s and %s", discriminator, existing.Name, name)
	}

	r.handlers[discriminator] = func(f *Framework, accounts []*svm.AccountInfo, data []byte) error {
		return Process[P, H, PH](f, accounts, data)
	}
	r.metas[discriminator] = &InstructionMeta{
		Name:          name,
		Discriminator: discriminator,
		Accounts:      accounts,
		Params:        paramFieldsOf(reflect.TypeOf((*P)(nil)).Elem()),
	}
	r.order = append(r.order, discriminator)

	return nil
}

// MustRoute is Route that panics on registration failure. For program
// start, where a routing conflict is unrecoverable.
func MustRoute[P any, H any, PH interface {
	*H
	Handler[P]
}](r *Router, discriminator uint8, name string, accounts ...AccountSpec) {
	if err := Route[P, H, PH](r, discriminator, name, accounts...); err != nil {
		panic(err)
	}
}

// Process dispatches one instruction. Empty instruction data and unknown
// discriminators both fail with ErrInvalidInstructionData.
func (r *Router) Process(accounts []*svm.AccountInfo, data []byte) error {
	if len(data) == 0 {
		return svm.ErrInvalidInstructionData
	}

	discriminator := data[0]

	handler, ok := r.handlers[discriminator]
	if !ok {
		r.log.WithField("discriminator", discriminator).Warn("unknown instruction discriminator")
		return svm.ErrInvalidInstructionData
	}

	log := r.log.WithFields(logrus.Fields{
		"method":        "Process",
		"instruction":   r.metas[discriminator].Name,
		"discriminator": discriminator,
	})

	if err := handler(r.f, accounts, data[1:]); err != nil {
		log.WithError(err).Warn("instruction failed")
		return err
	}
	return nil
}

// InstructionName returns the registered name for a discriminator.
func (r *Router) InstructionName(discriminator uint8) (string, bool) {
	meta, ok := r.metas[discriminator]
	if !ok {
		return "", false
	}
	return meta.Name, true
}
