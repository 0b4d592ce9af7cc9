package program

import (
	"reflect"
	"unsafe"
)

// Loadable is implemented by fixed-layout account state structs. The
// discriminator byte identifies the structure's type within one program's
// account space and is always the first byte of the persisted layout.
// Value 0 is reserved to mean "not yet initialized".
//
// A Loadable struct must have a fully explicit memory layout: the first
// field is the one-byte discriminator, every integer field is stored
// little-endian, and any alignment padding appears as explicit byte-array
// fields. reflect.Type.Size must equal the persisted length, because
// typed access reinterprets the account buffer in place.
type Loadable interface {
	// TypeDiscriminator returns the structure's nonzero discriminator
	// byte. Must be callable on the zero value.
	TypeDiscriminator() uint8
}

// sizeOf returns the in-memory (and therefore wire) size of T.
func sizeOf[T Loadable]() int {
	return int(reflect.TypeOf((*T)(nil)).Elem().Size())
}

// discriminatorOf returns T's declared discriminator byte.
func discriminatorOf[T Loadable]() uint8 {
	var zero T
	return zero.TypeDiscriminator()
}

// typeNameOf returns T's bare type name, used for registry diagnostics
// and IDL output.
func typeNameOf[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.Name()
}

// checkDiscriminator reports whether data is non-empty and its first byte
// matches the expected discriminator.
func checkDiscriminator(data []byte, expected uint8) bool {
	return len(data) > 0 && data[0] == expected
}

// viewAs reinterprets the front of a validated buffer as *T. The caller
// has already checked len(data) >= sizeOf[T](); account buffers come from
// host allocations, which keeps the base pointer aligned for any
// fixed-layout state struct.
func viewAs[T Loadable](data []byte) *T {
	return (*T)(unsafe.Pointer(unsafe.SliceData(data)))
}
