package program

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"

	"github.com/code-payments/code-program-sdk/pkg/solana"
)

// AccountSpec documents one entry of an instruction's expected account
// list for metadata projection.
type AccountSpec struct {
	Name     string `json:"name"`
	Writable bool   `json:"writable,omitempty"`
	Signer   bool   `json:"signer,omitempty"`
}

// ParamField documents one field of an instruction's params struct.
type ParamField struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// InstructionMeta is the projected description of one registered
// instruction.
type InstructionMeta struct {
	Name          string        `json:"name"`
	Discriminator uint8         `json:"discriminator"`
	Accounts      []AccountSpec `json:"accounts,omitempty"`
	Params        []ParamField  `json:"params,omitempty"`
}

// AccountTypeMeta is the projected description of one registered account
// state type.
type AccountTypeMeta struct {
	Name          string `json:"name"`
	Discriminator uint8  `json:"discriminator"`
}

// IDL is the interface description generated from a router's
// registrations: program address, instructions in registration order, and
// account types in discriminator order. Everything in it is derived from
// the same registrations dispatch uses, so it cannot drift from runtime
// behavior.
type IDL struct {
	Program      string            `json:"program"`
	Instructions []InstructionMeta `json:"instructions"`
	Accounts     []AccountTypeMeta `json:"accounts,omitempty"`
}

// IDL projects the router's registrations into an interface description.
func (r *Router) IDL() *IDL {
	idl := &IDL{
		Program:      solana.KeyToBase58(r.f.programID),
		Instructions: make([]InstructionMeta, 0, len(r.order)),
	}

	for _, discriminator := range r.order {
		idl.Instructions = append(idl.Instructions, *r.metas[discriminator])
	}

	discriminators := make([]int, 0, len(r.f.accountTypes))
	for discriminator := range r.f.accountTypes {
		discriminators = append(discriminators, int(discriminator))
	}
	sort.Ints(discriminators)

	for _, discriminator := range discriminators {
		idl.Accounts = append(idl.Accounts, AccountTypeMeta{
			Name:          r.f.accountTypes[uint8(discriminator)],
			Discriminator: uint8(discriminator),
		})
	}

	return idl
}

// JSON renders the description as indented JSON. Deliberately not named
// MarshalText: satisfying encoding.TextMarshaler would change how a
// nested IDL renders under json.Marshal.
func (i *IDL) JSON() ([]byte, error) {
	return json.MarshalIndent(i, "", "  ")
}

// paramFieldsOf projects a params struct type into field descriptions
// using wire-oriented type names.
func paramFieldsOf(t reflect.Type) []ParamField {
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]ParamField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fields = append(fields, ParamField{
			Name: field.Name,
			Type: wireTypeName(field.Type),
		})
	}
	return fields
}

func wireTypeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.Uint8:
		return "u8"
	case reflect.Uint16:
		return "u16"
	case reflect.Uint32:
		return "u32"
	case reflect.Uint64:
		return "u64"
	case reflect.Int8:
		return "i8"
	case reflect.Int16:
		return "i16"
	case reflect.Int32:
		return "i32"
	case reflect.Int64:
		return "i64"
	case reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return fmt.Sprintf("bytes[%d]", t.Len())
		}
		return fmt.Sprintf("%s[%d]", wireTypeName(t.Elem()), t.Len())
	case reflect.Struct:
		return t.Name()
	default:
		return t.String()
	}
}
