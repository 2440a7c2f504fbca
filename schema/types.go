package schema

import "fmt"

// Type is a contract schema type. The set of implementations is closed.
type Type interface {
	schemaType()
}

// ScalarKind identifies a payload-free schema type.
type ScalarKind uint8

const (
	Unit ScalarKind = iota
	Bool
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	Amount
	AccountAddress
	ContractAddress
	Timestamp
	Duration
	U128
	I128
)

var scalarNames = [...]string{
	Unit:            "Unit",
	Bool:            "Bool",
	U8:              "U8",
	U16:             "U16",
	U32:             "U32",
	U64:             "U64",
	I8:              "I8",
	I16:             "I16",
	I32:             "I32",
	I64:             "I64",
	Amount:          "Amount",
	AccountAddress:  "AccountAddress",
	ContractAddress: "ContractAddress",
	Timestamp:       "Timestamp",
	Duration:        "Duration",
	U128:            "U128",
	I128:            "I128",
}

func (k ScalarKind) String() string {
	if int(k) < len(scalarNames) {
		return scalarNames[k]
	}
	return fmt.Sprintf("ScalarKind(%d)", uint8(k))
}

// SizeLength is the width of the length prefix of a collection.
type SizeLength uint8

const (
	SizeU8 SizeLength = iota
	SizeU16
	SizeU32
	SizeU64
)

func (s SizeLength) String() string {
	switch s {
	case SizeU8:
		return "U8"
	case SizeU16:
		return "U16"
	case SizeU32:
		return "U32"
	case SizeU64:
		return "U64"
	}
	return fmt.Sprintf("SizeLength(%d)", uint8(s))
}

type (
	// Scalar is any schema type without a payload.
	Scalar struct {
		Kind ScalarKind
	}

	// Pair is a two-element tuple.
	Pair struct {
		First, Second Type
	}

	// List is a variable-length sequence.
	List struct {
		Item       Type
		SizeLength SizeLength
	}

	// Set is a variable-length collection of unique items.
	Set struct {
		Item       Type
		SizeLength SizeLength
	}

	// Map is a variable-length key/value collection.
	Map struct {
		Key, Value Type
		SizeLength SizeLength
	}

	// Array is a fixed-length sequence.
	Array struct {
		Item Type
		Size uint32
	}

	// Struct is a record with named, unnamed or no fields.
	Struct struct {
		Fields Fields
	}

	// Enum is a sum type; variants are discriminated by position.
	Enum struct {
		Variants []Variant
	}

	// TaggedEnum is a sum type with explicit one-byte tags, in insertion order.
	TaggedEnum struct {
		Variants []TaggedVariant
	}

	String struct {
		SizeLength SizeLength
	}

	ContractName struct {
		SizeLength SizeLength
	}

	ReceiveName struct {
		SizeLength SizeLength
	}

	// ULeb128 is an unsigned LEB128 integer of at most MaxByteSize bytes.
	ULeb128 struct {
		MaxByteSize uint32
	}

	// ILeb128 is a signed LEB128 integer of at most MaxByteSize bytes.
	ILeb128 struct {
		MaxByteSize uint32
	}

	ByteList struct {
		SizeLength SizeLength
	}

	ByteArray struct {
		Size uint32
	}
)

func (*Scalar) schemaType()       {}
func (*Pair) schemaType()         {}
func (*List) schemaType()         {}
func (*Set) schemaType()          {}
func (*Map) schemaType()          {}
func (*Array) schemaType()        {}
func (*Struct) schemaType()       {}
func (*Enum) schemaType()         {}
func (*TaggedEnum) schemaType()   {}
func (*String) schemaType()       {}
func (*ContractName) schemaType() {}
func (*ReceiveName) schemaType()  {}
func (*ULeb128) schemaType()      {}
func (*ILeb128) schemaType()      {}
func (*ByteList) schemaType()     {}
func (*ByteArray) schemaType()    {}

// Variant is a named enum variant.
type Variant struct {
	Fields Fields
	Name   string
}

// TaggedVariant is an enum variant with its explicit tag.
type TaggedVariant struct {
	Variant
	Tag uint8
}

// Fields is the closed union of struct and variant field layouts.
type Fields interface {
	fields()
}

type (
	// NamedFields is an ordered list of named fields.
	NamedFields []NamedField

	// UnnamedFields is an ordered list of positional fields.
	UnnamedFields []Type

	// NoFields marks a field-less struct or variant.
	NoFields struct{}
)

func (NamedFields) fields()   {}
func (UnnamedFields) fields() {}
func (NoFields) fields()      {}

// NamedField is one field of a NamedFields layout.
type NamedField struct {
	Type Type
	Name string
}

// NewScalar returns the scalar type for kind.
func NewScalar(kind ScalarKind) *Scalar {
	return &Scalar{Kind: kind}
}

// IsUnit reports whether t is the Unit type.
func IsUnit(t Type) bool {
	s, ok := t.(*Scalar)
	return ok && s.Kind == Unit
}

// Name returns the variant name of t as used in the JSON view.
func Name(t Type) string {
	switch t := t.(type) {
	case *Scalar:
		return t.Kind.String()
	case *Pair:
		return "Pair"
	case *List:
		return "List"
	case *Set:
		return "Set"
	case *Map:
		return "Map"
	case *Array:
		return "Array"
	case *Struct:
		return "Struct"
	case *Enum:
		return "Enum"
	case *TaggedEnum:
		return "TaggedEnum"
	case *String:
		return "String"
	case *ContractName:
		return "ContractName"
	case *ReceiveName:
		return "ReceiveName"
	case *ULeb128:
		return "ULeb128"
	case *ILeb128:
		return "ILeb128"
	case *ByteList:
		return "ByteList"
	case *ByteArray:
		return "ByteArray"
	default:
		panic(fmt.Sprintf("unreachable: unknown schema type %T", t))
	}
}
