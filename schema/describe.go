package schema

import (
	"fmt"
	"strings"
)

// Describe renders t in a compact Rust-like notation, for logs and docs.
func Describe(t Type) string {
	if t == nil {
		return "-"
	}
	var b strings.Builder
	describe(&b, t)
	return b.String()
}

func describe(b *strings.Builder, t Type) {
	switch t := t.(type) {
	case *Scalar:
		if t.Kind == Unit {
			b.WriteString("()")
			return
		}
		b.WriteString(t.Kind.String())
	case *Pair:
		b.WriteByte('(')
		describe(b, t.First)
		b.WriteString(", ")
		describe(b, t.Second)
		b.WriteByte(')')
	case *List:
		b.WriteString("Vec<")
		describe(b, t.Item)
		b.WriteByte('>')
	case *Set:
		b.WriteString("Set<")
		describe(b, t.Item)
		b.WriteByte('>')
	case *Map:
		b.WriteString("Map<")
		describe(b, t.Key)
		b.WriteString(", ")
		describe(b, t.Value)
		b.WriteByte('>')
	case *Array:
		b.WriteByte('[')
		describe(b, t.Item)
		fmt.Fprintf(b, "; %d]", t.Size)
	case *Struct:
		b.WriteString("struct")
		describeFields(b, t.Fields)
	case *Enum:
		b.WriteString("enum { ")
		for i, v := range t.Variants {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(v.Name)
			describeFields(b, v.Fields)
		}
		b.WriteString(" }")
	case *TaggedEnum:
		b.WriteString("enum { ")
		for i, v := range t.Variants {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%d:%s", v.Tag, v.Name)
			describeFields(b, v.Fields)
		}
		b.WriteString(" }")
	case *String:
		b.WriteString("String")
	case *ContractName:
		b.WriteString("ContractName")
	case *ReceiveName:
		b.WriteString("ReceiveName")
	case *ULeb128:
		fmt.Fprintf(b, "ULeb128(%d)", t.MaxByteSize)
	case *ILeb128:
		fmt.Fprintf(b, "ILeb128(%d)", t.MaxByteSize)
	case *ByteList:
		b.WriteString("Bytes")
	case *ByteArray:
		fmt.Fprintf(b, "[u8; %d]", t.Size)
	default:
		panic(fmt.Sprintf("unreachable: unknown schema type %T", t))
	}
}

func describeFields(b *strings.Builder, f Fields) {
	switch f := f.(type) {
	case NamedFields:
		b.WriteString(" { ")
		for i, nf := range f {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(nf.Name)
			b.WriteString(": ")
			describe(b, nf.Type)
		}
		b.WriteString(" }")
	case UnnamedFields:
		b.WriteByte('(')
		for i, t := range f {
			if i > 0 {
				b.WriteString(", ")
			}
			describe(b, t)
		}
		b.WriteByte(')')
	}
}
