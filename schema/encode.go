package schema

import (
	"fmt"

	"github.com/wippyai/contractgen/internal/binary"
)

// SerializeType encodes t in the binary schema format.
func SerializeType(t Type) []byte {
	w := binary.NewWriter()
	writeType(w, t)
	return w.Bytes()
}

func scalarTag(k ScalarKind) byte {
	switch k {
	case U128:
		return 23
	case I128:
		return 24
	}
	return byte(k)
}

func writeType(w *binary.Writer, t Type) {
	switch t := t.(type) {
	case *Scalar:
		w.Byte(scalarTag(t.Kind))
	case *Pair:
		w.Byte(15)
		writeType(w, t.First)
		writeType(w, t.Second)
	case *List:
		w.Byte(16)
		w.Byte(byte(t.SizeLength))
		writeType(w, t.Item)
	case *Set:
		w.Byte(17)
		w.Byte(byte(t.SizeLength))
		writeType(w, t.Item)
	case *Map:
		w.Byte(18)
		w.Byte(byte(t.SizeLength))
		writeType(w, t.Key)
		writeType(w, t.Value)
	case *Array:
		w.Byte(19)
		w.WriteU32LE(t.Size)
		writeType(w, t.Item)
	case *Struct:
		w.Byte(20)
		writeFields(w, t.Fields)
	case *Enum:
		w.Byte(21)
		w.WriteU32LE(uint32(len(t.Variants)))
		for _, v := range t.Variants {
			writeVariant(w, v)
		}
	case *String:
		w.Byte(22)
		w.Byte(byte(t.SizeLength))
	case *ContractName:
		w.Byte(25)
		w.Byte(byte(t.SizeLength))
	case *ReceiveName:
		w.Byte(26)
		w.Byte(byte(t.SizeLength))
	case *ULeb128:
		w.Byte(27)
		w.WriteU32LE(t.MaxByteSize)
	case *ILeb128:
		w.Byte(28)
		w.WriteU32LE(t.MaxByteSize)
	case *ByteList:
		w.Byte(29)
		w.Byte(byte(t.SizeLength))
	case *ByteArray:
		w.Byte(30)
		w.WriteU32LE(t.Size)
	case *TaggedEnum:
		w.Byte(31)
		w.WriteU32LE(uint32(len(t.Variants)))
		for _, v := range t.Variants {
			w.Byte(v.Tag)
			writeVariant(w, v.Variant)
		}
	default:
		panic(fmt.Sprintf("unreachable: unknown schema type %T", t))
	}
}

func writeVariant(w *binary.Writer, v Variant) {
	w.WriteStringLE(v.Name)
	writeFields(w, v.Fields)
}

func writeFields(w *binary.Writer, f Fields) {
	switch f := f.(type) {
	case NamedFields:
		w.Byte(0)
		w.WriteU32LE(uint32(len(f)))
		for _, nf := range f {
			w.WriteStringLE(nf.Name)
			writeType(w, nf.Type)
		}
	case UnnamedFields:
		w.Byte(1)
		w.WriteU32LE(uint32(len(f)))
		for _, t := range f {
			writeType(w, t)
		}
	case NoFields, nil:
		w.Byte(2)
	default:
		panic(fmt.Sprintf("unreachable: unknown fields %T", f))
	}
}
