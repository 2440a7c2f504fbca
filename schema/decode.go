package schema

import (
	"errors"
	"fmt"
	"io"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/internal/binary"
)

const maxDepth = 256

var errTooDeep = errors.New("schema type nesting too deep")

type decoder struct {
	r     *binary.Reader
	path  []string
	depth int
}

func newDecoder(data []byte) *decoder {
	return &decoder{r: binary.FromBytes(data)}
}

func (d *decoder) push(seg string) { d.path = append(d.path, seg) }
func (d *decoder) pop()            { d.path = d.path[:len(d.path)-1] }

func (d *decoder) fail(what string, err error) error {
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return cgerrors.New(cgerrors.PhaseParse, cgerrors.KindInvalidData).
		Path(append([]string(nil), d.path...)...).
		Detail("read %s at offset %d", what, d.r.Position()).
		Cause(err).
		Build()
}

func (d *decoder) u8(what string) (uint8, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, d.fail(what, err)
	}
	return b, nil
}

func (d *decoder) u32(what string) (uint32, error) {
	v, err := d.r.ReadU32LE()
	if err != nil {
		return 0, d.fail(what, err)
	}
	return v, nil
}

func (d *decoder) str(what string) (string, error) {
	s, err := d.r.ReadStringLE()
	if err != nil {
		return "", d.fail(what, err)
	}
	return s, nil
}

// count reads a U32 element count and caps it by the unread input, since
// every element occupies at least one byte.
func (d *decoder) count(what string) (int, error) {
	n, err := d.u32(what)
	if err != nil {
		return 0, err
	}
	if rem := d.r.Len(); int64(n) > int64(rem) {
		return 0, d.fail(what, fmt.Errorf("count %d exceeds remaining %d bytes: %w", n, rem, io.ErrUnexpectedEOF))
	}
	return int(n), nil
}

func (d *decoder) sizeLength() (SizeLength, error) {
	tag, err := d.u8("size length")
	if err != nil {
		return 0, err
	}
	if tag > uint8(SizeU64) {
		return 0, cgerrors.InvalidTag(cgerrors.PhaseParse, append([]string(nil), d.path...), "size length", tag)
	}
	return SizeLength(tag), nil
}

func (d *decoder) typ() (Type, error) {
	d.depth++
	defer func() { d.depth-- }()
	if d.depth > maxDepth {
		return nil, d.fail("schema type", errTooDeep)
	}

	tag, err := d.u8("schema type tag")
	if err != nil {
		return nil, err
	}

	switch {
	case tag <= 14:
		return NewScalar(ScalarKind(tag)), nil
	case tag == 23:
		return NewScalar(U128), nil
	case tag == 24:
		return NewScalar(I128), nil
	}

	switch tag {
	case 15:
		first, err := d.typ()
		if err != nil {
			return nil, err
		}
		second, err := d.typ()
		if err != nil {
			return nil, err
		}
		return &Pair{First: first, Second: second}, nil
	case 16, 17:
		sl, err := d.sizeLength()
		if err != nil {
			return nil, err
		}
		item, err := d.typ()
		if err != nil {
			return nil, err
		}
		if tag == 16 {
			return &List{SizeLength: sl, Item: item}, nil
		}
		return &Set{SizeLength: sl, Item: item}, nil
	case 18:
		sl, err := d.sizeLength()
		if err != nil {
			return nil, err
		}
		key, err := d.typ()
		if err != nil {
			return nil, err
		}
		value, err := d.typ()
		if err != nil {
			return nil, err
		}
		return &Map{SizeLength: sl, Key: key, Value: value}, nil
	case 19:
		size, err := d.u32("array size")
		if err != nil {
			return nil, err
		}
		item, err := d.typ()
		if err != nil {
			return nil, err
		}
		return &Array{Size: size, Item: item}, nil
	case 20:
		fields, err := d.fields()
		if err != nil {
			return nil, err
		}
		return &Struct{Fields: fields}, nil
	case 21:
		n, err := d.count("enum variant count")
		if err != nil {
			return nil, err
		}
		variants := make([]Variant, 0, n)
		for i := 0; i < n; i++ {
			v, err := d.variant()
			if err != nil {
				return nil, err
			}
			variants = append(variants, v)
		}
		return &Enum{Variants: variants}, nil
	case 22, 25, 26, 29:
		sl, err := d.sizeLength()
		if err != nil {
			return nil, err
		}
		switch tag {
		case 22:
			return &String{SizeLength: sl}, nil
		case 25:
			return &ContractName{SizeLength: sl}, nil
		case 26:
			return &ReceiveName{SizeLength: sl}, nil
		default:
			return &ByteList{SizeLength: sl}, nil
		}
	case 27, 28:
		size, err := d.u32("max byte size")
		if err != nil {
			return nil, err
		}
		if tag == 27 {
			return &ULeb128{MaxByteSize: size}, nil
		}
		return &ILeb128{MaxByteSize: size}, nil
	case 30:
		size, err := d.u32("byte array size")
		if err != nil {
			return nil, err
		}
		return &ByteArray{Size: size}, nil
	case 31:
		n, err := d.count("tagged enum variant count")
		if err != nil {
			return nil, err
		}
		variants := make([]TaggedVariant, 0, n)
		for i := 0; i < n; i++ {
			t, err := d.u8("variant tag")
			if err != nil {
				return nil, err
			}
			v, err := d.variant()
			if err != nil {
				return nil, err
			}
			variants = append(variants, TaggedVariant{Tag: t, Variant: v})
		}
		return &TaggedEnum{Variants: variants}, nil
	}

	return nil, cgerrors.InvalidTag(cgerrors.PhaseParse, append([]string(nil), d.path...), "schema type", tag)
}

func (d *decoder) variant() (Variant, error) {
	name, err := d.str("variant name")
	if err != nil {
		return Variant{}, err
	}
	d.push(name)
	defer d.pop()
	fields, err := d.fields()
	if err != nil {
		return Variant{}, err
	}
	return Variant{Name: name, Fields: fields}, nil
}

func (d *decoder) fields() (Fields, error) {
	tag, err := d.u8("fields tag")
	if err != nil {
		return nil, err
	}
	switch tag {
	case 0:
		n, err := d.count("named field count")
		if err != nil {
			return nil, err
		}
		fields := make(NamedFields, 0, n)
		for i := 0; i < n; i++ {
			name, err := d.str("field name")
			if err != nil {
				return nil, err
			}
			d.push(name)
			t, err := d.typ()
			d.pop()
			if err != nil {
				return nil, err
			}
			fields = append(fields, NamedField{Name: name, Type: t})
		}
		return fields, nil
	case 1:
		n, err := d.count("unnamed field count")
		if err != nil {
			return nil, err
		}
		fields := make(UnnamedFields, 0, n)
		for i := 0; i < n; i++ {
			d.push(fmt.Sprint(i))
			t, err := d.typ()
			d.pop()
			if err != nil {
				return nil, err
			}
			fields = append(fields, t)
		}
		return fields, nil
	case 2:
		return NoFields{}, nil
	}
	return nil, cgerrors.InvalidTag(cgerrors.PhaseParse, append([]string(nil), d.path...), "fields", tag)
}

// DeserializeType decodes a single schema type. Trailing bytes are rejected.
func DeserializeType(data []byte) (Type, error) {
	d := newDecoder(data)
	t, err := d.typ()
	if err != nil {
		return nil, err
	}
	if rem := d.r.Len(); rem > 0 {
		return nil, cgerrors.InvalidData(cgerrors.PhaseParse, nil,
			fmt.Sprintf("%d trailing bytes after schema type", rem))
	}
	return t, nil
}
