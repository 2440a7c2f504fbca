package schema

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// typeView is the JSON shape of a schema type.
type typeView struct {
	Type        string        `json:"type"`
	SizeLength  string        `json:"sizeLength,omitempty"`
	Size        *uint32       `json:"size,omitempty"`
	MaxByteSize *uint32       `json:"maxByteSize,omitempty"`
	First       *typeView     `json:"first,omitempty"`
	Second      *typeView     `json:"second,omitempty"`
	Item        *typeView     `json:"item,omitempty"`
	Key         *typeView     `json:"key,omitempty"`
	Value       *typeView     `json:"value,omitempty"`
	Fields      *fieldsView   `json:"fields,omitempty"`
	Variants    []variantView `json:"variants,omitempty"`
}

type fieldsView struct {
	Type   string      `json:"type"`
	Named  []namedView `json:"named,omitempty"`
	Fields []*typeView `json:"unnamed,omitempty"`
}

type namedView struct {
	Name  string    `json:"name"`
	Field *typeView `json:"field"`
}

type variantView struct {
	Tag    *uint8      `json:"tag,omitempty"`
	Name   string      `json:"name"`
	Fields *fieldsView `json:"fields"`
}

func viewOf(t Type) *typeView {
	if t == nil {
		return nil
	}
	v := &typeView{Type: Name(t)}
	switch t := t.(type) {
	case *Scalar:
	case *Pair:
		v.First, v.Second = viewOf(t.First), viewOf(t.Second)
	case *List:
		v.SizeLength, v.Item = t.SizeLength.String(), viewOf(t.Item)
	case *Set:
		v.SizeLength, v.Item = t.SizeLength.String(), viewOf(t.Item)
	case *Map:
		v.SizeLength = t.SizeLength.String()
		v.Key, v.Value = viewOf(t.Key), viewOf(t.Value)
	case *Array:
		size := t.Size
		v.Size, v.Item = &size, viewOf(t.Item)
	case *Struct:
		v.Fields = fieldsViewOf(t.Fields)
	case *Enum:
		v.Variants = make([]variantView, 0, len(t.Variants))
		for _, variant := range t.Variants {
			v.Variants = append(v.Variants, variantView{Name: variant.Name, Fields: fieldsViewOf(variant.Fields)})
		}
	case *TaggedEnum:
		v.Variants = make([]variantView, 0, len(t.Variants))
		for _, variant := range t.Variants {
			tag := variant.Tag
			v.Variants = append(v.Variants, variantView{Tag: &tag, Name: variant.Name, Fields: fieldsViewOf(variant.Fields)})
		}
	case *String:
		v.SizeLength = t.SizeLength.String()
	case *ContractName:
		v.SizeLength = t.SizeLength.String()
	case *ReceiveName:
		v.SizeLength = t.SizeLength.String()
	case *ByteList:
		v.SizeLength = t.SizeLength.String()
	case *ULeb128:
		n := t.MaxByteSize
		v.MaxByteSize = &n
	case *ILeb128:
		n := t.MaxByteSize
		v.MaxByteSize = &n
	case *ByteArray:
		size := t.Size
		v.Size = &size
	default:
		panic(fmt.Sprintf("unreachable: unknown schema type %T", t))
	}
	return v
}

func fieldsViewOf(f Fields) *fieldsView {
	switch f := f.(type) {
	case NamedFields:
		v := &fieldsView{Type: "Named", Named: make([]namedView, 0, len(f))}
		for _, nf := range f {
			v.Named = append(v.Named, namedView{Name: nf.Name, Field: viewOf(nf.Type)})
		}
		return v
	case UnnamedFields:
		v := &fieldsView{Type: "Unnamed", Fields: make([]*typeView, 0, len(f))}
		for _, t := range f {
			v.Fields = append(v.Fields, viewOf(t))
		}
		return v
	case NoFields, nil:
		return &fieldsView{Type: "None"}
	default:
		panic(fmt.Sprintf("unreachable: unknown fields %T", f))
	}
}

// MarshalType renders t as JSON.
func MarshalType(t Type) ([]byte, error) {
	return json.Marshal(viewOf(t))
}

type functionView struct {
	Parameter   *typeView `json:"parameter,omitempty"`
	ReturnValue *typeView `json:"returnValue,omitempty"`
	Error       *typeView `json:"error,omitempty"`
}

type entrypointView struct {
	Name string `json:"name"`
	functionView
}

type contractView struct {
	Name    string           `json:"name"`
	State   *typeView        `json:"state,omitempty"`
	Init    *functionView    `json:"init,omitempty"`
	Receive []entrypointView `json:"receive"`
	Event   *typeView        `json:"event,omitempty"`
}

type moduleView struct {
	Version   uint8          `json:"version"`
	Contracts []contractView `json:"contracts"`
}

func functionViewOf(fn *Function) functionView {
	if fn == nil {
		return functionView{}
	}
	return functionView{
		Parameter:   viewOf(fn.Parameter),
		ReturnValue: viewOf(fn.ReturnValue),
		Error:       viewOf(fn.Error),
	}
}

// MarshalJSON renders the module schema with contracts and entrypoints in
// declaration order.
func (m *Module) MarshalJSON() ([]byte, error) {
	view := moduleView{Version: m.Version, Contracts: make([]contractView, 0, len(m.Contracts))}
	for _, c := range m.Contracts {
		cv := contractView{
			Name:    c.Name,
			State:   viewOf(c.State),
			Event:   viewOf(c.Event),
			Receive: make([]entrypointView, 0, len(c.Receive)),
		}
		if c.Init != nil {
			fv := functionViewOf(c.Init)
			cv.Init = &fv
		}
		for _, ep := range c.Receive {
			cv.Receive = append(cv.Receive, entrypointView{Name: ep.Name, functionView: functionViewOf(ep.Function)})
		}
		view.Contracts = append(view.Contracts, cv)
	}
	return json.Marshal(view)
}
