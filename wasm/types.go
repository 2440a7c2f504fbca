package wasm

// Module is the part of a WebAssembly module needed to describe a contract
// module: its exports and custom sections, both in binary order.
type Module struct {
	Exports        []Export
	CustomSections []CustomSection
}

// Export is one entry of the export section.
type Export struct {
	Name string
	Kind byte
	Idx  uint32
}

// CustomSection is a named custom section with its raw payload.
type CustomSection struct {
	Name string
	Data []byte
}

// FunctionExports returns the function exports in declaration order.
func (m *Module) FunctionExports() []Export {
	var out []Export
	for _, e := range m.Exports {
		if e.Kind == KindFunc {
			out = append(out, e)
		}
	}
	return out
}

// CustomSectionsNamed returns the payloads of every custom section called name.
func (m *Module) CustomSectionsNamed(name string) [][]byte {
	var out [][]byte
	for _, cs := range m.CustomSections {
		if cs.Name == name {
			out = append(out, cs.Data)
		}
	}
	return out
}
