// Package wasmtest assembles small WebAssembly modules for tests: empty
// function exports, an optional exported memory and custom sections.
package wasmtest

import "github.com/wippyai/contractgen/internal/binary"

const (
	magic   uint32 = 0x6D736100
	version uint32 = 0x01

	sectionCustom   byte = 0
	sectionType     byte = 1
	sectionFunction byte = 3
	sectionMemory   byte = 5
	sectionExport   byte = 7
	sectionCode     byte = 10

	kindFunc   byte = 0
	kindMemory byte = 2

	funcTypeByte byte = 0x60
	opEnd        byte = 0x0b
)

type customSection struct {
	name string
	data []byte
}

// Builder collects exports and custom sections.
type Builder struct {
	funcs    []string
	memory   string
	customs  []customSection
	trailing []customSection
}

// New returns an empty builder.
func New() *Builder {
	return &Builder{}
}

// Func adds an exported function with no parameters, results or body.
func (b *Builder) Func(names ...string) *Builder {
	b.funcs = append(b.funcs, names...)
	return b
}

// Memory adds an exported one-page memory.
func (b *Builder) Memory(name string) *Builder {
	b.memory = name
	return b
}

// Custom adds a custom section placed before the type section.
func (b *Builder) Custom(name string, data []byte) *Builder {
	b.customs = append(b.customs, customSection{name: name, data: data})
	return b
}

// TrailingCustom adds a custom section placed after the code section.
func (b *Builder) TrailingCustom(name string, data []byte) *Builder {
	b.trailing = append(b.trailing, customSection{name: name, data: data})
	return b
}

// Build encodes the module.
func (b *Builder) Build() []byte {
	w := binary.NewWriter()
	w.WriteU32LE(magic)
	w.WriteU32LE(version)

	for _, cs := range b.customs {
		writeCustom(w, cs)
	}

	if len(b.funcs) > 0 {
		sec := binary.NewWriter()
		sec.WriteU32(1)
		sec.Byte(funcTypeByte)
		sec.WriteU32(0)
		sec.WriteU32(0)
		writeSection(w, sectionType, sec.Bytes())

		sec = binary.NewWriter()
		sec.WriteU32(uint32(len(b.funcs)))
		for range b.funcs {
			sec.WriteU32(0)
		}
		writeSection(w, sectionFunction, sec.Bytes())
	}

	if b.memory != "" {
		sec := binary.NewWriter()
		sec.WriteU32(1)
		sec.Byte(0x00)
		sec.WriteU32(1)
		writeSection(w, sectionMemory, sec.Bytes())
	}

	exports := len(b.funcs)
	if b.memory != "" {
		exports++
	}
	if exports > 0 {
		sec := binary.NewWriter()
		sec.WriteU32(uint32(exports))
		for i, name := range b.funcs {
			sec.WriteName(name)
			sec.Byte(kindFunc)
			sec.WriteU32(uint32(i))
		}
		if b.memory != "" {
			sec.WriteName(b.memory)
			sec.Byte(kindMemory)
			sec.WriteU32(0)
		}
		writeSection(w, sectionExport, sec.Bytes())
	}

	if len(b.funcs) > 0 {
		sec := binary.NewWriter()
		sec.WriteU32(uint32(len(b.funcs)))
		for range b.funcs {
			// body size, no locals, end
			sec.WriteU32(2)
			sec.WriteU32(0)
			sec.Byte(opEnd)
		}
		writeSection(w, sectionCode, sec.Bytes())
	}

	for _, cs := range b.trailing {
		writeCustom(w, cs)
	}
	return w.Bytes()
}

// Versioned wraps a module in the on-chain version and length prefix.
func Versioned(moduleVersion uint32, module []byte) []byte {
	w := binary.NewWriter()
	w.WriteU32BE(moduleVersion)
	w.WriteU32BE(uint32(len(module)))
	w.WriteBytes(module)
	return w.Bytes()
}

func writeCustom(w *binary.Writer, cs customSection) {
	sec := binary.NewWriter()
	sec.WriteName(cs.name)
	sec.WriteBytes(cs.data)
	writeSection(w, sectionCustom, sec.Bytes())
}

func writeSection(w *binary.Writer, id byte, data []byte) {
	w.Byte(id)
	w.WriteU32(uint32(len(data)))
	w.WriteBytes(data)
}
