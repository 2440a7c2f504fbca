package wasm

// WebAssembly binary format magic number and version.
const (
	// Magic is the WebAssembly binary magic number ("\0asm" in little-endian).
	Magic uint32 = 0x6D736100

	// Version is the supported WebAssembly binary format version.
	Version uint32 = 0x01
)

// Section IDs define the binary identifiers for each module section.
const (
	SectionCustom    byte = 0
	SectionType      byte = 1
	SectionImport    byte = 2
	SectionFunction  byte = 3
	SectionTable     byte = 4
	SectionMemory    byte = 5
	SectionGlobal    byte = 6
	SectionExport    byte = 7
	SectionStart     byte = 8
	SectionElement   byte = 9
	SectionCode      byte = 10
	SectionData      byte = 11
	SectionDataCount byte = 12
	SectionTag       byte = 13
)

// Export descriptor kinds.
const (
	KindFunc   byte = 0
	KindTable  byte = 1
	KindMemory byte = 2
	KindGlobal byte = 3
	KindTag    byte = 4
)

// Module source versions accepted on chain.
const (
	ModuleVersion0 uint32 = 0
	ModuleVersion1 uint32 = 1
)

// Custom section names carrying embedded contract schemas, in lookup order.
const (
	SchemaSectionVersioned = "concordium-schema"
	SchemaSectionV1        = "concordium-schema-v1"
	SchemaSectionV2        = "concordium-schema-v2"
)

// maxContractNameLength bounds init and receive export names.
const maxContractNameLength = 100
