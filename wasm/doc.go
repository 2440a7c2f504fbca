// Package wasm reads Concordium smart contract modules.
//
// A module on chain is a versioned module source: a big-endian u32 version,
// a big-endian u32 length and the WebAssembly binary. This package decodes
// that envelope, computes the module reference, walks the WebAssembly export
// and custom sections, and derives the two inputs client generation needs:
//
//   - the module interface, built from function exports named
//     init_<contract> and <contract>.<entrypoint>
//   - the embedded schema, taken from the concordium-schema custom sections
//
// # Parsing
//
//	data, _ := os.ReadFile("token.wasm.v1")
//	src, err := wasm.VersionedModuleSourceFromBuffer(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	iface, err := wasm.ParseModuleInterface(ctx, src, true)
//
// The validate flag compiles the module with wazero before walking exports,
// which rejects malformed code and type sections the section walker skips.
//
// # Schemas
//
//	raw, err := wasm.GetEmbeddedModuleSchema(src)
//	if raw != nil {
//	    mod, err := schema.ParseRawModuleSchema(*raw)
//	}
package wasm
