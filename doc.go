// Package contractgen generates typed TypeScript clients for Concordium
// smart contract modules.
//
// A smart contract module is a WebAssembly binary prefixed with its module
// version. Its function exports name the contracts and entrypoints it
// provides, and an optional embedded schema describes their parameters,
// return values, errors and events. For every contract the generator emits
// a client module with a native TypeScript type per schema, the JSON type
// the SDK serializer expects, and conversion code between the two.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	contractgen/         Root package: generate clients from a module source or file
//	├── wasm/            Module source, module reference, export walk, embedded schema
//	├── schema/          Schema type model, binary schema codec, JSON view
//	├── transcoder/      Schema type compiler: native type, JSON type, converters
//	├── naming/          Temporaries, identifiers, property access, PascalCase
//	├── ts/              TypeScript declaration model and printer
//	├── clientgen/       Module and contract client assembly
//	├── emit/            TypeScript, JavaScript and declaration output
//	├── config/          ccdgen.yaml project configuration
//	├── metrics/         Prometheus generation metrics
//	├── errors/          Structured error types
//	└── cmd/ccdgen/      Command line interface
//
// # Quick Start
//
// Generate clients for a module file:
//
//	res, err := contractgen.GenerateContractClientsFromFile(ctx,
//	    "dist/token.wasm.v1", "src/generated", contractgen.Options{
//	        Output: emit.TypeScript,
//	    })
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Files) // [src/generated/token.ts src/generated/token_token.ts]
//
// # Generated Files
//
// The module file <name>.ts exports the module reference and a module
// client with one instantiation function per contract. Each contract file
// <name>_<contract>.ts exports a contract client with a send and a dry-run
// function per entrypoint. When the module embeds a schema, the parameter
// of every function is typed and converted to the serializer's JSON form;
// the return values, errors and events are parsed back into native types.
// Without a schema the functions take raw SDK parameters.
//
// # Output Types
//
//   - TypeScript: the .ts sources
//   - JavaScript: .js produced with esbuild
//   - TypedJavaScript: .js plus .d.ts declarations
//   - Everything: all of the above (default)
package contractgen
