// Package transcoder compiles contract schema types into TypeScript type
// mappings.
//
// For every schema type the compiler derives the native type application
// code works with, the JSON type the SDK schema serializer expects, and code
// converting between the two:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│ native value ←→ [NativeToJSON / JSONToNative] ←→ JSON value │
//	└─────────────────────────────────────────────────────────────┘
//
// # Type Mapping
//
//	Schema              Native               JSON
//	──────────────────────────────────────────────────────────
//	Unit                "Unit"               []
//	Bool                boolean              boolean
//	U8..U32, I8..I32    number               number
//	U64, I64            number | bigint      bigint
//	U128, I128, LEB128  number | bigint      string
//	Amount, addresses   SDK.X.Type           SDK.X.SchemaValue
//	String, bytes       string               string
//	Pair                [A, B]               [Aj, Bj]
//	List                Array<T>             Array<Tj>
//	Set                 Set<T>               Array<Tj>
//	Map                 Map<K, V>            [Kj, Vj][]
//	Enum                {type, content?}     {Name: fields}
//
// # Converters
//
// A converter takes the expression holding the input value and returns Code:
// statements to emit, in order, followed by the expression holding the
// result. Every intermediate value is bound to a temporary drawn from the
// shared naming.Allocator, so generated names never collide within one
// generation run.
//
// A converter that returns its input unchanged with no statements is a
// no-op. Collection conversions whose element converter is a no-op are elided
// entirely.
//
// # Usage
//
//	c := transcoder.NewCompiler(naming.NewAllocator())
//	m := c.Compile(paramType)
//	code := m.NativeToJSON("parameter")
//	// emit code.Statements, then use code.Ref
package transcoder
