package transcoder

import (
	"fmt"
	"strings"

	"github.com/wippyai/contractgen/naming"
	"github.com/wippyai/contractgen/schema"
)

// maxTupleSize bounds the length of fixed-size arrays rendered as tuple
// types. Larger arrays use Array<T>.
const maxTupleSize = 64

// domainTypes maps schema scalars with SDK representations to the SDK
// namespace and temporary category used for them.
var domainTypes = map[schema.ScalarKind]struct{ namespace, category string }{
	schema.Amount:          {"CcdAmount", "amount"},
	schema.AccountAddress:  {"AccountAddress", "accountAddress"},
	schema.ContractAddress: {"ContractAddress", "contractAddress"},
	schema.Timestamp:       {"Timestamp", "timestamp"},
	schema.Duration:        {"Duration", "duration"},
}

// Compiler derives TypeMappings from schema types. All converters produced
// by one Compiler draw temporaries from the same allocator.
type Compiler struct {
	alloc *naming.Allocator
}

// NewCompiler creates a compiler allocating temporaries from alloc.
func NewCompiler(alloc *naming.Allocator) *Compiler {
	if alloc == nil {
		alloc = naming.NewAllocator()
	}
	return &Compiler{alloc: alloc}
}

// Allocator returns the allocator shared by the compiler's converters.
func (c *Compiler) Allocator() *naming.Allocator {
	return c.alloc
}

// Compile returns the mapping for t. It is defined for every schema type.
func (c *Compiler) Compile(t schema.Type) TypeMapping {
	switch t := t.(type) {
	case *schema.Scalar:
		return c.compileScalar(t.Kind)
	case *schema.String, *schema.ByteList, *schema.ByteArray:
		return TypeMapping{
			NativeType:   "string",
			JSONType:     "string",
			NativeToJSON: identity,
			JSONToNative: identity,
		}
	case *schema.ContractName:
		return c.compileDomain("ContractName", "contractName")
	case *schema.ReceiveName:
		return c.compileDomain("ReceiveName", "receiveName")
	case *schema.ULeb128, *schema.ILeb128:
		return c.compileWideInt()
	case *schema.Pair:
		return c.compileTuple([]schema.Type{t.First, t.Second}, "pair")
	case *schema.List:
		return c.compileList(t.Item)
	case *schema.Array:
		return c.compileArray(t.Item, t.Size)
	case *schema.Set:
		return c.compileSet(t.Item)
	case *schema.Map:
		return c.compileMap(t.Key, t.Value)
	case *schema.Struct:
		return c.compileFields(t.Fields)
	case *schema.Enum:
		return c.compileEnum(t.Variants)
	case *schema.TaggedEnum:
		variants := make([]schema.Variant, len(t.Variants))
		for i, v := range t.Variants {
			variants[i] = v.Variant
		}
		return c.compileEnum(variants)
	default:
		panic(fmt.Sprintf("unreachable: unknown schema type %T", t))
	}
}

func (c *Compiler) compileScalar(kind schema.ScalarKind) TypeMapping {
	switch kind {
	case schema.Unit:
		return TypeMapping{
			NativeType:   `"Unit"`,
			JSONType:     "[]",
			NativeToJSON: constant("[]"),
			JSONToNative: constant(`'Unit'`),
		}
	case schema.Bool:
		return TypeMapping{
			NativeType:   "boolean",
			JSONType:     "boolean",
			NativeToJSON: identity,
			JSONToNative: identity,
		}
	case schema.U8, schema.U16, schema.U32, schema.I8, schema.I16, schema.I32:
		return TypeMapping{
			NativeType:   "number",
			JSONType:     "number",
			NativeToJSON: identity,
			JSONToNative: identity,
		}
	case schema.U64, schema.I64:
		return TypeMapping{
			NativeType: "number | bigint",
			JSONType:   "bigint",
			NativeToJSON: func(ref string) Code {
				id := c.alloc.Next("number")
				return Code{
					Statements: []string{fmt.Sprintf("const %s = BigInt(%s);", id, ref)},
					Ref:        id,
				}
			},
			JSONToNative: identity,
		}
	case schema.U128, schema.I128:
		return c.compileWideInt()
	}
	if d, ok := domainTypes[kind]; ok {
		return c.compileDomain(d.namespace, d.category)
	}
	panic(fmt.Sprintf("unreachable: unknown scalar kind %v", kind))
}

// compileWideInt maps integers that may exceed 2^53 to decimal strings.
func (c *Compiler) compileWideInt() TypeMapping {
	return TypeMapping{
		NativeType: "number | bigint",
		JSONType:   "string",
		NativeToJSON: func(ref string) Code {
			id := c.alloc.Next("number")
			return Code{
				Statements: []string{fmt.Sprintf("const %s = BigInt(%s).toString();", id, ref)},
				Ref:        id,
			}
		},
		JSONToNative: func(ref string) Code {
			id := c.alloc.Next("number")
			return Code{
				Statements: []string{fmt.Sprintf("const %s = BigInt(%s);", id, ref)},
				Ref:        id,
			}
		},
	}
}

func (c *Compiler) compileDomain(namespace, category string) TypeMapping {
	call := func(fn string) Converter {
		return func(ref string) Code {
			id := c.alloc.Next(category)
			return Code{
				Statements: []string{fmt.Sprintf("const %s = SDK.%s.%s(%s);", id, namespace, fn, ref)},
				Ref:        id,
			}
		}
	}
	return TypeMapping{
		NativeType:   "SDK." + namespace + ".Type",
		JSONType:     "SDK." + namespace + ".SchemaValue",
		NativeToJSON: call("toSchemaValue"),
		JSONToNative: call("fromSchemaValue"),
	}
}

// compileTuple handles pairs and unnamed field lists with more than one field.
func (c *Compiler) compileTuple(items []schema.Type, category string) TypeMapping {
	mappings := make([]TypeMapping, len(items))
	natives := make([]string, len(items))
	jsons := make([]string, len(items))
	for i, item := range items {
		mappings[i] = c.Compile(item)
		natives[i] = mappings[i].NativeType
		jsons[i] = mappings[i].JSONType
	}
	nativeType := "[" + strings.Join(natives, ", ") + "]"
	jsonType := "[" + strings.Join(jsons, ", ") + "]"

	convert := func(resultType string, pick func(TypeMapping) Converter) Converter {
		return func(ref string) Code {
			var stmts []string
			refs := make([]string, len(mappings))
			noop := true
			for i, m := range mappings {
				elem := fmt.Sprintf("%s[%d]", ref, i)
				code := pick(m)(elem)
				noop = noop && code.IsNoop(elem)
				stmts = append(stmts, code.Statements...)
				refs[i] = code.Ref
			}
			if noop {
				return Code{Ref: ref}
			}
			id := c.alloc.Next(category)
			stmts = append(stmts, fmt.Sprintf("const %s: %s = [%s];", id, resultType, strings.Join(refs, ", ")))
			return Code{Statements: stmts, Ref: id}
		}
	}

	return TypeMapping{
		NativeType:   nativeType,
		JSONType:     jsonType,
		NativeToJSON: convert(jsonType, func(m TypeMapping) Converter { return m.NativeToJSON }),
		JSONToNative: convert(nativeType, func(m TypeMapping) Converter { return m.JSONToNative }),
	}
}

// mapItems renders `<ref>.map((item) => { ... })`. ok is false when the item
// conversion is a no-op and the map can be elided.
func (c *Compiler) mapItems(ref string, conv Converter) (expr string, ok bool) {
	item := c.alloc.Next("item")
	code := conv(item)
	if code.IsNoop(item) {
		return ref, false
	}
	body := append(append([]string(nil), code.Statements...), "return "+code.Ref+";")
	return block(fmt.Sprintf("%s.map((%s) => {", ref, item), body, "})"), true
}

func (c *Compiler) compileList(item schema.Type) TypeMapping {
	m := c.Compile(item)
	convert := func(conv Converter) Converter {
		return func(ref string) Code {
			expr, ok := c.mapItems(ref, conv)
			if !ok {
				return Code{Ref: ref}
			}
			id := c.alloc.Next("list")
			return Code{Statements: []string{fmt.Sprintf("const %s = %s;", id, expr)}, Ref: id}
		}
	}
	return TypeMapping{
		NativeType:   "Array<" + m.NativeType + ">",
		JSONType:     "Array<" + m.JSONType + ">",
		NativeToJSON: convert(m.NativeToJSON),
		JSONToNative: convert(m.JSONToNative),
	}
}

func fixedType(elem string, size uint32) string {
	if size > maxTupleSize {
		return "Array<" + elem + ">"
	}
	elems := make([]string, size)
	for i := range elems {
		elems[i] = elem
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

func (c *Compiler) compileArray(item schema.Type, size uint32) TypeMapping {
	m := c.Compile(item)
	nativeType := fixedType(m.NativeType, size)
	jsonType := fixedType(m.JSONType, size)
	convert := func(conv Converter, resultType string) Converter {
		return func(ref string) Code {
			expr, ok := c.mapItems(ref, conv)
			if !ok {
				return Code{Ref: ref}
			}
			id := c.alloc.Next("array")
			return Code{Statements: []string{fmt.Sprintf("const %s = %s as %s;", id, expr, resultType)}, Ref: id}
		}
	}
	return TypeMapping{
		NativeType:   nativeType,
		JSONType:     jsonType,
		NativeToJSON: convert(m.NativeToJSON, jsonType),
		JSONToNative: convert(m.JSONToNative, nativeType),
	}
}

func (c *Compiler) compileSet(item schema.Type) TypeMapping {
	m := c.Compile(item)
	return TypeMapping{
		NativeType: "Set<" + m.NativeType + ">",
		JSONType:   "Array<" + m.JSONType + ">",
		NativeToJSON: func(ref string) Code {
			id := c.alloc.Next("set")
			expr, _ := c.mapItems("Array.from("+ref+".values())", m.NativeToJSON)
			return Code{Statements: []string{fmt.Sprintf("const %s = %s;", id, expr)}, Ref: id}
		},
		JSONToNative: func(ref string) Code {
			id := c.alloc.Next("set")
			expr, _ := c.mapItems(ref, m.JSONToNative)
			return Code{
				Statements: []string{fmt.Sprintf("const %s = new Set<%s>(%s);", id, m.NativeType, expr)},
				Ref:        id,
			}
		},
	}
}

func (c *Compiler) compileMap(key, value schema.Type) TypeMapping {
	k, v := c.Compile(key), c.Compile(value)
	jsonEntry := "[" + k.JSONType + ", " + v.JSONType + "]"
	nativeEntry := "[" + k.NativeType + ", " + v.NativeType + "]"

	// entries renders `<source>.map(([key, value]): <entry> => { ... })`, or
	// source itself when both conversions are no-ops.
	entries := func(source, entryType string, kc, vc Converter) string {
		keyID, valueID := c.alloc.Next("key"), c.alloc.Next("value")
		kCode, vCode := kc(keyID), vc(valueID)
		if kCode.IsNoop(keyID) && vCode.IsNoop(valueID) {
			return source
		}
		body := append(append([]string(nil), kCode.Statements...), vCode.Statements...)
		body = append(body, fmt.Sprintf("return [%s, %s];", kCode.Ref, vCode.Ref))
		return block(fmt.Sprintf("%s.map(([%s, %s]): %s => {", source, keyID, valueID, entryType), body, "})")
	}

	return TypeMapping{
		NativeType: "Map<" + k.NativeType + ", " + v.NativeType + ">",
		JSONType:   jsonEntry + "[]",
		NativeToJSON: func(ref string) Code {
			id := c.alloc.Next("map")
			expr := entries("Array.from("+ref+".entries())", jsonEntry, k.NativeToJSON, v.NativeToJSON)
			return Code{Statements: []string{fmt.Sprintf("const %s = %s;", id, expr)}, Ref: id}
		},
		JSONToNative: func(ref string) Code {
			id := c.alloc.Next("map")
			expr := entries(ref, nativeEntry, k.JSONToNative, v.JSONToNative)
			return Code{
				Statements: []string{fmt.Sprintf("const %s = new Map<%s, %s>(%s);", id, k.NativeType, v.NativeType, expr)},
				Ref:        id,
			}
		},
	}
}

func (c *Compiler) compileFields(fields schema.Fields) TypeMapping {
	switch f := fields.(type) {
	case schema.NamedFields:
		return c.compileNamed(f)
	case schema.UnnamedFields:
		if len(f) == 1 {
			return c.compileSingle(f[0])
		}
		return c.compileTuple(f, "unnamed")
	case schema.NoFields, nil:
		return TypeMapping{
			NativeType:   `"no-fields"`,
			JSONType:     "[]",
			NativeToJSON: constant("[]"),
			JSONToNative: constant(`'no-fields'`),
		}
	default:
		panic(fmt.Sprintf("unreachable: unknown fields %T", f))
	}
}

func objectType(keys, types []string) string {
	if len(keys) == 0 {
		return "{}"
	}
	props := make([]string, len(keys))
	for i := range keys {
		props[i] = naming.PropertyKey(keys[i]) + ": " + types[i]
	}
	return "{ " + strings.Join(props, ", ") + " }"
}

func (c *Compiler) compileNamed(fields schema.NamedFields) TypeMapping {
	names := make([]string, len(fields))
	mappings := make([]TypeMapping, len(fields))
	natives := make([]string, len(fields))
	jsons := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		mappings[i] = c.Compile(f.Type)
		natives[i] = mappings[i].NativeType
		jsons[i] = mappings[i].JSONType
	}
	nativeType := objectType(names, natives)
	jsonType := objectType(names, jsons)

	convert := func(resultType string, pick func(TypeMapping) Converter) Converter {
		return func(ref string) Code {
			var stmts []string
			props := make([]string, len(fields))
			noop := true
			for i, m := range mappings {
				access := naming.Access(ref, names[i])
				code := pick(m)(access)
				noop = noop && code.IsNoop(access)
				stmts = append(stmts, code.Statements...)
				props[i] = naming.Property(names[i], code.Ref) + ","
			}
			if noop {
				return Code{Ref: ref}
			}
			id := c.alloc.Next("named")
			stmts = append(stmts, block(fmt.Sprintf("const %s: %s = {", id, resultType), props, "};"))
			return Code{Statements: stmts, Ref: id}
		}
	}

	return TypeMapping{
		NativeType:   nativeType,
		JSONType:     jsonType,
		NativeToJSON: convert(jsonType, func(m TypeMapping) Converter { return m.NativeToJSON }),
		JSONToNative: convert(nativeType, func(m TypeMapping) Converter { return m.JSONToNative }),
	}
}

// compileSingle maps a one-field unnamed layout: the native side is the field
// itself, the JSON side a one-element tuple.
func (c *Compiler) compileSingle(field schema.Type) TypeMapping {
	m := c.Compile(field)
	jsonType := "[" + m.JSONType + "]"
	return TypeMapping{
		NativeType: m.NativeType,
		JSONType:   jsonType,
		NativeToJSON: func(ref string) Code {
			code := m.NativeToJSON(ref)
			id := c.alloc.Next("unnamed")
			stmts := append(append([]string(nil), code.Statements...),
				fmt.Sprintf("const %s: %s = [%s];", id, jsonType, code.Ref))
			return Code{Statements: stmts, Ref: id}
		},
		JSONToNative: func(ref string) Code {
			return m.JSONToNative(ref + "[0]")
		},
	}
}

func (c *Compiler) compileEnum(variants []schema.Variant) TypeMapping {
	if len(variants) == 0 {
		return TypeMapping{
			NativeType:   "never",
			JSONType:     "never",
			NativeToJSON: identity,
			JSONToNative: identity,
		}
	}

	mappings := make([]TypeMapping, len(variants))
	natives := make([]string, len(variants))
	jsons := make([]string, len(variants))
	for i, v := range variants {
		mappings[i] = c.compileFields(v.Fields)
		tag := "type: " + naming.Quote(v.Name)
		if isNoFields(v.Fields) {
			natives[i] = "{ " + tag + " }"
		} else {
			natives[i] = "{ " + tag + ", content: " + mappings[i].NativeType + " }"
		}
		jsons[i] = "{ " + naming.PropertyKey(v.Name) + ": " + mappings[i].JSONType + " }"
	}
	nativeType := strings.Join(natives, " | ")
	jsonType := strings.Join(jsons, " | ")

	return TypeMapping{
		NativeType: nativeType,
		JSONType:   jsonType,
		NativeToJSON: func(ref string) Code {
			id := c.alloc.Next("match")
			cases := make([]string, 0, len(variants))
			for i, v := range variants {
				code := mappings[i].NativeToJSON(ref + ".content")
				body := append(append([]string(nil), code.Statements...),
					fmt.Sprintf("%s = { %s };", id, naming.Property(v.Name, code.Ref)),
					"break;")
				cases = append(cases, block(fmt.Sprintf("case %s: {", naming.Quote(v.Name)), body, "}"))
			}
			return Code{
				Statements: []string{
					fmt.Sprintf("let %s: %s;", id, jsonType),
					block(fmt.Sprintf("switch (%s.type) {", ref), cases, "}"),
				},
				Ref: id,
			}
		},
		JSONToNative: func(ref string) Code {
			id := c.alloc.Next("match")
			var chain strings.Builder
			for i, v := range variants {
				code := mappings[i].JSONToNative(naming.Access(ref, v.Name))
				value := "{ type: " + naming.Quote(v.Name) + " }"
				if !isNoFields(v.Fields) {
					value = "{ type: " + naming.Quote(v.Name) + ", content: " + code.Ref + " }"
				}
				body := append(append([]string(nil), code.Statements...), fmt.Sprintf("%s = %s;", id, value))
				head := fmt.Sprintf("if (%s in %s) {", naming.Quote(v.Name), ref)
				if i > 0 {
					head = "} else " + head
				}
				chain.WriteString(strings.Join(append([]string{head}, indent(body)...), "\n"))
				chain.WriteByte('\n')
			}
			chain.WriteString(block("} else {", []string{
				fmt.Sprintf("throw new Error('Unexpected enum variant: ' + Object.keys(%s).join(', '));", ref),
			}, "}"))
			return Code{
				Statements: []string{
					fmt.Sprintf("let %s: %s;", id, nativeType),
					chain.String(),
				},
				Ref: id,
			}
		},
	}
}

func isNoFields(f schema.Fields) bool {
	switch f.(type) {
	case schema.NoFields, nil:
		return true
	}
	return false
}
