package clientgen

import (
	"encoding/base64"
	"strings"

	"github.com/wippyai/contractgen/naming"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/ts"
)

const (
	parameterID  = "parameter"
	schemaJSONID = "schemaJson"
)

// parameter is the outcome of compiling a parameter schema: the declarations
// to add, the signature parameter (nil for Unit) and the expression of type
// SDK.Parameter.Type passed on to the SDK.
type parameter struct {
	decls []ts.Decl
	arg   *ts.Param
	value string
}

// base64Schema encodes t the way SDK.Parameter.fromBase64SchemaType expects.
func base64Schema(t schema.Type) string {
	return base64.StdEncoding.EncodeToString(schema.SerializeType(t))
}

// parameterDecls compiles the parameter schema t. prefix names the
// declarations (<prefix>Parameter, create<prefix>Parameter, ...) and what
// completes the doc comments, e.g. "update transaction for 'x' entrypoint of
// the 'y' contract".
func (g *generator) parameterDecls(prefix, what string, t schema.Type) parameter {
	if t == nil {
		return parameter{
			arg: &ts.Param{
				Name: parameterID,
				Type: "SDK.Parameter.Type",
				Doc:  "Parameter to provide as part of the " + what + ".",
			},
			value: parameterID,
		}
	}
	if schema.IsUnit(t) {
		return parameter{value: "SDK.Parameter.empty()"}
	}

	m := g.compiler.Compile(t)
	nativeType := prefix + "Parameter"
	jsonType := prefix + "ParameterSchemaJson"
	base64ID := "base64" + prefix + "ParameterSchema"
	toJSON := "create" + prefix + "ParameterSchemaJson"
	create := "create" + prefix + "Parameter"

	code := m.NativeToJSON(parameterID)
	toJSONBody := append(code.Lines(), "return "+code.Ref+";")

	arg := ts.Param{Name: parameterID, Type: nativeType, Doc: "The structured parameter to construct from."}
	decls := []ts.Decl{
		&ts.Const{
			Docs:  []string{"Base64 encoding of the parameter schema type for " + what + "."},
			Name:  base64ID,
			Value: naming.Quote(base64Schema(t)),
		},
		&ts.TypeAlias{
			Docs: []string{"Parameter JSON type needed by the schema for " + what + "."},
			Name: jsonType,
			Type: m.JSONType,
		},
		&ts.TypeAlias{
			Docs:     []string{"Parameter type for " + what + "."},
			Name:     nativeType,
			Type:     m.NativeType,
			Exported: true,
		},
		&ts.Func{
			Docs:       []string{"Construct schema JSON representation used in " + what + "."},
			Name:       toJSON,
			Params:     []ts.Param{arg},
			Returns:    jsonType,
			ReturnsDoc: "The smart contract parameter JSON.",
			Body:       toJSONBody,
		},
		&ts.Func{
			Docs:       []string{"Construct Parameter type used in " + what + "."},
			Name:       create,
			Params:     []ts.Param{arg},
			Returns:    "SDK.Parameter.Type",
			ReturnsDoc: "The smart contract parameter.",
			Body: []string{
				"return SDK.Parameter.fromBase64SchemaType(" + base64ID + ", " + toJSON + "(" + parameterID + "));",
			},
			Exported: true,
		},
		&ts.Func{
			Docs: []string{
				"Construct WebWallet parameter type used in " + what + ".",
				"Returns the smart contract parameter in the form supported by the WebWallet.",
			},
			Name:   create + "WebWallet",
			Params: []ts.Param{arg},
			Body: []string{
				"return {",
				"    parameters: " + toJSON + "(" + parameterID + "),",
				"    schema: {",
				"        type: 'TypeSchema' as const,",
				"        value: SDK.toBuffer(" + base64ID + ", 'base64'),",
				"    },",
				"};",
			},
			Exported: true,
		},
	}
	return parameter{
		decls: decls,
		arg:   &arg,
		value: create + "(" + parameterID + ")",
	}
}

// decodeBody returns the statements converting the JSON value produced by
// parse into the native form of t, ending in a return.
func (g *generator) decodeBody(t schema.Type, parse string) []string {
	m := g.compiler.Compile(t)
	body := []string{"const " + schemaJSONID + " = " + parse + " as " + m.JSONType + ";"}
	code := m.JSONToNative(schemaJSONID)
	body = append(body, code.Lines()...)
	return append(body, "return "+code.Ref+";")
}

// nativeTypeOf returns the native type of t. Compiling allocates no
// temporaries until a converter runs.
func (g *generator) nativeTypeOf(t schema.Type) string {
	return g.compiler.Compile(t).NativeType
}

// call renders a multi-line call with one argument per line.
func call(callee string, args ...string) string {
	var b strings.Builder
	b.WriteString(callee)
	b.WriteString("(\n")
	for i, a := range args {
		b.WriteString("    ")
		b.WriteString(a)
		if i < len(args)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}
