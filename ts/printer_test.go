package ts

import (
	"strings"
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFile() *File {
	return &File{
		Name:    "sample",
		Header:  []string{"// @ts-nocheck"},
		Imports: []Import{{Namespace: "SDK", From: "@concordium/web-sdk"}},
		Decls: []Decl{
			&Const{
				Docs:     []string{"The reference of the module."},
				Exported: true,
				Name:     "moduleReference",
				Type:     "SDK.ModuleReference.Type",
				Value:    "SDK.ModuleReference.fromHexString('00')",
			},
			&TypeAlias{Exported: true, Name: "Parameter", Type: "{ a: number }"},
			&TypeAlias{Name: "internal", Type: "string"},
			&Class{
				Docs:     []string{"Client for a module."},
				Exported: true,
				Name:     "SampleModule",
				Props: []Property{
					{Docs: []string{"Nominal marker."}, Modifiers: "private", Name: "__nominal", Type: "boolean", Init: "true"},
					{Modifiers: "public readonly", Name: "internalModuleClient", Type: "SDK.ModuleClient.Type"},
				},
				Ctor: &Constructor{
					Params: []Param{{Name: "internalModuleClient", Type: "SDK.ModuleClient.Type"}},
					Body:   []string{"this.internalModuleClient = internalModuleClient;"},
				},
			},
			&Func{
				Docs:     []string{"Send an update."},
				Exported: true,
				Async:    true,
				Name:     "send",
				Params: []Param{
					{Name: "client", Type: "SampleModule", Doc: "The client."},
					{Name: "blockHash", Type: "SDK.BlockHash.Type", Optional: true, Doc: "Optional block."},
					{Name: "metadata", Type: "SDK.ContractInvokeMetadata", Default: "{}", Doc: "Metadata."},
				},
				Returns:    "Promise<void>",
				ReturnsDoc: "Nothing.",
				Body:       []string{"const x = {\n    a: 1,\n};", "await client.internalModuleClient.checkOnChain(blockHash);"},
			},
			&Func{Name: "helper", Returns: "number", Body: []string{"return 1;"}},
		},
	}
}

func TestPrintTypeScript(t *testing.T) {
	out := Print(sampleFile(), TypeScript)

	assert.True(t, strings.HasPrefix(out, "// @ts-nocheck\n\nimport * as SDK from '@concordium/web-sdk';\n"), out)
	assert.Contains(t, out, "/** The reference of the module. */\nexport const moduleReference: SDK.ModuleReference.Type = SDK.ModuleReference.fromHexString('00');")
	assert.Contains(t, out, "export type Parameter = { a: number };")
	assert.Contains(t, out, "\ntype internal = string;")
	assert.Contains(t, out, "export class SampleModule {\n    /** Nominal marker. */\n    private __nominal = true;\n")
	assert.Contains(t, out, "    public readonly internalModuleClient: SDK.ModuleClient.Type;\n")
	assert.Contains(t, out, "    constructor(internalModuleClient: SDK.ModuleClient.Type) {\n        this.internalModuleClient = internalModuleClient;\n    }\n")
	assert.Contains(t, out, " * @param {SampleModule} client - The client.\n")
	assert.Contains(t, out, " * @param {SDK.BlockHash.Type} [blockHash] - Optional block.\n")
	assert.Contains(t, out, " * @param {SDK.ContractInvokeMetadata} [metadata={}] - Metadata.\n")
	assert.Contains(t, out, " * @returns {Promise<void>} Nothing.\n")
	assert.Contains(t, out, "export async function send(client: SampleModule, blockHash?: SDK.BlockHash.Type, metadata: SDK.ContractInvokeMetadata = {}): Promise<void> {\n    const x = {\n        a: 1,\n    };\n")
	assert.Contains(t, out, "\nfunction helper(): number {\n    return 1;\n}\n")

	result := api.Transform(out, api.TransformOptions{Loader: api.LoaderTS})
	require.Empty(t, result.Errors, out)
}

func TestPrintDeclarations(t *testing.T) {
	out := Print(sampleFile(), Declarations)

	assert.Contains(t, out, "export declare const moduleReference: SDK.ModuleReference.Type;")
	assert.Contains(t, out, "type internal = string;")
	assert.Contains(t, out, "export declare class SampleModule {\n")
	assert.Contains(t, out, "    private __nominal;\n")
	assert.Contains(t, out, "    public readonly internalModuleClient: SDK.ModuleClient.Type;\n")
	assert.Contains(t, out, "    constructor(internalModuleClient: SDK.ModuleClient.Type);\n")
	assert.Contains(t, out, "export declare function send(client: SampleModule, blockHash?: SDK.BlockHash.Type, metadata?: SDK.ContractInvokeMetadata): Promise<void>;")
	assert.NotContains(t, out, "async")
	assert.NotContains(t, out, "helper")
	assert.NotContains(t, out, "checkOnChain")

	result := api.Transform(out, api.TransformOptions{Loader: api.LoaderTS})
	require.Empty(t, result.Errors, out)
}
