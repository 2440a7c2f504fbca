package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/ts"
)

func sampleFiles() []*ts.File {
	return []*ts.File{
		{
			Name:    "token",
			Imports: []ts.Import{{Namespace: "SDK", From: "@concordium/web-sdk"}},
			Decls: []ts.Decl{
				&ts.TypeAlias{Exported: true, Name: "Parameter", Type: "{ amount: number | bigint }"},
				&ts.Func{
					Exported: true,
					Name:     "toJson",
					Params:   []ts.Param{{Name: "parameter", Type: "Parameter"}},
					Returns:  "{ amount: bigint }",
					Body:     []string{"const number0 = BigInt(parameter.amount);", "return { amount: number0 };"},
				},
				&ts.Func{Name: "internal", Returns: "SDK.Parameter.Type", Body: []string{"return SDK.Parameter.empty();"}},
			},
		},
		{Name: "token_token", Decls: []ts.Decl{&ts.Const{Exported: true, Name: "contractName", Type: "string", Value: "'token'"}}},
	}
}

func TestParseOutputType(t *testing.T) {
	for _, o := range OutputTypes {
		got, err := ParseOutputType(string(o))
		require.NoError(t, err)
		assert.Equal(t, o, got)
	}
	_, err := ParseOutputType("Rust")
	require.Error(t, err)
	assert.ErrorIs(t, err, cgerrors.InvalidInput(cgerrors.PhaseConfig, ""))
	assert.Contains(t, err.Error(), `"Rust"`)
}

func kinds(artifacts []Artifact) []string {
	var out []string
	for _, a := range artifacts {
		out = append(out, a.FileName())
	}
	return out
}

func TestRender_OutputTypes(t *testing.T) {
	tests := []struct {
		output OutputType
		want   []string
	}{
		{TypeScript, []string{"token.ts", "token_token.ts"}},
		{JavaScript, []string{"token.js", "token_token.js"}},
		{TypedJavaScript, []string{"token.js", "token.d.ts", "token_token.js", "token_token.d.ts"}},
		{Everything, []string{"token.ts", "token.js", "token.d.ts", "token_token.ts", "token_token.js", "token_token.d.ts"}},
		{"", []string{"token.ts", "token.js", "token.d.ts", "token_token.ts", "token_token.js", "token_token.d.ts"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			artifacts, err := Render(sampleFiles(), tt.output, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, kinds(artifacts))
		})
	}
}

func TestRender_Contents(t *testing.T) {
	artifacts, err := Render(sampleFiles(), Everything, false)
	require.NoError(t, err)
	byName := make(map[string]string)
	for _, a := range artifacts {
		byName[a.FileName()] = string(a.Content)
	}

	assert.Contains(t, byName["token.ts"], "export function toJson(parameter: Parameter): { amount: bigint } {")

	js := byName["token.js"]
	assert.Regexp(t, `export\s*(function\s+toJson\b|\{[^}]*\btoJson\b)`, js)
	assert.Contains(t, js, "function toJson(parameter)")
	assert.Contains(t, js, "BigInt(parameter.amount)")
	assert.NotContains(t, js, "export type")
	assert.NotContains(t, js, ": Parameter")

	dts := byName["token.d.ts"]
	assert.Contains(t, dts, "export declare function toJson(parameter: Parameter): { amount: bigint };")
	assert.NotContains(t, dts, "internal")
	assert.NotContains(t, byName["token.ts"], "@ts-nocheck")
}

func TestRender_TSNocheck(t *testing.T) {
	files := sampleFiles()
	artifacts, err := Render(files, Everything, true)
	require.NoError(t, err)
	for _, a := range artifacts {
		if a.Kind == KindJS {
			continue
		}
		assert.True(t, strings.HasPrefix(string(a.Content), "// @ts-nocheck\n"), a.FileName())
	}
	assert.Empty(t, files[0].Header, "input files are not modified")
}

func TestRender_TranspileError(t *testing.T) {
	files := []*ts.File{{
		Name:  "broken",
		Decls: []ts.Decl{&ts.Func{Name: "f", Body: []string{"return (;"}}},
	}}
	_, err := Render(files, JavaScript, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, cgerrors.New(cgerrors.PhaseEmit, cgerrors.KindInvalidData).Build())
	assert.Contains(t, err.Error(), "broken.ts:")

	_, err = Render(files, TypeScript, false)
	assert.NoError(t, err, "TypeScript output is not transpiled")
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	var written []string
	paths, err := Write(sampleFiles(), Options{
		OutDir: dir,
		Output: TypedJavaScript,
		OnFile: func(kind, path string) { written = append(written, kind+":"+filepath.Base(path)) },
	})
	require.NoError(t, err)
	assert.Len(t, paths, 4)
	assert.Equal(t, []string{"js:token.js", "d.ts:token.d.ts", "js:token_token.js", "d.ts:token_token.d.ts"}, written)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.NotEmpty(t, data)
	}
}

func TestWrite_Unwritable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Write(sampleFiles(), Options{OutDir: filepath.Join(blocker, "out"), Output: TypeScript})
	require.Error(t, err)
	assert.ErrorIs(t, err, cgerrors.IO(cgerrors.PhaseEmit, "", nil))
}
