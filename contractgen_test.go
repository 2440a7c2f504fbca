package contractgen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/contractgen/clientgen"
	"github.com/wippyai/contractgen/emit"
	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/internal/wasmtest"
	"github.com/wippyai/contractgen/metrics"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/wasm"
)

func tokenModule(t *testing.T) []byte {
	t.Helper()
	s := &schema.Module{
		Version: 3,
		Contracts: []*schema.Contract{{
			Name: "token",
			Init: &schema.Function{Parameter: schema.NewScalar(schema.AccountAddress)},
			Receive: []*schema.Entrypoint{
				{Name: "transfer", Function: &schema.Function{Parameter: &schema.Struct{Fields: schema.NamedFields{
					{Name: "to", Type: schema.NewScalar(schema.AccountAddress)},
					{Name: "amount", Type: schema.NewScalar(schema.U64)},
				}}}},
			},
		}},
	}
	buf, err := s.Serialize()
	require.NoError(t, err)

	module := wasmtest.New().
		Func("init_token", "token.transfer", "token.view").
		Memory("memory").
		Custom(wasm.SchemaSectionVersioned, buf).
		Build()
	return wasmtest.Versioned(1, module)
}

func writeModule(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGenerateContractClientsFromFile(t *testing.T) {
	modulePath := writeModule(t, "token.wasm.v1", tokenModule(t))
	outDir := filepath.Join(t.TempDir(), "generated")

	var progress []clientgen.Progress
	res, err := GenerateContractClientsFromFile(context.Background(), modulePath, outDir, Options{
		Output:       emit.TypeScript,
		ValidateWasm: true,
		OnProgress:   func(p clientgen.Progress) { progress = append(progress, p) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(outDir, "token.ts"),
		filepath.Join(outDir, "token_token.ts"),
	}, res.Files)
	assert.Equal(t, 1, res.Contracts)
	assert.Equal(t, 2, res.Entrypoints)

	require.Len(t, progress, 2)
	assert.Equal(t, "token.transfer", progress[0].Description)
	assert.Equal(t, 2, progress[1].DoneItems)
	assert.Equal(t, 2, progress[1].TotalItems)

	contract, err := os.ReadFile(filepath.Join(outDir, "token_token.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(contract), "export class TokenContract")
	assert.Contains(t, string(contract), "export type TransferParameter")
	assert.Contains(t, string(contract), "export function sendView(")

	module, err := os.ReadFile(filepath.Join(outDir, "token.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(module), "export class TokenModule")
}

func TestGenerateContractClients_Everything(t *testing.T) {
	src, err := wasm.VersionedModuleSourceFromBuffer(tokenModule(t))
	require.NoError(t, err)
	outDir := t.TempDir()

	var kinds []string
	res, err := GenerateContractClients(context.Background(), src, "cis2", outDir, Options{
		TSNocheck: true,
		OnFile:    func(kind, _ string) { kinds = append(kinds, kind) },
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ts", "js", "d.ts", "ts", "js", "d.ts"}, kinds)
	assert.Len(t, res.Files, 6)
	assert.FileExists(t, filepath.Join(outDir, "cis2.js"))
	assert.FileExists(t, filepath.Join(outDir, "cis2_token.d.ts"))

	ts, err := os.ReadFile(filepath.Join(outDir, "cis2.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(ts), "// @ts-nocheck\n")
}

func TestGenerateContractClients_Metrics(t *testing.T) {
	src, err := wasm.VersionedModuleSourceFromBuffer(tokenModule(t))
	require.NoError(t, err)

	reg := metrics.NewRegistry()
	_, err = GenerateContractClients(context.Background(), src, "token", t.TempDir(), Options{
		Output:  emit.TypedJavaScript,
		Metrics: metrics.NewGenerationObserver(reg),
	})
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(reg, "contractgen_files_written_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "js and d.ts series")

	count, err = testutil.GatherAndCount(reg, "contractgen_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGenerateContractClientsFromFile_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("missing module", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing.wasm.v1")
		_, err := GenerateContractClientsFromFile(ctx, path, t.TempDir(), Options{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No such module '"+path+"'")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported module version", func(t *testing.T) {
		module := wasmtest.New().Func("init_token").Build()
		path := writeModule(t, "token.wasm.v1", wasmtest.Versioned(7, module))
		outDir := filepath.Join(t.TempDir(), "out")

		_, err := GenerateContractClientsFromFile(ctx, path, outDir, Options{})
		require.Error(t, err)
		assert.NoDirExists(t, outDir)
	})

	t.Run("corrupt schema writes nothing", func(t *testing.T) {
		module := wasmtest.New().
			Func("init_token").
			Custom(wasm.SchemaSectionVersioned, []byte{0xff, 0xff, 0x03, 0x09}).
			Build()
		path := writeModule(t, "token.wasm.v1", wasmtest.Versioned(1, module))
		outDir := filepath.Join(t.TempDir(), "out")

		_, err := GenerateContractClientsFromFile(ctx, path, outDir, Options{})
		require.Error(t, err)
		assert.ErrorIs(t, err, cgerrors.Load("", nil))
		assert.NoDirExists(t, outDir)
	})
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "token", OutputName("/tmp/dist/token.wasm.v1"))
	assert.Equal(t, "token.wasm", OutputName("token.wasm"))
	assert.Equal(t, "cis2-wccd", OutputName("cis2-wccd.wasm.v1"))
}
