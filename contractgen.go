package contractgen

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/wippyai/contractgen/clientgen"
	"github.com/wippyai/contractgen/emit"
	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/metrics"
	"github.com/wippyai/contractgen/wasm"
)

// ModuleFileExt is stripped from module file names to name the output.
const ModuleFileExt = ".wasm.v1"

// Options configures a generation run.
type Options struct {
	// OnProgress is called after each generated entrypoint.
	OnProgress func(clientgen.Progress)
	// OnFile is called after each written file.
	OnFile func(kind, path string)
	// Metrics records the run when set.
	Metrics *metrics.GenerationObserver
	// Output selects the produced files. Empty means emit.Everything.
	Output emit.OutputType
	// TSNocheck prepends "// @ts-nocheck" to every TypeScript file.
	TSNocheck bool
	// ValidateWasm compiles the module with wazero before reading exports.
	ValidateWasm bool
}

// Result summarizes a generation run.
type Result struct {
	Files       []string
	Contracts   int
	Entrypoints int
	Elapsed     time.Duration
}

// GenerateContractClientsFromFile reads a versioned module file and writes
// the clients to outDir. The output is named after the file without its
// ".wasm.v1" extension.
func GenerateContractClientsFromFile(ctx context.Context, modulePath, outDir string, opts Options) (*Result, error) {
	data, err := os.ReadFile(modulePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, cgerrors.New(cgerrors.PhaseLoad, cgerrors.KindNotFound).
				Detail("No such module '%s'", modulePath).
				Cause(err).
				Build()
		}
		return nil, cgerrors.IO(cgerrors.PhaseLoad, modulePath, err)
	}
	src, err := wasm.VersionedModuleSourceFromBuffer(data)
	if err != nil {
		return nil, err
	}
	return GenerateContractClients(ctx, src, OutputName(modulePath), outDir, opts)
}

// GenerateContractClients generates the clients of src and writes them to
// outDir. Nothing is written when generation fails.
func GenerateContractClients(ctx context.Context, src *wasm.VersionedModuleSource, outName, outDir string, opts Options) (res *Result, err error) {
	start := time.Now()
	if opts.Metrics != nil {
		defer func() { opts.Metrics.Run(time.Since(start), err) }()
	}

	onProgress := opts.OnProgress
	if opts.Metrics != nil {
		onProgress = func(p clientgen.Progress) {
			opts.Metrics.Entrypoint(p.SpentTime)
			if opts.OnProgress != nil {
				opts.OnProgress(p)
			}
		}
	}
	out, err := clientgen.Generate(ctx, wasm.NewSource(src, opts.ValidateWasm), outName, clientgen.Options{
		OnProgress: onProgress,
	})
	if err != nil {
		return nil, err
	}

	paths, err := emit.Write(out.Files(), emit.Options{
		OutDir:    outDir,
		Output:    opts.Output,
		TSNocheck: opts.TSNocheck,
		OnFile: func(kind, path string) {
			if opts.Metrics != nil {
				opts.Metrics.FileWritten(kind)
			}
			if opts.OnFile != nil {
				opts.OnFile(kind, path)
			}
		},
	})
	if err != nil {
		return nil, err
	}
	if opts.Metrics != nil {
		opts.Metrics.Contracts(len(out.Contracts))
	}

	return &Result{
		Files:       paths,
		Contracts:   len(out.Contracts),
		Entrypoints: out.Entrypoints,
		Elapsed:     time.Since(start),
	}, nil
}

// OutputName returns the base name of a module path without ".wasm.v1".
func OutputName(modulePath string) string {
	return strings.TrimSuffix(filepath.Base(modulePath), ModuleFileExt)
}
