package clientgen

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/naming"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/transcoder"
	"github.com/wippyai/contractgen/ts"
	"github.com/wippyai/contractgen/wasm"
)

// sdkImport is the namespace import every generated file starts with.
var sdkImport = ts.Import{Namespace: "SDK", From: "@concordium/web-sdk"}

// Output is the result of a generation run.
type Output struct {
	Module    *ts.File
	Contracts []*ts.File
	// Entrypoints is the number of entrypoints generated.
	Entrypoints int
}

// Files returns the module file followed by the contract files.
func (o *Output) Files() []*ts.File {
	return append([]*ts.File{o.Module}, o.Contracts...)
}

type inputs struct {
	iface  wasm.ModuleInterface
	ref    wasm.ModuleReference
	schema *schema.Module
}

// Generate builds the client files for the module served by src. outName
// names the module file; contract files are named <outName>_<contract>.
func Generate(ctx context.Context, src Source, outName string, opts Options) (*Output, error) {
	in, err := fetch(ctx, src)
	if err != nil {
		return nil, err
	}

	g := &generator{
		compiler:  transcoder.NewCompiler(naming.NewAllocator()),
		moduleRef: in.ref.String(),
		schema:    in.schema,
		outName:   outName,
	}

	total := in.iface.EntrypointCount()
	done := 0
	out := &Output{Module: g.moduleFile(in.iface)}
	for _, contract := range in.iface {
		file := g.contractFile(contract, func(entrypoint string, spent time.Duration) {
			done++
			Logger().Debug("generated entrypoint",
				zap.String("contract", contract.Name),
				zap.String("entrypoint", entrypoint),
				zap.Duration("spent", spent),
			)
			if opts.OnProgress != nil {
				opts.OnProgress(Progress{
					Description: contract.Name + "." + entrypoint,
					TotalItems:  total,
					DoneItems:   done,
					SpentTime:   spent,
				})
			}
		})
		out.Contracts = append(out.Contracts, file)
	}
	out.Entrypoints = done

	Logger().Info("generated contract clients",
		zap.String("module", outName),
		zap.String("module_reference", g.moduleRef),
		zap.Int("contracts", len(in.iface)),
		zap.Int("entrypoints", total),
		zap.Bool("schema", in.schema != nil),
		zap.Int("temporaries", g.compiler.Allocator().Count()),
	)
	return out, nil
}

// fetch issues the three input requests together and waits for all of them.
func fetch(ctx context.Context, src Source) (*inputs, error) {
	var (
		in  inputs
		raw *schema.RawModuleSchema
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		iface, err := src.ModuleInterface(ctx)
		if err != nil {
			return cgerrors.Load("read module interface", err)
		}
		in.iface = iface
		return nil
	})
	eg.Go(func() error {
		ref, err := src.ModuleReference(ctx)
		if err != nil {
			return cgerrors.Load("calculate module reference", err)
		}
		in.ref = ref
		return nil
	})
	eg.Go(func() error {
		r, err := src.EmbeddedSchema(ctx)
		if err != nil {
			return cgerrors.Load("read embedded schema", err)
		}
		raw = r
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if raw != nil {
		mod, err := schema.ParseRawModuleSchema(*raw)
		if err != nil {
			return nil, cgerrors.Load("parse embedded schema", err)
		}
		in.schema = mod
	}
	return &in, nil
}

type generator struct {
	compiler  *transcoder.Compiler
	schema    *schema.Module
	moduleRef string
	outName   string
}

// contractSchema returns the schema of the named contract, or nil.
func (g *generator) contractSchema(name string) *schema.Contract {
	if g.schema == nil {
		return nil
	}
	return g.schema.Contract(name)
}
