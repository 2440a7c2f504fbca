package wasm

import (
	"context"
	"sync"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
)

// Source serves the generation inputs of one module source. Its methods are
// safe for concurrent use; the section walk runs once and is shared.
type Source struct {
	src      *VersionedModuleSource
	module   func() (*Module, error)
	validate bool
}

// NewSource wraps src. When validate is set ModuleInterface compiles the
// module with wazero before reading exports.
func NewSource(src *VersionedModuleSource, validate bool) *Source {
	return &Source{
		src:      src,
		validate: validate,
		module: sync.OnceValues(func() (*Module, error) {
			return ParseModule(src.Source)
		}),
	}
}

// Versioned returns the wrapped module source.
func (s *Source) Versioned() *VersionedModuleSource {
	return s.src
}

// ModuleInterface returns the contracts and entrypoints of the module.
func (s *Source) ModuleInterface(ctx context.Context) (ModuleInterface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.validate {
		if err := Validate(ctx, s.src.Source); err != nil {
			return nil, cgerrors.ParseFailed("wasm module", err)
		}
	}
	mod, err := s.module()
	if err != nil {
		return nil, cgerrors.ParseFailed("wasm module", err)
	}
	return interfaceOf(mod), nil
}

// ModuleReference returns the on-chain reference of the module.
func (s *Source) ModuleReference(ctx context.Context) (ModuleReference, error) {
	if err := ctx.Err(); err != nil {
		return ModuleReference{}, err
	}
	return CalculateModuleReference(s.src), nil
}

// EmbeddedSchema returns the raw embedded schema, or nil when there is none.
func (s *Source) EmbeddedSchema(ctx context.Context) (*schema.RawModuleSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mod, err := s.module()
	if err != nil {
		return nil, cgerrors.ParseFailed("wasm module", err)
	}
	return EmbeddedSchema(mod)
}
