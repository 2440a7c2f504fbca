package wasm

import (
	"go.uber.org/zap"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
)

// GetEmbeddedModuleSchema extracts the schema embedded in a module's custom
// sections. The versioned section takes precedence over the legacy V1 and V2
// sections. It returns nil when no schema is embedded.
func GetEmbeddedModuleSchema(src *VersionedModuleSource) (*schema.RawModuleSchema, error) {
	mod, err := ParseModule(src.Source)
	if err != nil {
		return nil, cgerrors.ParseFailed("wasm module", err)
	}
	return EmbeddedSchema(mod)
}

// EmbeddedSchema looks up the schema sections of an already parsed module.
func EmbeddedSchema(mod *Module) (*schema.RawModuleSchema, error) {
	lookups := []struct {
		section   string
		versioned bool
		version   uint8
	}{
		{SchemaSectionVersioned, true, 0},
		{SchemaSectionV1, false, 0},
		{SchemaSectionV2, false, 1},
	}
	for _, l := range lookups {
		data, err := singleSection(mod, l.section)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		Logger().Debug("found embedded schema",
			zap.String("section", l.section),
			zap.Int("bytes", len(data)),
		)
		return &schema.RawModuleSchema{
			Buffer:    data,
			Versioned: l.versioned,
			Version:   l.version,
		}, nil
	}
	return nil, nil
}

func singleSection(mod *Module, name string) ([]byte, error) {
	sections := mod.CustomSectionsNamed(name)
	switch len(sections) {
	case 0:
		return nil, nil
	case 1:
		if sections[0] == nil {
			return []byte{}, nil
		}
		return sections[0], nil
	default:
		return nil, cgerrors.New(cgerrors.PhaseParse, cgerrors.KindInvalidData).
			Path(name).
			Detail("invalid wasm module: %d custom sections named %q", len(sections), name).
			Build()
	}
}
