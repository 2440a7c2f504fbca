package clientgen

import (
	"context"
	"time"

	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/wasm"
)

// Source provides the inputs of a generation run. The methods are called
// concurrently.
type Source interface {
	ModuleInterface(ctx context.Context) (wasm.ModuleInterface, error)
	ModuleReference(ctx context.Context) (wasm.ModuleReference, error)
	// EmbeddedSchema returns nil, nil when the module carries no schema.
	EmbeddedSchema(ctx context.Context) (*schema.RawModuleSchema, error)
}

// Progress is reported after each entrypoint.
type Progress struct {
	Description string
	TotalItems  int
	DoneItems   int
	// SpentTime is the time spent on the item just finished.
	SpentTime time.Duration
}

// Options configures a generation run.
type Options struct {
	OnProgress func(Progress)
}
