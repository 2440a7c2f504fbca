package wasm

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"
)

// Validate compiles the module with wazero without instantiating it. Host
// imports are not resolved, so modules importing the chain's host functions
// validate as well.
func Validate(ctx context.Context, source []byte) error {
	cfg := wazero.NewRuntimeConfigInterpreter().WithCustomSections(true)
	runtime := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer runtime.Close(ctx)

	compiled, err := runtime.CompileModule(ctx, source)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	defer compiled.Close(ctx)

	Logger().Debug("module validated",
		zap.Int("exports", len(compiled.ExportedFunctions())),
		zap.Int("imports", len(compiled.ImportedFunctions())),
		zap.Int("custom_sections", len(compiled.CustomSections())),
	)
	return nil
}
