package main

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/wasm"
)

type inspectOptions struct {
	validateWasm bool
}

// inspectOutput is the JSON document printed by inspect.
type inspectOutput struct {
	Schema          *schema.Module            `json:"schema"`
	ModuleReference string                    `json:"moduleReference"`
	Contracts       []*wasm.ContractInterface `json:"contracts"`
	ModuleVersion   uint32                    `json:"moduleVersion"`
}

func newInspectCmd() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <module-file>",
		Short: "Print the contracts, module reference and schema of a module as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.validateWasm, "validate-wasm", true, "Compile the module before reading its exports")

	return cmd
}

func runInspect(cmd *cobra.Command, path string, opts *inspectOptions, w io.Writer) error {
	ctx := cmd.Context()

	data, err := os.ReadFile(path)
	if err != nil {
		return cgerrors.IO(cgerrors.PhaseLoad, path, err)
	}
	versioned, err := wasm.VersionedModuleSourceFromBuffer(data)
	if err != nil {
		return err
	}
	src := wasm.NewSource(versioned, opts.validateWasm)

	iface, err := src.ModuleInterface(ctx)
	if err != nil {
		return err
	}
	ref, err := src.ModuleReference(ctx)
	if err != nil {
		return err
	}
	raw, err := src.EmbeddedSchema(ctx)
	if err != nil {
		return err
	}

	out := inspectOutput{
		ModuleReference: ref.String(),
		ModuleVersion:   versioned.Version,
		Contracts:       iface,
	}
	if raw != nil {
		out.Schema, err = schema.ParseRawModuleSchema(*raw)
		if err != nil {
			return err
		}
	}

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", enc)
	return err
}
