package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/contractgen/config"
	"github.com/wippyai/contractgen/emit"
)

type initOptions struct {
	path           string
	module         string
	outDir         string
	outputType     string
	tsNocheck      bool
	nonInteractive bool
}

func newInitCmd() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a ccdgen.yaml configuration file",
		Example: `  # Interactive mode
  ccdgen init

  # Non-interactive
  ccdgen init -m dist/token.wasm.v1 -o src/generated --non-interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd.OutOrStdout())
		},
	}

	defaults := config.Default()
	cmd.Flags().StringVar(&opts.path, "path", config.FileName, "Path of the configuration file to create")
	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "Smart contract module to generate clients from")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", defaults.OutDir, "The output directory for the generated code")
	cmd.Flags().StringVarP(&opts.outputType, "output-type", "t", string(defaults.OutputType), "The output file types")
	cmd.Flags().BoolVarP(&opts.tsNocheck, "ts-nocheck", "n", false, "Generate `@ts-nocheck` annotations")
	cmd.Flags().BoolVar(&opts.nonInteractive, "non-interactive", false, "Run without prompts (requires --module)")

	return cmd
}

func runInit(opts *initOptions, w io.Writer) error {
	if _, err := os.Stat(opts.path); err == nil {
		return fmt.Errorf("%s already exists", opts.path)
	}

	if !opts.nonInteractive {
		if err := runInitForm(opts); err != nil {
			return err
		}
	}

	cfg := config.Default()
	cfg.Module = opts.module
	cfg.OutDir = opts.outDir
	cfg.OutputType = emit.OutputType(opts.outputType)
	cfg.TSNocheck = opts.tsNocheck
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(opts.path); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.path, err)
	}

	check := lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f")).Render("✓")
	fmt.Fprintf(w, "%s Wrote %s\n", check, opts.path)
	return nil
}

func runInitForm(opts *initOptions) error {
	outputOptions := make([]huh.Option[string], 0, len(emit.OutputTypes))
	for _, o := range emit.OutputTypes {
		outputOptions = append(outputOptions, huh.NewOption(string(o), string(o)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Smart contract module").
				Placeholder("dist/module.wasm.v1").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("module is required")
					}
					return nil
				}).
				Value(&opts.module),
			huh.NewInput().
				Title("Output directory").
				Placeholder("generated").
				Validate(func(s string) error {
					if s == "" {
						return errors.New("output directory is required")
					}
					return nil
				}).
				Value(&opts.outDir),
			huh.NewSelect[string]().
				Title("Output type").
				Options(outputOptions...).
				Value(&opts.outputType),
			huh.NewConfirm().
				Title("Add @ts-nocheck annotations?").
				Value(&opts.tsNocheck),
		),
	).Run()
}
