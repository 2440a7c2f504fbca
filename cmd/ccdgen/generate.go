package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/contractgen"
	"github.com/wippyai/contractgen/clientgen"
	"github.com/wippyai/contractgen/config"
	"github.com/wippyai/contractgen/emit"
	cgerrors "github.com/wippyai/contractgen/errors"
	"github.com/wippyai/contractgen/metrics"
)

type generateOptions struct {
	configPath   string
	module       string
	outDir       string
	outputType   string
	metricsFile  string
	tsNocheck    bool
	validateWasm bool
	plain        bool
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate contract clients for a smart contract module",
		Long: `Generate a module client and one contract client per contract of a
versioned smart contract module (.wasm.v1). Flags override ccdgen.yaml.`,
		Example: `  ccdgen generate -m dist/token.wasm.v1 -o src/generated
  ccdgen generate -m dist/token.wasm.v1 -o lib -t TypedJavaScript -n`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			interactive := !opts.plain && term.IsTerminal(int(os.Stdout.Fd()))
			return runGenerate(cmd.Context(), cfg, cmd.OutOrStdout(), interactive)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", config.FileName, "Project configuration file")
	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "Smart contract module to generate clients from")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", "", "The output directory for the generated code")
	cmd.Flags().StringVarP(&opts.outputType, "output-type", "t", string(emit.Everything), "The output file types: TypeScript, JavaScript, TypedJavaScript or Everything")
	cmd.Flags().BoolVarP(&opts.tsNocheck, "ts-nocheck", "n", false, "Generate `@ts-nocheck` annotations at the top of each TypeScript file")
	cmd.Flags().BoolVar(&opts.validateWasm, "validate-wasm", true, "Compile the module before reading its exports")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "Print progress lines even on a terminal")

	return cmd
}

// resolveConfig loads the configuration file when present and applies the
// flags set on the command line.
func resolveConfig(cmd *cobra.Command, opts *generateOptions) (*config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if _, err := os.Stat(opts.configPath); err == nil {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if flags.Changed("config") {
		return nil, cgerrors.NotFound(cgerrors.PhaseConfig, "config file", opts.configPath)
	}

	if flags.Changed("module") {
		cfg.Module = opts.module
	}
	if flags.Changed("out-dir") {
		cfg.OutDir = opts.outDir
	}
	if flags.Changed("output-type") {
		cfg.OutputType = emit.OutputType(opts.outputType)
	}
	if flags.Changed("ts-nocheck") {
		cfg.TSNocheck = opts.tsNocheck
	}
	if flags.Changed("validate-wasm") {
		cfg.ValidateWasm = opts.validateWasm
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runGenerate(ctx context.Context, cfg *config.Config, w io.Writer, interactive bool) error {
	opts := contractgen.Options{
		Output:       cfg.OutputType,
		TSNocheck:    cfg.TSNocheck,
		ValidateWasm: cfg.ValidateWasm,
	}
	var reg *prometheus.Registry
	if cfg.MetricsFile != "" {
		reg = metrics.NewRegistry()
		opts.Metrics = metrics.NewGenerationObserver(reg)
	}

	var err error
	if interactive {
		err = runWithProgressUI(ctx, cfg, opts)
	} else {
		err = runPlain(ctx, cfg, opts, w)
	}

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.MetricsFile); werr != nil && err == nil {
			err = fmt.Errorf("write metrics: %w", werr)
		}
	}
	return err
}

func runPlain(ctx context.Context, cfg *config.Config, opts contractgen.Options, w io.Writer) error {
	fmt.Fprintln(w, "Generating smart contract clients...")
	start := time.Now()
	opts.OnProgress = func(p clientgen.Progress) {
		fmt.Fprintln(w, progressLine(p))
	}
	if _, err := contractgen.GenerateContractClientsFromFile(ctx, cfg.Module, cfg.OutDir, opts); err != nil {
		return err
	}
	fmt.Fprintf(w, "Done in %dms\n", time.Since(start).Milliseconds())
	return nil
}

// progressLine renders "[done/total] Nms " padded to 15 columns, then the
// entrypoint description.
func progressLine(p clientgen.Progress) string {
	head := fmt.Sprintf("[%d/%d] %dms ", p.DoneItems, p.TotalItems, p.SpentTime.Milliseconds())
	return fmt.Sprintf("%-15s%s", head, p.Description)
}
