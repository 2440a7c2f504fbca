// Package config handles ccdgen project configuration.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wippyai/contractgen/emit"
	cgerrors "github.com/wippyai/contractgen/errors"
)

// FileName is the default configuration file name.
const FileName = "ccdgen.yaml"

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// Config represents the ccdgen.yaml project configuration file.
type Config struct {
	Module      string          `yaml:"module"`
	OutDir      string          `yaml:"outDir"`
	OutputType  emit.OutputType `yaml:"outputType"`
	MetricsFile string          `yaml:"metricsFile,omitempty"`
	Version     int             `yaml:"version"`
	TSNocheck   bool            `yaml:"tsNocheck"`
	// ValidateWasm compiles the module with wazero before reading exports.
	ValidateWasm bool `yaml:"validateWasm"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:      CurrentConfigVersion,
		OutDir:       "generated",
		OutputType:   emit.Everything,
		ValidateWasm: true,
	}
}

// Load reads a Config from a file path. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, cgerrors.IO(cgerrors.PhaseConfig, path, err)
	}
	defer f.Close()

	cfg := Default()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return nil, cgerrors.Wrap(cgerrors.PhaseConfig, cgerrors.KindInvalidData, err, "decode "+path)
	}
	return cfg, nil
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return cgerrors.IO(cgerrors.PhaseConfig, path, err)
	}
	defer f.Close()

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return cgerrors.Wrap(cgerrors.PhaseConfig, cgerrors.KindIO, err, "encode "+path)
	}
	return enc.Close()
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return cgerrors.InvalidInput(cgerrors.PhaseConfig, "unsupported config version")
	}
	if c.Module == "" {
		return cgerrors.InvalidInput(cgerrors.PhaseConfig, "module is required")
	}
	if c.OutDir == "" {
		return cgerrors.InvalidInput(cgerrors.PhaseConfig, "outDir is required")
	}
	if _, err := emit.ParseOutputType(string(c.OutputType)); err != nil {
		return err
	}
	return nil
}
