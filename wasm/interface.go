package wasm

import (
	"context"
	"strings"

	"go.uber.org/zap"

	cgerrors "github.com/wippyai/contractgen/errors"
)

const initPrefix = "init_"

// ContractInterface lists the entrypoints a contract exports, without the
// "<contract>." prefix, in export order.
type ContractInterface struct {
	Name        string   `json:"name"`
	Entrypoints []string `json:"entrypoints"`
}

func (c *ContractInterface) add(entrypoint string) {
	for _, e := range c.Entrypoints {
		if e == entrypoint {
			return
		}
	}
	c.Entrypoints = append(c.Entrypoints, entrypoint)
}

// ModuleInterface is the ordered list of contracts found in a module.
type ModuleInterface []*ContractInterface

// Contract looks up a contract by name.
func (m ModuleInterface) Contract(name string) *ContractInterface {
	for _, c := range m {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// EntrypointCount returns the number of entrypoints across all contracts.
func (m ModuleInterface) EntrypointCount() int {
	n := 0
	for _, c := range m {
		n += len(c.Entrypoints)
	}
	return n
}

func (m *ModuleInterface) getOrInsert(name string) *ContractInterface {
	if c := m.Contract(name); c != nil {
		return c
	}
	c := &ContractInterface{Name: name}
	*m = append(*m, c)
	return c
}

// ParseModuleInterface derives the contracts of a module from its function
// exports. init_<contract> declares a contract and <contract>.<entrypoint>
// adds an entrypoint, creating the contract if no init export was seen yet.
// When validate is set the module is compiled with wazero first.
func ParseModuleInterface(ctx context.Context, src *VersionedModuleSource, validate bool) (ModuleInterface, error) {
	if validate {
		if err := Validate(ctx, src.Source); err != nil {
			return nil, cgerrors.ParseFailed("wasm module", err)
		}
	}
	mod, err := ParseModule(src.Source)
	if err != nil {
		return nil, cgerrors.ParseFailed("wasm module", err)
	}

	return interfaceOf(mod), nil
}

func interfaceOf(mod *Module) ModuleInterface {
	iface := ModuleInterface{}
	for _, exp := range mod.FunctionExports() {
		switch {
		case IsInitName(exp.Name):
			iface.getOrInsert(strings.TrimPrefix(exp.Name, initPrefix))
		case IsReceiveName(exp.Name):
			contract, entrypoint, _ := strings.Cut(exp.Name, ".")
			iface.getOrInsert(contract).add(entrypoint)
		default:
			Logger().Debug("skipping export", zap.String("name", exp.Name))
		}
	}
	Logger().Debug("parsed module interface",
		zap.Int("contracts", len(iface)),
		zap.Int("entrypoints", iface.EntrypointCount()),
	)
	return iface
}

// IsInitName reports whether name is a valid contract init function name.
func IsInitName(name string) bool {
	return len(name) <= maxContractNameLength &&
		strings.HasPrefix(name, initPrefix) &&
		!strings.Contains(name, ".") &&
		isASCIIPrintable(name)
}

// IsReceiveName reports whether name is a valid contract receive function name.
func IsReceiveName(name string) bool {
	return len(name) <= maxContractNameLength &&
		strings.Contains(name, ".") &&
		isASCIIPrintable(name)
}

// isASCIIPrintable accepts alphanumerics, punctuation and space.
func isASCIIPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
