package clientgen

import (
	"github.com/wippyai/contractgen/naming"
	"github.com/wippyai/contractgen/ts"
	"github.com/wippyai/contractgen/wasm"
)

const (
	moduleRefID            = "moduleReference"
	grpcClientID           = "grpcClient"
	moduleClientID         = "moduleClient"
	internalModuleClientID = "internalModuleClient"
	transactionMetadataID  = "transactionMetadata"
	signerID               = "signer"
	blockHashID            = "blockHash"
)

const nominalDoc = "Having a private field prevents similar structured objects to be considered the same type (similar to nominal typing)."

func (g *generator) moduleRefDecl() *ts.Const {
	return &ts.Const{
		Docs:     []string{"The reference of the smart contract module supported by the provided client."},
		Name:     moduleRefID,
		Type:     "SDK.ModuleReference.Type",
		Value:    "SDK.ModuleReference.fromHexString(" + naming.Quote(g.moduleRef) + ")",
		Exported: true,
	}
}

// moduleFile builds the module unit: the module client and one
// instantiate function per contract.
func (g *generator) moduleFile(iface wasm.ModuleInterface) *ts.File {
	clientType := naming.PascalCase(g.outName) + "Module"
	moduleDoc := "Client for an on-chain smart contract module with module reference '" + g.moduleRef +
		"', can be used for instantiating new smart contract instances."
	moduleClientParam := ts.Param{
		Name: moduleClientID,
		Type: clientType,
		Doc:  "The client of the on-chain smart contract module with reference '" + g.moduleRef + "'.",
	}
	grpcParam := ts.Param{Name: grpcClientID, Type: "SDK.ConcordiumGRPCClient", Doc: "The concordium node client to use."}
	blockHashParam := ts.Param{
		Name:     blockHashID,
		Type:     "SDK.BlockHash.Type",
		Optional: true,
		Doc:      "Hash of the block to check the information at. When not provided the last finalized block is used.",
	}

	decls := []ts.Decl{
		g.moduleRefDecl(),
		&ts.Class{
			Docs: []string{moduleDoc},
			Name: clientType,
			Props: []ts.Property{
				{Docs: []string{nominalDoc}, Modifiers: "private", Name: "__nominal", Type: "boolean", Init: "true"},
				{Docs: []string{"Generic module client used internally."}, Modifiers: "public readonly", Name: internalModuleClientID, Type: "SDK.ModuleClient.Type"},
			},
			Ctor: &ts.Constructor{
				Docs:   []string{"Constructor is only meant to be used internally in this module. Use functions such as `create` or `createUnchecked` for construction."},
				Params: []ts.Param{{Name: internalModuleClientID, Type: "SDK.ModuleClient.Type"}},
				Body:   []string{"this." + internalModuleClientID + " = " + internalModuleClientID + ";"},
			},
		},
		&ts.TypeAlias{Docs: []string{moduleDoc}, Name: "Type", Type: clientType, Exported: true},
		&ts.Func{
			Docs: []string{
				"Construct a " + clientType + " client for interacting with a smart contract module on chain.",
				"This function ensures the smart contract module is deployed on chain.",
				"@throws If failing to communicate with the concordium node or if the module reference is not present on chain.",
			},
			Name:       "create",
			Params:     []ts.Param{grpcParam},
			Returns:    "Promise<" + clientType + ">",
			ReturnsDoc: "A module client ensured to be deployed on chain.",
			Body: []string{
				"const " + moduleClientID + " = SDK.ModuleClient.fromModuleReference(" + grpcClientID + ", " + moduleRefID + ");",
				"await SDK.ModuleClient.checkOnChain(" + moduleClientID + ");",
				"return new " + clientType + "(" + moduleClientID + ");",
			},
			Exported: true,
			Async:    true,
		},
		&ts.Func{
			Docs: []string{
				"Construct a " + clientType + " client for interacting with a smart contract module on chain.",
				"It is up to the caller to ensure the module is deployed on chain.",
			},
			Name:       "createUnchecked",
			Params:     []ts.Param{grpcParam},
			Returns:    clientType,
			ReturnsDoc: "A module client.",
			Body: []string{
				"const " + moduleClientID + " = SDK.ModuleClient.fromModuleReference(" + grpcClientID + ", " + moduleRefID + ");",
				"return new " + clientType + "(" + moduleClientID + ");",
			},
			Exported: true,
		},
		&ts.Func{
			Docs: []string{
				"Check if the smart contract module is deployed on chain.",
				"@throws {SDK.RpcError} If failing to communicate with the concordium node or if the module is not present on chain.",
			},
			Name:    "checkOnChain",
			Params:  []ts.Param{moduleClientParam, blockHashParam},
			Returns: "Promise<void>",
			Body: []string{
				"return SDK.ModuleClient.checkOnChain(" + moduleClientID + "." + internalModuleClientID + ", " + blockHashID + ");",
			},
			Exported: true,
		},
		&ts.Func{
			Docs: []string{
				"Get the module source of the deployed smart contract module.",
				"@throws {SDK.RpcError} If failing to communicate with the concordium node or module not found.",
			},
			Name:       "getModuleSource",
			Params:     []ts.Param{moduleClientParam, blockHashParam},
			Returns:    "Promise<SDK.VersionedModuleSource>",
			ReturnsDoc: "Module source of the deployed smart contract module.",
			Body: []string{
				"return SDK.ModuleClient.getModuleSource(" + moduleClientID + "." + internalModuleClientID + ", " + blockHashID + ");",
			},
			Exported: true,
		},
	}

	for _, contract := range iface {
		decls = append(decls, g.instantiateDecls(contract.Name, moduleClientParam)...)
	}

	return &ts.File{
		Name:    g.outName,
		Imports: []ts.Import{sdkImport},
		Decls:   decls,
	}
}

// instantiateDecls declares the init parameter codec, when the contract has
// an init parameter schema, and instantiate<Contract>.
func (g *generator) instantiateDecls(contractName string, moduleClientParam ts.Param) []ts.Decl {
	what := "initialization of a '" + contractName + "' smart contract instance"
	pascal := naming.PascalCase(contractName)

	p := g.parameterDecls(pascal, what, initParameter(g.contractSchema(contractName)))

	params := []ts.Param{
		moduleClientParam,
		{Name: transactionMetadataID, Type: "SDK.ContractTransactionMetadata", Doc: "Metadata related to constructing a transaction for a smart contract module."},
	}
	if p.arg != nil {
		params = append(params, *p.arg)
	}
	params = append(params, ts.Param{Name: signerID, Type: "SDK.AccountSigner", Doc: "The signer of the update contract transaction."})

	fn := &ts.Func{
		Docs: []string{
			"Send transaction for instantiating a new '" + contractName + "' smart contract instance.",
			"@throws If failing to communicate with the concordium node.",
		},
		Name:       "instantiate" + pascal,
		Params:     params,
		Returns:    "Promise<SDK.TransactionHash.Type>",
		ReturnsDoc: "Hash of the submitted transaction.",
		Body: []string{
			"return " + call("SDK.ModuleClient.createAndSendInitTransaction",
				moduleClientID+"."+internalModuleClientID,
				"SDK.ContractName.fromStringUnchecked("+naming.Quote(contractName)+")",
				transactionMetadataID,
				p.value,
				signerID,
			) + ";",
		},
		Exported: true,
	}
	return append(p.decls, fn)
}
