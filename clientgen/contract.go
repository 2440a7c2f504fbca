package clientgen

import (
	"time"

	"github.com/wippyai/contractgen/naming"
	"github.com/wippyai/contractgen/schema"
	"github.com/wippyai/contractgen/ts"
	"github.com/wippyai/contractgen/wasm"
)

const (
	contractNameID    = "contractName"
	contractClientID  = "contractClient"
	contractAddressID = "contractAddress"
	genericContractID = "genericContract"
	invokeMetadataID  = "invokeMetadata"
	invokeResultID    = "invokeResult"
	eventID           = "event"
)

// missingReturnValue is thrown by generated parsers when a V0 contract
// answers an invocation without a return value.
const missingReturnValue = "throw new Error('Unexpected missing \\'returnValue\\' in result of invocation. Client expected a V1 smart contract.');"

func initParameter(c *schema.Contract) schema.Type {
	if c == nil || c.Init == nil {
		return nil
	}
	return c.Init.Parameter
}

func entrypointFunction(c *schema.Contract, name string) *schema.Function {
	if c == nil {
		return nil
	}
	return c.Entrypoint(name)
}

// contractFile builds the unit of one contract. done is called after each
// entrypoint with the time spent on it.
func (g *generator) contractFile(contract *wasm.ContractInterface, done func(entrypoint string, spent time.Duration)) *ts.File {
	clientType := naming.PascalCase(contract.Name) + "Contract"
	quotedName := naming.Quote(contract.Name)
	contractSchema := g.contractSchema(contract.Name)

	grpcParam := ts.Param{Name: grpcClientID, Type: "SDK.ConcordiumGRPCClient", Doc: "The client used for contract invocations and updates."}
	addressParam := ts.Param{Name: contractAddressID, Type: "SDK.ContractAddress.Type", Doc: "Address of the contract instance."}
	blockHashParam := ts.Param{
		Name:     blockHashID,
		Type:     "SDK.BlockHash.Type",
		Optional: true,
		Doc:      "Hash of the block to check the information at. When not provided the last finalized block is used.",
	}
	newGeneric := "const " + genericContractID + " = new SDK.Contract(" + grpcClientID + ", " + contractAddressID + ", " + contractNameID + ");"
	newClient := "return new " + clientType + "(" + grpcClientID + ", " + contractAddressID + ", " + genericContractID + ");"

	decls := []ts.Decl{
		g.moduleRefDecl(),
		&ts.Const{
			Docs:     []string{"Name of the smart contract supported by this client."},
			Name:     contractNameID,
			Type:     "SDK.ContractName.Type",
			Value:    "SDK.ContractName.fromStringUnchecked(" + quotedName + ")",
			Exported: true,
		},
		&ts.Class{
			Docs: []string{"Smart contract client for a contract instance on chain."},
			Name: clientType,
			Props: []ts.Property{
				{Docs: []string{nominalDoc}, Modifiers: "private", Name: "__nominal", Type: "boolean", Init: "true"},
				{Docs: []string{"The gRPC connection used by this client."}, Modifiers: "public readonly", Name: grpcClientID, Type: "SDK.ConcordiumGRPCClient"},
				{Docs: []string{"The contract address used by this client."}, Modifiers: "public readonly", Name: contractAddressID, Type: "SDK.ContractAddress.Type"},
				{Docs: []string{"Generic contract client used internally."}, Modifiers: "public readonly", Name: genericContractID, Type: "SDK.Contract"},
			},
			Ctor: &ts.Constructor{
				Params: []ts.Param{
					{Name: grpcClientID, Type: "SDK.ConcordiumGRPCClient"},
					{Name: contractAddressID, Type: "SDK.ContractAddress.Type"},
					{Name: genericContractID, Type: "SDK.Contract"},
				},
				Body: []string{
					"this." + grpcClientID + " = " + grpcClientID + ";",
					"this." + contractAddressID + " = " + contractAddressID + ";",
					"this." + genericContractID + " = " + genericContractID + ";",
				},
			},
		},
		&ts.TypeAlias{Docs: []string{"Smart contract client for a contract instance on chain."}, Name: "Type", Type: clientType, Exported: true},
		&ts.Func{
			Docs: []string{
				"Construct an instance of `" + clientType + "` for interacting with a '" + contract.Name + "' contract on chain.",
				"Checking the information instance on chain.",
				"@throws If failing to communicate with the concordium node or if any of the checks fails.",
			},
			Name:    "create",
			Params:  []ts.Param{grpcParam, addressParam, blockHashParam},
			Returns: "Promise<" + clientType + ">",
			Body: []string{
				newGeneric,
				"await " + genericContractID + ".checkOnChain({ moduleReference: " + moduleRefID + ", blockHash: " + blockHashID + " });",
				newClient,
			},
			Exported: true,
			Async:    true,
		},
		&ts.Func{
			Docs: []string{
				"Construct the `" + clientType + "` for interacting with a '" + contract.Name + "' contract on chain.",
				"Without checking the instance information on chain.",
			},
			Name:     "createUnchecked",
			Params:   []ts.Param{grpcParam, addressParam},
			Returns:  clientType,
			Body:     []string{newGeneric, newClient},
			Exported: true,
		},
		&ts.Func{
			Docs: []string{
				"Check if the smart contract instance exists on the blockchain and whether it uses a matching contract name and module reference.",
				"@throws {SDK.RpcError} If failing to communicate with the concordium node or if any of the checks fails.",
			},
			Name: "checkOnChain",
			Params: []ts.Param{
				{Name: contractClientID, Type: clientType, Doc: "The client for a '" + contract.Name + "' smart contract instance on chain."},
				blockHashParam,
			},
			Returns: "Promise<void>",
			Body: []string{
				"return " + contractClientID + "." + genericContractID + ".checkOnChain({ moduleReference: " + moduleRefID + ", blockHash: " + blockHashID + " });",
			},
			Exported: true,
		},
	}

	if contractSchema != nil && contractSchema.Event != nil {
		decls = append(decls, g.eventDecls(contract.Name, contractSchema.Event)...)
	}

	for _, entrypoint := range contract.Entrypoints {
		start := time.Now()
		decls = append(decls, g.entrypointDecls(contract.Name, clientType, entrypoint, entrypointFunction(contractSchema, entrypoint))...)
		done(entrypoint, time.Since(start))
	}

	return &ts.File{
		Name:    g.outName + "_" + contract.Name,
		Imports: []ts.Import{sdkImport},
		Decls:   decls,
	}
}

func (g *generator) eventDecls(contractName string, event schema.Type) []ts.Decl {
	return []ts.Decl{
		&ts.TypeAlias{
			Docs:     []string{"Contract event type for the '" + contractName + "' contract."},
			Name:     "Event",
			Type:     g.nativeTypeOf(event),
			Exported: true,
		},
		&ts.Func{
			Docs: []string{"Parse the contract events logged by the '" + contractName + "' contract."},
			Name: "parseEvent",
			Params: []ts.Param{
				{Name: eventID, Type: "SDK.ContractEvent.Type", Doc: "The unparsed contract event."},
			},
			Returns:    "Event",
			ReturnsDoc: "The structured contract event.",
			Body:       g.decodeBody(event, "SDK.ContractEvent.parseWithSchemaTypeBase64("+eventID+", "+naming.Quote(base64Schema(event))+")"),
			Exported:   true,
		},
	}
}

// entrypointDecls declares the parameter codec, send and dry-run functions
// and the result parsers of one entrypoint. fn is nil when the schema does
// not describe the entrypoint.
func (g *generator) entrypointDecls(contractName, clientType, entrypoint string, fn *schema.Function) []ts.Decl {
	pascal := naming.PascalCase(entrypoint)
	what := "update transaction for '" + entrypoint + "' entrypoint of the '" + contractName + "' contract"
	entrypointName := "SDK.EntrypointName.fromStringUnchecked(" + naming.Quote(entrypoint) + ")"
	clientParam := ts.Param{Name: contractClientID, Type: clientType, Doc: "The client for a '" + contractName + "' smart contract instance on chain."}

	var paramSchema schema.Type
	if fn != nil {
		paramSchema = fn.Parameter
	}
	p := g.parameterDecls(pascal, what, paramSchema)
	decls := p.decls

	sendParams := []ts.Param{
		clientParam,
		{Name: transactionMetadataID, Type: "SDK.ContractTransactionMetadata", Doc: "Metadata related to constructing a transaction for a smart contract."},
	}
	dryRunParams := []ts.Param{clientParam}
	if p.arg != nil {
		sendParams = append(sendParams, *p.arg)
		dryRunParams = append(dryRunParams, *p.arg)
	}
	sendParams = append(sendParams, ts.Param{Name: signerID, Type: "SDK.AccountSigner", Doc: "The signer of the update contract transaction."})
	dryRunParams = append(dryRunParams,
		ts.Param{Name: invokeMetadataID, Type: "SDK.ContractInvokeMetadata", Default: "{}", Doc: "Optional additional metadata to provide when invoking the contract."},
		ts.Param{Name: blockHashID, Type: "SDK.BlockHash.Type", Optional: true, Doc: "Optional block hash allowing for dry-running the transaction at the end of a specific block."},
	)

	decls = append(decls,
		&ts.Func{
			Docs: []string{
				"Send an " + what + ".",
				"@throws If the entrypoint is not successfully invoked.",
			},
			Name:       "send" + pascal,
			Params:     sendParams,
			Returns:    "Promise<SDK.TransactionHash.Type>",
			ReturnsDoc: "Hash of the sent transaction.",
			Body: []string{
				"return " + call(contractClientID+"."+genericContractID+".createAndSendUpdateTransaction",
					entrypointName,
					"SDK.Parameter.toBuffer",
					transactionMetadataID,
					p.value,
					signerID,
				) + ";",
			},
			Exported: true,
		},
		&ts.Func{
			Docs: []string{
				"Dry-run an " + what + ".",
				"@throws {SDK.RpcError} If failing to communicate with the concordium node or if any of the checks fails.",
			},
			Name:       "dryRun" + pascal,
			Params:     dryRunParams,
			Returns:    "Promise<SDK.InvokeContractResult>",
			ReturnsDoc: "The result of invoking the smart contract instance.",
			Body: []string{
				"return " + call(contractClientID+"."+genericContractID+".dryRun.invokeMethod",
					entrypointName,
					invokeMetadataID,
					"SDK.Parameter.toBuffer",
					p.value,
					blockHashID,
				) + ";",
			},
			Exported: true,
		},
	)

	if fn == nil {
		return decls
	}
	if fn.ReturnValue != nil {
		decls = append(decls, g.resultDecls(
			"ReturnValue"+pascal,
			"Return value for dry-running "+what+".",
			"Get and parse the return value from dry-running "+what+". Returns undefined if the result is not successful.",
			"The structured return value or undefined if result was not a success.",
			fn.ReturnValue,
			[]string{
				"if (" + invokeResultID + ".tag !== 'success') {",
				"    return undefined;",
				"}",
			},
		)...)
	}
	if fn.Error != nil {
		decls = append(decls, g.resultDecls(
			"ErrorMessage"+pascal,
			"Error message for dry-running "+what+".",
			"Get and parse the error message from dry-running "+what+". Returns undefined if the result is not a failure.",
			"The structured error message or undefined if result was not a failure.",
			fn.Error,
			[]string{
				"if (" + invokeResultID + ".tag !== 'failure' || " + invokeResultID + ".reason.tag !== 'RejectedReceive') {",
				"    return undefined;",
				"}",
			},
		)...)
	}
	return decls
}

// resultDecls declares the type <name> and the parser parse<name> reading a
// value of type t from the return value of a dry-run. guard returns early
// when the outcome is not the expected one.
func (g *generator) resultDecls(name, typeDoc, funcDoc, returnsDoc string, t schema.Type, guard []string) []ts.Decl {
	body := append([]string(nil), guard...)
	body = append(body,
		"",
		"if ("+invokeResultID+".returnValue === undefined) {",
		"    "+missingReturnValue,
		"}",
		"",
	)
	body = append(body, g.decodeBody(t, "SDK.ReturnValue.parseWithSchemaTypeBase64("+invokeResultID+".returnValue, "+naming.Quote(base64Schema(t))+")")...)

	return []ts.Decl{
		&ts.TypeAlias{Docs: []string{typeDoc}, Name: name, Type: g.nativeTypeOf(t), Exported: true},
		&ts.Func{
			Docs: []string{funcDoc},
			Name: "parse" + name,
			Params: []ts.Param{
				{Name: invokeResultID, Type: "SDK.InvokeContractResult", Doc: "The result from dry-running the transaction."},
			},
			Returns:    name + " | undefined",
			ReturnsDoc: returnsDoc,
			Body:       body,
			Exported:   true,
		},
	}
}
