// Package clientgen assembles typed TypeScript clients for a smart contract
// module.
//
// Generation reads three inputs from a Source: the module interface (which
// contracts and entrypoints exist), the module reference and the embedded
// schema. The inputs are fetched concurrently and joined before any code is
// built; a failed fetch aborts the run and nothing is returned.
//
// The output is one module file and one file per contract:
//
//	<out>.ts             moduleReference, <Out>Module client, instantiate<Contract>
//	<out>_<contract>.ts  <Contract>Contract client, send<Ep>, dryRun<Ep>,
//	                     parseReturnValue<Ep>, parseErrorMessage<Ep>, parseEvent
//
// Where a schema describes a parameter, return value, error or event, the
// declarations use the native types and converters produced by the
// transcoder. Without a schema the functions take and forward raw
// SDK.Parameter.Type values.
//
// Entrypoints are generated strictly in declaration order, and progress is
// reported after each one through Options.OnProgress.
package clientgen
