// Package schema models Concordium smart contract schemas.
//
// A schema describes the shape of contract parameters, return values, errors
// and events. Type is a closed union of the schema variants; the package
// decodes and encodes the binary schema format and parses whole module
// schemas into ordered contract and entrypoint lists.
//
//	mod, err := schema.ParseRawModuleSchema(schema.RawModuleSchema{
//		Versioned: true,
//		Buffer:    data,
//	})
//	for _, c := range mod.Contracts {
//		for _, ep := range c.Receive {
//			fmt.Println(c.Name, ep.Name, schema.Describe(ep.Function.Parameter))
//		}
//	}
package schema
