// Package errors provides structured error types for contractgen.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries a field path into the decoded structure, a detail
// message and the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseParse, errors.KindInvalidData).
//		Path("contracts", "wccd", "receive").
//		Detail("unexpected tag %d", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidData(errors.PhaseParse, path, "unexpected size length tag")
//	err := errors.Load("read module", cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
