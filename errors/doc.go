// Package errors provides structured error types for the bindings.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the export name, argument path, Go type and kind tag,
// the module's error code and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindEncoding).
//		Export("pedersen_compress").
//		Path("inputs_buffer", "[2]").
//		ABI("fr").
//		Detail("value exceeds field modulus").
//		Build()
//
// Callers classify failures with the sentinels, which match on kind only:
//
//	if errors.Is(err, bberrors.ErrUnknownExport) { ... }
//
// The kinds map one to one onto the failure taxonomy of the bindings:
// schema errors abort generation, encoding errors abort a single call
// before the module is touched, and the invoke-phase kinds report what
// went wrong while the module owned the call.
package errors
