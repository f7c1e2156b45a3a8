// Package errors provides structured error types for the smol-wasm decoder.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the input label, the byte offset, the decode path and the
// offending value, so a caller can print a diagnostic without re-reading the input.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindInvalidValueType).
//		Label("module.wasm").
//		Offset(12).
//		Path("type", "0", "params", "1").
//		Value(byte(0x7d)).
//		Detail("invalid value type 0x%02x", 0x7d).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.TooShort("module.wasm", 3, 8)
//	err := errors.UnexpectedEOF("module.wasm", 10, 4, 2)
//
// All errors implement the standard error interface and support errors.Is/As.
// Is matches on Phase and Kind only.
package errors
