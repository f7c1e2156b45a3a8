// Package wasm decodes the structure of WebAssembly binary modules without
// executing them.
//
// The decoder makes a single forward pass over an in-memory buffer: the
// 8-byte preamble (magic and little-endian version), then zero or more
// sections. Type and function sections are decoded; the scan stops at the
// first section it has no decoder for, unless SkipUnknownSections is set.
// Instruction bodies, imports, exports, memories, tables and globals are
// never decoded.
//
// # Decoding
//
// Decode from memory or from a file:
//
//	m, err := wasm.DecodeBytes("#raw", data)
//	m, err := wasm.DecodeFile("module.wasm")
//
// The label is embedded in every error. Decoding fails on the first
// structural error and never returns a partial module.
//
// # Module Structure
//
//	module.Magic        string        // "\0asm" for a well-formed input
//	module.Version      uint32
//	module.TypeSection  *TypeSection  // nil when absent
//	module.FuncSection  *FuncSection  // nil when absent
//
// # Errors
//
// Every failure is an *errors.Error carrying the label, byte offset, decode
// path and offending value. Match kinds with the package sentinels:
//
//	if errors.Is(err, wasm.ErrInvalidValueType) { ... }
//
// # Validation
//
// Decode checks structure only. Validate applies caller-level policy: the
// magic must be "\0asm" and the version must be 1. Function type indices
// are not range-checked; FuncSignature reports a dangling index when it
// is resolved.
//
//	if err := m.Validate(); err != nil {
//	    log.Printf("invalid module: %v", err)
//	}
//
// # Concurrency
//
// Each decode call owns its cursor and results. Decodes of different
// buffers may run concurrently; a returned Module is never mutated by the
// package.
package wasm
