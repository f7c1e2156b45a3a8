// Package smolwasm decodes the structure of WebAssembly binary modules.
//
// The decoder reads the 8-byte preamble and then the type and function
// sections, stopping at the first section it has no decoder for. It never
// executes code and fails fast on the first structural error.
//
// # Architecture Overview
//
//	smolwasm/
//	├── wasm/                Decode API: DecodeBytes, DecodeFile, Module
//	│   └── internal/binary/ Byte cursor and LEB128 reads
//	├── errors/              Structured error types with phase, kind, label and offset
//	└── cmd/wasminspect/     CLI: dump, verify against wazero, interactive browse
//
// # Quick Start
//
//	m, err := wasm.DecodeFile("add.wasm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := range m.NumFuncs() {
//	    sig, err := m.FuncSignature(i)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("func %d: %s\n", i, sig)
//	}
//
// # Error Handling
//
// Errors are *errors.Error values. Match them with errors.Is against the
// sentinels in package wasm:
//
//	if errors.Is(err, wasm.ErrUnexpectedEOF) {
//	    // input was truncated
//	}
//
// # Logging
//
// The wasm package logs through zap and is silent by default. Install a
// logger with wasm.SetLogger, or per call with DecodeOptions.Logger.
package smolwasm
