package wasm

// WebAssembly binary format preamble.
const (
	// Magic is the expected 4-byte tag at the start of every module.
	Magic = "\x00asm"

	// Version is the supported binary format version.
	Version uint32 = 0x01

	// PreambleSize is the length of magic plus version.
	PreambleSize = 8
)

// Section IDs are the binary identifiers for each module section.
const (
	SectionIDCustom    SectionCode = 0x00 // Custom section
	SectionIDType      SectionCode = 0x01 // Type section (function signatures)
	SectionIDImport    SectionCode = 0x02 // Import section
	SectionIDFunction  SectionCode = 0x03 // Function section (type indices)
	SectionIDTable     SectionCode = 0x04 // Table section
	SectionIDMemory    SectionCode = 0x05 // Memory section
	SectionIDGlobal    SectionCode = 0x06 // Global section
	SectionIDExport    SectionCode = 0x07 // Export section
	SectionIDStart     SectionCode = 0x08 // Start section
	SectionIDElement   SectionCode = 0x09 // Element section
	SectionIDCode      SectionCode = 0x0a // Code section (function bodies)
	SectionIDData      SectionCode = 0x0b // Data section
	SectionIDDataCount SectionCode = 0x0c // Data count section (bulk memory)
)

// Value type encodings recognized by the decoder.
const (
	ValueTypeI32 ValueType = 0x7f // 32-bit integer
	ValueTypeI64 ValueType = 0x7e // 64-bit integer
)

// FuncTypeMarker introduces every function type in the type section.
const FuncTypeMarker byte = 0x60
