package wasm

import (
	"strconv"
	"strings"

	"github.com/Valkyrja-Design/smol-wasm/errors"
)

// ErrOutOfBounds matches failed index lookups on a decoded module.
var ErrOutOfBounds = &errors.Error{Phase: errors.PhaseLookup, Kind: errors.KindOutOfBounds}

// Module is the decoded structure of one binary input.
// A nil section pointer means the section was never matched.
type Module struct {
	TypeSection *TypeSection
	FuncSection *FuncSection
	Magic       string
	Version     uint32
}

// TypeSection holds the function types declared by the module, in declaration order.
type TypeSection struct {
	FuncTypes []FuncType
	Size      uint32 // declared body size in bytes
	Code      SectionCode
}

// FuncSection holds one type index per declared function.
// Indices are not range-checked during decode; FuncSignature reports
// dangling indices.
type FuncSection struct {
	TypeIndices []uint32
	Size        uint32
	Code        SectionCode
}

// FuncType represents a function signature with parameter and result types.
type FuncType struct {
	Params  []ValueType
	Results []ValueType
}

// String renders the signature as "(i32, i64) -> (i64)".
func (f FuncType) String() string {
	var b strings.Builder
	writeValueTypes(&b, f.Params)
	b.WriteString(" -> ")
	writeValueTypes(&b, f.Results)
	return b.String()
}

func writeValueTypes(b *strings.Builder, types []ValueType) {
	b.WriteByte('(')
	for i, t := range types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
}

// Equal reports whether two function types have the same params and results.
func (f FuncType) Equal(other FuncType) bool {
	return valueTypesEqual(f.Params, other.Params) && valueTypesEqual(f.Results, other.Results)
}

func valueTypesEqual(a, b []ValueType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// ValueType represents a WebAssembly value type.
// See constants.go for ValueTypeI32 and ValueTypeI64.
type ValueType byte

// ParseValueType converts a value-type byte, failing on anything the decoder
// does not recognize.
func ParseValueType(b byte) (ValueType, error) {
	switch v := ValueType(b); v {
	case ValueTypeI32, ValueTypeI64:
		return v, nil
	default:
		return 0, errors.InvalidValueType(b)
	}
}

func (v ValueType) String() string {
	switch v {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	default:
		return "unknown"
	}
}

// SectionCode identifies a module section.
type SectionCode byte

// ParseSectionCode converts a section-code byte, failing on bytes outside
// SectionIDCustom..SectionIDDataCount.
func ParseSectionCode(b byte) (SectionCode, error) {
	if b > byte(SectionIDDataCount) {
		return 0, errors.UnknownSectionCode(b)
	}
	return SectionCode(b), nil
}

var sectionNames = [...]string{
	SectionIDCustom:    "custom",
	SectionIDType:      "type",
	SectionIDImport:    "import",
	SectionIDFunction:  "function",
	SectionIDTable:     "table",
	SectionIDMemory:    "memory",
	SectionIDGlobal:    "global",
	SectionIDExport:    "export",
	SectionIDStart:     "start",
	SectionIDElement:   "element",
	SectionIDCode:      "code",
	SectionIDData:      "data",
	SectionIDDataCount: "datacount",
}

func (s SectionCode) String() string {
	if int(s) < len(sectionNames) {
		return sectionNames[s]
	}
	return "unknown"
}

// FuncTypes returns the declared function types, or nil without a type section.
func (m *Module) FuncTypes() []FuncType {
	if m.TypeSection == nil {
		return nil
	}
	return m.TypeSection.FuncTypes
}

// TypeIndices returns the function type indices, or nil without a function section.
func (m *Module) TypeIndices() []uint32 {
	if m.FuncSection == nil {
		return nil
	}
	return m.FuncSection.TypeIndices
}

// NumFuncs returns the number of functions declared by the function section.
func (m *Module) NumFuncs() int {
	return len(m.TypeIndices())
}

// FuncSignature resolves the signature of the i-th declared function.
func (m *Module) FuncSignature(i int) (FuncType, error) {
	indices := m.TypeIndices()
	if i < 0 || i >= len(indices) {
		return FuncType{}, errors.OutOfBounds(errors.PhaseLookup, []string{"function"}, i, len(indices))
	}
	types := m.FuncTypes()
	idx := indices[i]
	if uint64(idx) >= uint64(len(types)) {
		return FuncType{}, errors.OutOfBounds(errors.PhaseLookup,
			[]string{"function", strconv.Itoa(i), "type"}, int(idx), len(types))
	}
	return types[idx], nil
}
