package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // reading the source bytes
	PhaseDecode   Phase = "decode"   // structural decoding
	PhaseValidate Phase = "validate" // caller-level policy checks
	PhaseLookup   Phase = "lookup"   // accessor lookups on a decoded module
	PhaseConfig   Phase = "config"   // tool configuration
)

// Kind categorizes the error
type Kind string

const (
	KindIO                  Kind = "io"
	KindTooShort            Kind = "too_short"
	KindInvalidMagic        Kind = "invalid_magic"
	KindUnexpectedEOF       Kind = "unexpected_eof"
	KindInvalidVarint       Kind = "invalid_varint"
	KindUnknownSectionCode  Kind = "unknown_section_code"
	KindInvalidTypeMarker   Kind = "invalid_type_marker"
	KindInvalidValueType    Kind = "invalid_value_type"
	KindSectionSizeMismatch Kind = "section_size_mismatch"
	KindMagicMismatch       Kind = "magic_mismatch"
	KindUnsupportedVersion  Kind = "unsupported_version"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindInvalidInput        Kind = "invalid_input"
)

// NoOffset marks an error that is not tied to a byte position.
const NoOffset = -1

// Error is the structured error type returned by every decode step.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Label  string
	Detail string
	Path   []string
	Offset int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Label != "" {
		b.WriteString(" in ")
		b.WriteString(e.Label)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 {
		b.WriteString(" (offset ")
		b.WriteString(strconv.Itoa(e.Offset))
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Label sets the diagnostic label of the input
func (b *Builder) Label(label string) *Builder {
	b.err.Label = label
	return b
}

// Offset sets the byte offset the error refers to
func (b *Builder) Offset(off int) *Builder {
	b.err.Offset = off
	return b
}

// Path sets the decode path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// WithPath prepends path segments to err when it is an *Error.
// Other errors are returned unchanged.
func WithPath(err error, segs ...string) error {
	e, ok := err.(*Error)
	if !ok || len(segs) == 0 {
		return err
	}
	path := make([]string, 0, len(segs)+len(e.Path))
	path = append(path, segs...)
	e.Path = append(path, e.Path...)
	return e
}

// Locate fills in the label and offset of err when it is an *Error that
// does not carry them yet. Other errors are returned unchanged.
func Locate(err error, label string, offset int) error {
	e, ok := err.(*Error)
	if !ok {
		return err
	}
	if e.Label == "" {
		e.Label = label
	}
	if e.Offset == NoOffset {
		e.Offset = offset
	}
	return e
}

// Convenience constructors for the decode error taxonomy

// IO creates an error for a source that could not produce bytes
func IO(label string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindIO,
		Label:  label,
		Offset: NoOffset,
		Detail: "read source",
		Cause:  cause,
	}
}

// TooShort creates an error for input shorter than the preamble
func TooShort(label string, have, want int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTooShort,
		Label:  label,
		Offset: have,
		Detail: fmt.Sprintf("expected at least %d bytes, found %d", want, have),
		Value:  have,
	}
}

// InvalidMagic creates an error for magic bytes that are not valid text
func InvalidMagic(label string, magic []byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidMagic,
		Label:  label,
		Offset: 0,
		Detail: fmt.Sprintf("magic bytes %x are not valid UTF-8", magic),
		Value:  magic,
	}
}

// UnexpectedEOF creates an error for a read past the end of the buffer
func UnexpectedEOF(label string, offset, need, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnexpectedEOF,
		Label:  label,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d remaining", need, remaining),
	}
}

// InvalidVarint creates an error for a malformed LEB128 value
func InvalidVarint(label string, offset int, detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidVarint,
		Label:  label,
		Offset: offset,
		Detail: detail,
		Cause:  cause,
	}
}

// UnknownSectionCode creates an error for a byte outside the section code set
func UnknownSectionCode(b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnknownSectionCode,
		Offset: NoOffset,
		Detail: fmt.Sprintf("unknown section code 0x%02x", b),
		Value:  b,
	}
}

// InvalidTypeMarker creates an error for a function type without its marker byte
func InvalidTypeMarker(label string, offset int, got, want byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidTypeMarker,
		Label:  label,
		Offset: offset,
		Detail: fmt.Sprintf("expected function type marker 0x%02x, got 0x%02x", want, got),
		Value:  got,
	}
}

// InvalidValueType creates an error for a byte outside the value type set
func InvalidValueType(b byte) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidValueType,
		Offset: NoOffset,
		Detail: fmt.Sprintf("invalid value type 0x%02x, expected one of {0x7f, 0x7e}", b),
		Value:  b,
	}
}

// SectionSizeMismatch creates an error for a section body whose length disagrees with its header
func SectionSizeMismatch(label string, offset int, declared, consumed uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindSectionSizeMismatch,
		Label:  label,
		Offset: offset,
		Detail: fmt.Sprintf("declared size %d, consumed %d", declared, consumed),
		Value:  consumed,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Offset: NoOffset,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}
