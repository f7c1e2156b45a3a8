package wasm_test

import (
	stderrors "errors"
	"testing"

	"github.com/Valkyrja-Design/smol-wasm/errors"
)

// encodeU32 is the unsigned LEB128 encoding used to build fixtures.
func encodeU32(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			return out
		}
	}
}

func preamble() []byte {
	return []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
}

// section builds code, LEB128 size, body.
func section(code byte, body ...byte) []byte {
	out := []byte{code}
	out = append(out, encodeU32(uint32(len(body)))...)
	return append(out, body...)
}

func module(sections ...[]byte) []byte {
	out := preamble()
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// addModule is a complete module accepted by a runtime:
//
//	type 0: (i32, i64) -> (i64)
//	type 1: () -> (i32)
//	func 0: type 0, exported as "add", returns its second param
//	func 1: type 1, exported as "answer", returns 42
func addModule() []byte {
	return module(
		section(0x01,
			0x02,
			0x60, 0x02, 0x7f, 0x7e, 0x01, 0x7e,
			0x60, 0x00, 0x01, 0x7f,
		),
		section(0x03, 0x02, 0x00, 0x01),
		section(0x07,
			0x02,
			0x03, 'a', 'd', 'd', 0x00, 0x00,
			0x06, 'a', 'n', 's', 'w', 'e', 'r', 0x00, 0x01,
		),
		section(0x0a,
			0x02,
			0x04, 0x00, 0x20, 0x01, 0x0b,
			0x04, 0x00, 0x41, 0x2a, 0x0b,
		),
	)
}

func requireKind(t *testing.T, err error, kind errors.Kind) *errors.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("expected *errors.Error, got %T (%v)", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("expected kind %s, got %s (%v)", kind, e.Kind, err)
	}
	return e
}
