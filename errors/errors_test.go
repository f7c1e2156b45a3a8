package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
		excludes []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindInvalidValueType,
				Label:  "add.wasm",
				Path:   []string{"type", "0", "params", "1"},
				Offset: 14,
				Detail: "invalid value type 0x7d",
			},
			contains: []string{"[decode]", "invalid_value_type", "in add.wasm", "type.0.params.1", "offset 14", "0x7d"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase:  PhaseDecode,
				Kind:   KindTooShort,
				Offset: NoOffset,
			},
			contains: []string{"[decode]", "too_short"},
			excludes: []string{"offset", " in "},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindIO,
				Offset: NoOffset,
				Detail: "read source",
				Cause:  errors.New("permission denied"),
			},
			contains: []string{"[load]", "io", "read source", "caused by", "permission denied"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(msg, s) {
					t.Errorf("error message %q should not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseLoad,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidVarint,
		Label:  "x.wasm",
		Offset: 9,
	}

	if !err.Is(&Error{Phase: PhaseDecode, Kind: KindInvalidVarint}) {
		t.Error("Is should match same phase and kind")
	}

	if err.Is(&Error{Phase: PhaseValidate, Kind: KindInvalidVarint}) {
		t.Error("Is should not match different phase")
	}

	if err.Is(&Error{Phase: PhaseDecode, Kind: KindUnexpectedEOF}) {
		t.Error("Is should not match different kind")
	}

	target := &Error{Phase: PhaseDecode, Kind: KindInvalidVarint}
	if !errors.Is(err, target) {
		t.Error("errors.Is should match")
	}
}

func TestError_IsThroughCause(t *testing.T) {
	eof := UnexpectedEOF("x.wasm", 10, 1, 0)
	err := InvalidVarint("x.wasm", 8, "unterminated", eof)

	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindInvalidVarint}) {
		t.Error("outer kind should match")
	}
	if !errors.Is(err, &Error{Phase: PhaseDecode, Kind: KindUnexpectedEOF}) {
		t.Error("cause kind should match through Unwrap")
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseDecode, KindInvalidTypeMarker).
		Label("m.wasm").
		Offset(11).
		Path("type", "2").
		Value(byte(0x61)).
		Cause(cause).
		Detail("expected 0x%02x, got 0x%02x", 0x60, 0x61).
		Build()

	if err.Phase != PhaseDecode {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseDecode)
	}
	if err.Kind != KindInvalidTypeMarker {
		t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidTypeMarker)
	}
	if err.Label != "m.wasm" {
		t.Errorf("Label = %q, want m.wasm", err.Label)
	}
	if err.Offset != 11 {
		t.Errorf("Offset = %d, want 11", err.Offset)
	}
	if len(err.Path) != 2 || err.Path[0] != "type" || err.Path[1] != "2" {
		t.Errorf("Path = %v, want [type 2]", err.Path)
	}
	if err.Value != byte(0x61) {
		t.Errorf("Value = %v, want 0x61", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected 0x60, got 0x61" {
		t.Errorf("Detail = %q", err.Detail)
	}
}

func TestBuilder_DefaultOffset(t *testing.T) {
	err := New(PhaseConfig, KindInvalidInput).Build()
	if err.Offset != NoOffset {
		t.Errorf("Offset = %d, want NoOffset", err.Offset)
	}
}

func TestWithPath(t *testing.T) {
	err := InvalidValueType(0x7d)
	err.Path = []string{"params", "1"}

	got := WithPath(WithPath(err, "0"), "type")

	var e *Error
	if !errors.As(got, &e) {
		t.Fatalf("expected *Error, got %T", got)
	}
	want := "type.0.params.1"
	if strings.Join(e.Path, ".") != want {
		t.Errorf("Path = %v, want %s", e.Path, want)
	}

	plain := errors.New("plain")
	if WithPath(plain, "x") != plain {
		t.Error("WithPath should return non-structured errors unchanged")
	}
}

func TestLocate(t *testing.T) {
	err := Locate(InvalidValueType(0x7d), "m.wasm", 17)
	e := err.(*Error)
	if e.Label != "m.wasm" || e.Offset != 17 {
		t.Errorf("got label=%q offset=%d, want m.wasm/17", e.Label, e.Offset)
	}

	// existing location wins
	err = Locate(UnexpectedEOF("a.wasm", 3, 1, 0), "b.wasm", 99)
	e = err.(*Error)
	if e.Label != "a.wasm" || e.Offset != 3 {
		t.Errorf("got label=%q offset=%d, want a.wasm/3", e.Label, e.Offset)
	}

	plain := errors.New("plain")
	if Locate(plain, "x", 1) != plain {
		t.Error("Locate should return non-structured errors unchanged")
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("IO", func(t *testing.T) {
		cause := errors.New("no such file")
		err := IO("missing.wasm", cause)
		if err.Phase != PhaseLoad || err.Kind != KindIO {
			t.Errorf("got %v/%v", err.Phase, err.Kind)
		}
		if !errors.Is(err, cause) {
			t.Error("IO should wrap its cause")
		}
	})

	t.Run("TooShort", func(t *testing.T) {
		err := TooShort("#raw", 3, 8)
		if err.Kind != KindTooShort {
			t.Errorf("Kind = %v, want %v", err.Kind, KindTooShort)
		}
		if !strings.Contains(err.Detail, "8") || !strings.Contains(err.Detail, "3") {
			t.Errorf("Detail = %q, should mention both sizes", err.Detail)
		}
	})

	t.Run("InvalidMagic", func(t *testing.T) {
		err := InvalidMagic("#raw", []byte{0xff, 0xfe, 0x00, 0x01})
		if err.Kind != KindInvalidMagic {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidMagic)
		}
		if err.Offset != 0 {
			t.Errorf("Offset = %d, want 0", err.Offset)
		}
	})

	t.Run("UnknownSectionCode", func(t *testing.T) {
		err := UnknownSectionCode(0x2a)
		if err.Kind != KindUnknownSectionCode {
			t.Errorf("Kind = %v, want %v", err.Kind, KindUnknownSectionCode)
		}
		if err.Value != byte(0x2a) {
			t.Errorf("Value = %v, want 0x2a", err.Value)
		}
	})

	t.Run("InvalidTypeMarker", func(t *testing.T) {
		err := InvalidTypeMarker("#raw", 11, 0x61, 0x60)
		if err.Kind != KindInvalidTypeMarker {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidTypeMarker)
		}
		if err.Offset != 11 {
			t.Errorf("Offset = %d, want 11", err.Offset)
		}
	})

	t.Run("InvalidValueType", func(t *testing.T) {
		err := InvalidValueType(0x7d)
		if err.Kind != KindInvalidValueType {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidValueType)
		}
		if !strings.Contains(err.Detail, "0x7d") {
			t.Errorf("Detail = %q, should contain offending byte", err.Detail)
		}
	})

	t.Run("SectionSizeMismatch", func(t *testing.T) {
		err := SectionSizeMismatch("#raw", 8, 9, 7)
		if err.Kind != KindSectionSizeMismatch {
			t.Errorf("Kind = %v, want %v", err.Kind, KindSectionSizeMismatch)
		}
		if err.Value != uint32(7) {
			t.Errorf("Value = %v, want 7", err.Value)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseLookup, []string{"function", "0"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})
}
