package wasm

import (
	"github.com/Valkyrja-Design/smol-wasm/errors"
)

// Sentinel errors for validation failures.
var (
	ErrMagicMismatch      = &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindMagicMismatch}
	ErrUnsupportedVersion = &errors.Error{Phase: errors.PhaseValidate, Kind: errors.KindUnsupportedVersion}
)

// Validate applies the preamble policy the structural decoder leaves to
// callers: the magic must be "\x00asm" and the version must be 1.
//
// Type indices in the function section are not range-checked here.
func (m *Module) Validate() error {
	if m.Magic != Magic {
		return errors.New(errors.PhaseValidate, errors.KindMagicMismatch).
			Offset(0).
			Value(m.Magic).
			Detail("magic %q, expected %q", m.Magic, Magic).
			Build()
	}
	if m.Version != Version {
		return errors.New(errors.PhaseValidate, errors.KindUnsupportedVersion).
			Offset(len(Magic)).
			Value(m.Version).
			Detail("version %d, expected %d", m.Version, Version).
			Build()
	}
	return nil
}

// DecodeAndValidate decodes a module and validates it.
// This is a convenience function combining DecodeBytes and Validate.
func DecodeAndValidate(label string, data []byte) (*Module, error) {
	m, err := DecodeBytes(label, data)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Locate(err, label, errors.NoOffset)
	}
	return m, nil
}
