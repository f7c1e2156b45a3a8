package wasm

import (
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Valkyrja-Design/smol-wasm/errors"
	"github.com/Valkyrja-Design/smol-wasm/wasm/internal/binary"
)

// Sentinel errors for errors.Is. They match on phase and kind only, so any
// error returned by the decoder with the same kind satisfies them.
var (
	ErrIO                  = &errors.Error{Phase: errors.PhaseLoad, Kind: errors.KindIO}
	ErrTooShort            = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindTooShort}
	ErrInvalidMagic        = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidMagic}
	ErrUnexpectedEOF       = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnexpectedEOF}
	ErrInvalidVarint       = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidVarint}
	ErrUnknownSectionCode  = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnknownSectionCode}
	ErrInvalidTypeMarker   = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidTypeMarker}
	ErrInvalidValueType    = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindInvalidValueType}
	ErrSectionSizeMismatch = &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindSectionSizeMismatch}
)

// decodeState tracks the decoder's progress through the input.
type decodeState int

const (
	stateStart decodeState = iota
	statePreambleDecoded
	stateScanning
	stateDone
)

func (s decodeState) String() string {
	switch s {
	case stateStart:
		return "start"
	case statePreambleDecoded:
		return "preamble_decoded"
	case stateScanning:
		return "scanning"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// decoder owns the cursor and partial results of a single decode call.
type decoder struct {
	cur    *binary.Cursor
	log    *zap.Logger
	module Module
	opts   DecodeOptions
	state  decodeState
}

// DecodeBytes decodes a module from data with default options.
// The label is an opaque tag, such as a filename, embedded in errors.
func DecodeBytes(label string, data []byte) (*Module, error) {
	return DecodeBytesWithOptions(label, data, DefaultDecodeOptions())
}

// DecodeBytesWithOptions decodes a module from data.
// No partial module is returned on error.
func DecodeBytesWithOptions(label string, data []byte, opts DecodeOptions) (*Module, error) {
	d := &decoder{
		cur:   binary.NewCursor(label, data),
		log:   opts.logger().With(zap.String("label", label)),
		opts:  opts,
		state: stateStart,
	}
	return d.decode()
}

// DecodeFile reads the file at path and decodes it with default options.
func DecodeFile(path string) (*Module, error) {
	return DecodeFileWithOptions(path, DefaultDecodeOptions())
}

// DecodeFileWithOptions reads the file at path and decodes it, using the
// path as the label. Read failures are reported as ErrIO.
func DecodeFileWithOptions(path string, opts DecodeOptions) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.IO(path, err)
	}
	return DecodeBytesWithOptions(path, data, opts)
}

func (d *decoder) decode() (*Module, error) {
	if err := d.decodePreamble(); err != nil {
		d.log.Debug("decode failed", zap.Stringer("state", d.state), zap.Error(err))
		return nil, err
	}

	d.state = stateScanning
	for d.state == stateScanning {
		if err := d.scanNext(); err != nil {
			d.log.Debug("decode failed", zap.Stringer("state", d.state), zap.Error(err))
			return nil, err
		}
	}

	m := d.module
	return &m, nil
}

func (d *decoder) decodePreamble() error {
	if d.cur.Remaining() < PreambleSize {
		return errors.TooShort(d.cur.Label(), d.cur.Remaining(), PreambleSize)
	}

	magic, err := d.cur.ReadExact(len(Magic))
	if err != nil {
		return err
	}
	if !utf8.Valid(magic) {
		return errors.InvalidMagic(d.cur.Label(), magic)
	}

	version, err := d.cur.ReadU32LE()
	if err != nil {
		return err
	}

	d.module.Magic = string(magic)
	d.module.Version = version
	d.state = statePreambleDecoded
	d.log.Debug("preamble decoded",
		zap.String("magic", d.module.Magic),
		zap.Uint32("version", version))
	return nil
}

// scanNext dispatches the next section, or moves to stateDone when the
// input is exhausted or the next section is not one this decoder handles.
func (d *decoder) scanNext() error {
	if d.cur.Remaining() == 0 {
		d.finish("end of input")
		return nil
	}

	offset := d.cur.Position()
	b, err := d.cur.PeekByte()
	if err != nil {
		return err
	}
	code, err := ParseSectionCode(b)
	if err != nil {
		return errors.Locate(err, d.cur.Label(), offset)
	}

	switch {
	case code == SectionIDType && d.module.TypeSection == nil:
		sec, err := decodeTypeSection(d.cur, d.opts)
		if err != nil {
			return err
		}
		d.module.TypeSection = sec
		d.log.Debug("section decoded",
			zap.Stringer("code", code),
			zap.Int("offset", offset),
			zap.Uint32("size", sec.Size),
			zap.Int("count", len(sec.FuncTypes)))

	case code == SectionIDFunction && d.module.FuncSection == nil:
		sec, err := decodeFuncSection(d.cur, d.opts)
		if err != nil {
			return err
		}
		d.module.FuncSection = sec
		d.log.Debug("section decoded",
			zap.Stringer("code", code),
			zap.Int("offset", offset),
			zap.Uint32("size", sec.Size),
			zap.Int("count", len(sec.TypeIndices)))

	case d.opts.SkipUnknownSections && code != SectionIDType && code != SectionIDFunction:
		hdr, err := skipSection(d.cur, code)
		if err != nil {
			return err
		}
		d.log.Debug("section skipped",
			zap.Stringer("code", code),
			zap.Int("offset", offset),
			zap.Uint32("size", hdr.size))

	default:
		d.finish("section " + code.String() + " not dispatched")
	}
	return nil
}

func (d *decoder) finish(reason string) {
	d.state = stateDone
	d.log.Debug("scan stopped",
		zap.String("reason", reason),
		zap.Int("offset", d.cur.Position()),
		zap.Int("remaining", d.cur.Remaining()))
}
