package wasm

import (
	"strconv"

	"github.com/Valkyrja-Design/smol-wasm/errors"
	"github.com/Valkyrja-Design/smol-wasm/wasm/internal/binary"
)

// sectionHeader is the code and declared size that precede every section body.
type sectionHeader struct {
	code   SectionCode
	size   uint32
	offset int // position of the code byte
}

// readSectionHeader consumes the header only when the next section is want.
// ok is false, with no bytes consumed, when a different section follows.
func readSectionHeader(c *binary.Cursor, want SectionCode) (hdr sectionHeader, ok bool, err error) {
	hdr.offset = c.Position()
	b, err := c.PeekByte()
	if err != nil {
		return hdr, false, err
	}
	code, err := ParseSectionCode(b)
	if err != nil {
		return hdr, false, errors.Locate(err, c.Label(), hdr.offset)
	}
	if code != want {
		return hdr, false, nil
	}
	if _, err := c.ReadByte(); err != nil {
		return hdr, false, err
	}
	size, err := c.ReadU32()
	if err != nil {
		return hdr, false, errors.WithPath(err, code.String(), "size")
	}
	hdr.code = code
	hdr.size = size
	return hdr, true, nil
}

// readCount reads an element count. The returned capacity hint is bounded by
// the remaining input, since every element takes at least one byte.
func readCount(c *binary.Cursor) (count uint32, capHint int, err error) {
	count, err = c.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	capHint = c.Remaining()
	if uint64(count) < uint64(capHint) {
		capHint = int(count)
	}
	return count, capHint, nil
}

// checkSize compares the bytes consumed by a section body with its header.
func checkSize(c *binary.Cursor, hdr sectionHeader, bodyStart int) error {
	consumed := c.Position() - bodyStart
	if uint64(consumed) != uint64(hdr.size) {
		return errors.WithPath(
			errors.SectionSizeMismatch(c.Label(), hdr.offset, hdr.size, uint32(consumed)),
			hdr.code.String())
	}
	return nil
}

// decodeTypeSection decodes a type section at the cursor.
// It returns nil, nil when the next section is not a type section.
func decodeTypeSection(c *binary.Cursor, opts DecodeOptions) (*TypeSection, error) {
	hdr, ok, err := readSectionHeader(c, SectionIDType)
	if err != nil || !ok {
		return nil, err
	}
	bodyStart := c.Position()

	count, capHint, err := readCount(c)
	if err != nil {
		return nil, errors.WithPath(err, "type", "count")
	}

	types := make([]FuncType, 0, capHint)
	for i := uint32(0); i < count; i++ {
		ft, err := decodeFuncType(c)
		if err != nil {
			return nil, errors.WithPath(err, "type", strconv.FormatUint(uint64(i), 10))
		}
		types = append(types, ft)
	}

	if opts.CheckSectionSize {
		if err := checkSize(c, hdr, bodyStart); err != nil {
			return nil, err
		}
	}

	return &TypeSection{
		Code:      hdr.code,
		Size:      hdr.size,
		FuncTypes: types,
	}, nil
}

// decodeFuncSection decodes a function section at the cursor.
// It returns nil, nil when the next section is not a function section.
func decodeFuncSection(c *binary.Cursor, opts DecodeOptions) (*FuncSection, error) {
	hdr, ok, err := readSectionHeader(c, SectionIDFunction)
	if err != nil || !ok {
		return nil, err
	}
	bodyStart := c.Position()

	count, capHint, err := readCount(c)
	if err != nil {
		return nil, errors.WithPath(err, "function", "count")
	}

	indices := make([]uint32, 0, capHint)
	for i := uint32(0); i < count; i++ {
		idx, err := c.ReadU32()
		if err != nil {
			return nil, errors.WithPath(err, "function", strconv.FormatUint(uint64(i), 10))
		}
		indices = append(indices, idx)
	}

	if opts.CheckSectionSize {
		if err := checkSize(c, hdr, bodyStart); err != nil {
			return nil, err
		}
	}

	return &FuncSection{
		Code:        hdr.code,
		Size:        hdr.size,
		TypeIndices: indices,
	}, nil
}

// decodeFuncType decodes one function type: marker, params, results.
func decodeFuncType(c *binary.Cursor) (FuncType, error) {
	offset := c.Position()
	marker, err := c.ReadByte()
	if err != nil {
		return FuncType{}, err
	}
	if marker != FuncTypeMarker {
		return FuncType{}, errors.InvalidTypeMarker(c.Label(), offset, marker, FuncTypeMarker)
	}

	params, err := decodeValueTypes(c)
	if err != nil {
		return FuncType{}, errors.WithPath(err, "params")
	}
	results, err := decodeValueTypes(c)
	if err != nil {
		return FuncType{}, errors.WithPath(err, "results")
	}
	return FuncType{Params: params, Results: results}, nil
}

// decodeValueTypes decodes a count-prefixed list of value types.
func decodeValueTypes(c *binary.Cursor) ([]ValueType, error) {
	count, capHint, err := readCount(c)
	if err != nil {
		return nil, errors.WithPath(err, "count")
	}
	types := make([]ValueType, 0, capHint)
	for i := uint32(0); i < count; i++ {
		offset := c.Position()
		b, err := c.ReadByte()
		if err != nil {
			return nil, errors.WithPath(err, strconv.FormatUint(uint64(i), 10))
		}
		vt, err := ParseValueType(b)
		if err != nil {
			return nil, errors.WithPath(errors.Locate(err, c.Label(), offset), strconv.FormatUint(uint64(i), 10))
		}
		types = append(types, vt)
	}
	return types, nil
}

// skipSection consumes the header and body of whatever section is next.
func skipSection(c *binary.Cursor, code SectionCode) (sectionHeader, error) {
	hdr, _, err := readSectionHeader(c, code)
	if err != nil {
		return hdr, err
	}
	if uint64(hdr.size) > uint64(c.Remaining()) {
		return hdr, errors.WithPath(
			errors.UnexpectedEOF(c.Label(), c.Position(), int(hdr.size), c.Remaining()),
			code.String())
	}
	if err := c.Skip(int(hdr.size)); err != nil {
		return hdr, err
	}
	return hdr, nil
}
