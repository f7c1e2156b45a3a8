package binary

import (
	"encoding/binary"

	"github.com/Valkyrja-Design/smol-wasm/errors"
)

// maxVarint32Len is the longest valid unsigned LEB128 encoding of a uint32.
const maxVarint32Len = 5

// Cursor is a forward-only reader over an immutable byte buffer.
// A failed read leaves the position unchanged.
type Cursor struct {
	label string
	data  []byte
	pos   int
}

// NewCursor creates a Cursor over data. The label is attached to every error.
func NewCursor(label string, data []byte) *Cursor {
	return &Cursor{label: label, data: data}
}

// Label returns the diagnostic label of the input.
func (c *Cursor) Label() string {
	return c.label
}

// Position returns the current byte position.
func (c *Cursor) Position() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// ReadByte reads a single byte and advances the position.
func (c *Cursor) ReadByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, c.eof(1)
	}
	b := c.data[c.pos]
	c.pos++
	return b, nil
}

// PeekByte returns the byte at the current position without advancing.
func (c *Cursor) PeekByte() (byte, error) {
	if c.Remaining() < 1 {
		return 0, c.eof(1)
	}
	return c.data[c.pos], nil
}

// ReadExact reads exactly n bytes. The returned slice aliases the buffer
// and must not be modified.
func (c *Cursor) ReadExact(n int) ([]byte, error) {
	if n < 0 || c.Remaining() < n {
		return nil, c.eof(n)
	}
	buf := c.data[c.pos : c.pos+n : c.pos+n]
	c.pos += n
	return buf, nil
}

// Skip advances the position by n bytes.
func (c *Cursor) Skip(n int) error {
	_, err := c.ReadExact(n)
	return err
}

// ReadU32LE reads a little-endian uint32 (fixed 4 bytes).
func (c *Cursor) ReadU32LE() (uint32, error) {
	buf, err := c.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadU32 reads an unsigned LEB128 encoded uint32 and advances by the
// number of bytes it occupies.
func (c *Cursor) ReadU32() (uint32, error) {
	start := c.pos
	var result uint32
	var shift uint
	for i := 0; ; i++ {
		if start+i >= len(c.data) {
			return 0, errors.InvalidVarint(c.label, start, "unterminated varint",
				errors.UnexpectedEOF(c.label, start+i, 1, 0))
		}
		b := c.data[start+i]
		if i == maxVarint32Len-1 && b > 0x0f {
			// the fifth byte holds the top 4 bits and must terminate
			return 0, errors.New(errors.PhaseDecode, errors.KindInvalidVarint).
				Label(c.label).
				Offset(start).
				Value(b).
				Detail("varint overflows 32 bits").
				Build()
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			c.pos = start + i + 1
			return result, nil
		}
		shift += 7
	}
}

func (c *Cursor) eof(need int) error {
	return errors.UnexpectedEOF(c.label, c.pos, need, c.Remaining())
}
