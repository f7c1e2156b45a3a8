package wasm

import "github.com/Valkyrja-Design/smol-wasm/wasm/internal/binary"

// DecodeLEB128u decodes an unsigned LEB128 value from the start of data and
// returns the value with the number of bytes it occupied.
func DecodeLEB128u(data []byte) (uint32, int, error) {
	c := binary.NewCursor("#raw", data)
	v, err := c.ReadU32()
	if err != nil {
		return 0, 0, err
	}
	return v, c.Position(), nil
}
