package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func section(code byte, body ...byte) []byte {
	return append([]byte{code, byte(len(body))}, body...)
}

func module(sections ...[]byte) []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	for _, s := range sections {
		out = append(out, s...)
	}
	return out
}

// addModule exports "add" (i32, i64) -> (i64) and "answer" () -> (i32).
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

// importModule imports env.log (i32) -> () and defines one function,
// "answer" () -> (i32). Both are exported.
func importModule() []byte {
	return module(
		section(0x01,
			0x02,
			0x60, 0x01, 0x7f, 0x00,
			0x60, 0x00, 0x01, 0x7f,
		),
		section(0x02,
			0x01,
			0x03, 'e', 'n', 'v', 0x03, 'l', 'o', 'g', 0x00, 0x00,
		),
		section(0x03, 0x01, 0x01),
		section(0x07,
			0x02,
			0x06, 'a', 'n', 's', 'w', 'e', 'r', 0x00, 0x01,
			0x03, 'l', 'o', 'g', 0x00, 0x00,
		),
		section(0x0a, 0x01, 0x04, 0x00, 0x41, 0x2a, 0x0b),
	)
}

// danglingModule decodes but references type 4 of a single declared type.
func danglingModule() []byte {
	return module(
		section(0x01, 0x01, 0x60, 0x00, 0x00),
		section(0x03, 0x02, 0x00, 0x04),
	)
}

func writeModule(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func testSession(format string) *session {
	return &session{
		log: zap.NewNop(),
		settings: settings{
			format:     format,
			strictSize: true,
		},
	}
}
