package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Valkyrja-Design/smol-wasm/wasm"
)

// signatureCheck is the outcome of comparing one exported function.
type signatureCheck struct {
	Name    string
	Decoded string
	Runtime string
	Skipped string
	Index   uint32
	Match   bool
}

func verifyCmd() *cli.Command {
	var (
		strictSize  bool
		skipUnknown bool
	)

	return &cli.Command{
		Name:      "verify",
		Usage:     "Cross-check decoded signatures against the wazero compiler",
		ArgsUsage: "<file>",
		Flags:     decodeFlags(&strictSize, &skipUnknown, true),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cmd, formatText, strictSize, skipUnknown)
			if err != nil {
				return err
			}
			defer s.close()
			return runVerify(ctx, os.Stdout, s, path)
		},
	}
}

func runVerify(ctx context.Context, w io.Writer, s *session, path string) error {
	m, data, err := s.decodeFile(path)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	checks, err := verifySignatures(ctx, data, m)
	if err != nil {
		return err
	}

	p := newPalette(w, s.color)
	var mismatches int
	for _, c := range checks {
		switch {
		case c.Skipped != "":
			fmt.Fprintf(w, "skip  %s: %s\n", c.Name, p.help.Render(c.Skipped))
		case c.Match:
			fmt.Fprintf(w, "ok    %s %s\n", c.Name, p.sig.Render(c.Decoded))
		default:
			mismatches++
			fmt.Fprintf(w, "FAIL  %s decoded %s, wazero %s\n",
				c.Name, p.invalid.Render(c.Decoded), p.sig.Render(c.Runtime))
		}
	}

	s.log.Debug("verify finished",
		zap.String("file", path),
		zap.Int("checked", len(checks)),
		zap.Int("mismatches", mismatches))

	if mismatches > 0 {
		return fmt.Errorf("verify: %d of %d exported signatures disagree with wazero", mismatches, len(checks))
	}
	return nil
}

// verifySignatures compiles data with wazero and compares the signature of
// every exported function against the decoded module. Results are sorted by
// export name.
func verifySignatures(ctx context.Context, data []byte, m *wasm.Module) ([]signatureCheck, error) {
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("wazero compile: %w", err)
	}
	defer compiled.Close(ctx)

	// Exported indices cover the whole function index space; imported
	// functions come first and have no entry in the function section.
	imported := uint32(len(compiled.ImportedFunctions()))

	exports := compiled.ExportedFunctions()
	checks := make([]signatureCheck, 0, len(exports))
	for name, def := range exports {
		c := signatureCheck{
			Name:    name,
			Index:   def.Index(),
			Runtime: runtimeSignature(def.ParamTypes(), def.ResultTypes()),
		}

		switch {
		case def.Index() < imported:
			c.Skipped = "imported function"
		case int(def.Index()-imported) >= m.NumFuncs():
			c.Skipped = "not in decoded function section"
		default:
			sig, err := m.FuncSignature(int(def.Index() - imported))
			if err != nil {
				c.Decoded = "<invalid type index>"
				break
			}
			c.Decoded = sig.String()
			c.Match = sameSignature(sig, def.ParamTypes(), def.ResultTypes())
		}
		checks = append(checks, c)
	}

	sort.Slice(checks, func(i, j int) bool { return checks[i].Name < checks[j].Name })
	return checks, nil
}

// sameSignature compares by encoding byte; wazero's api.ValueType uses the
// binary format values.
func sameSignature(ft wasm.FuncType, params, results []api.ValueType) bool {
	return sameTypes(ft.Params, params) && sameTypes(ft.Results, results)
}

func sameTypes(decoded []wasm.ValueType, rt []api.ValueType) bool {
	if len(decoded) != len(rt) {
		return false
	}
	for i := range decoded {
		if byte(decoded[i]) != byte(rt[i]) {
			return false
		}
	}
	return true
}

func runtimeSignature(params, results []api.ValueType) string {
	return "(" + joinTypes(params) + ") -> (" + joinTypes(results) + ")"
}

func joinTypes(vts []api.ValueType) string {
	names := make([]string, len(vts))
	for i, vt := range vts {
		names[i] = api.ValueTypeName(vt)
	}
	return strings.Join(names, ", ")
}
