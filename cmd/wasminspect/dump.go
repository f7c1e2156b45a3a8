package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/Valkyrja-Design/smol-wasm/errors"
)

func dumpCmd() *cli.Command {
	var (
		format      string
		strictSize  bool
		skipUnknown bool
		validate    bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "output format (text, json, yaml)",
			Value:       formatText,
			Destination: &format,
		},
		&cli.BoolFlag{
			Name:        "validate",
			Usage:       "check the magic and version after decoding",
			Destination: &validate,
		},
	}

	return &cli.Command{
		Name:      "dump",
		Usage:     "Decode a module and print its type and function sections",
		ArgsUsage: "<file>",
		Flags:     append(flags, decodeFlags(&strictSize, &skipUnknown, false)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path, err := fileArg(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cmd, format, strictSize, skipUnknown)
			if err != nil {
				return err
			}
			defer s.close()
			return runDump(os.Stdout, s, path, validate)
		},
	}
}

func runDump(w io.Writer, s *session, path string, validate bool) error {
	m, _, err := s.decodeFile(path)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if validate {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("validate: %w", errors.Locate(err, path, errors.NoOffset))
		}
	}

	s.log.Debug("module decoded",
		zap.String("file", path),
		zap.Int("types", len(m.FuncTypes())),
		zap.Int("functions", m.NumFuncs()))

	return render(w, newReport(path, m), s.settings.format, s.color)
}

func fileArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.InvalidInput(errors.PhaseConfig,
			fmt.Sprintf("%s expects exactly one module file, got %d arguments", cmd.Name, cmd.Args().Len()))
	}
	return cmd.Args().First(), nil
}
