package main

import (
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Valkyrja-Design/smol-wasm/errors"
	"github.com/Valkyrja-Design/smol-wasm/wasm"
)

// session carries the merged settings and logger for one subcommand run.
type session struct {
	log      *zap.Logger
	settings settings
	color    bool
}

func newSession(c flagSetter, format string, strictSize, skipUnknown bool) (*session, error) {
	s := settings{
		format:      format,
		color:       colorMode,
		logLevel:    logLevel,
		logFormat:   logFormat,
		strictSize:  strictSize,
		skipUnknown: skipUnknown,
	}
	if debug {
		s.logLevel = "debug"
	}

	cfg, err := loadConfig(configFile)
	if err != nil {
		return nil, err
	}
	applyConfig(c, cfg, &s)
	if err := s.validate(); err != nil {
		return nil, err
	}

	log, err := newLogger(s.logLevel, s.logFormat)
	if err != nil {
		return nil, err
	}
	log.Debug("settings resolved",
		zap.String("format", s.format),
		zap.Bool("strict_size", s.strictSize),
		zap.Bool("skip_unknown", s.skipUnknown))

	return &session{
		log:      log,
		settings: s,
		color:    useColor(s.color, os.Stdout),
	}, nil
}

func (s *session) decodeFile(path string) (*wasm.Module, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.IO(path, err)
	}
	m, err := wasm.DecodeBytesWithOptions(path, data, s.settings.decodeOptions(s.log))
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

func (s *session) close() {
	_ = s.log.Sync()
}

func useColor(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}
