package main

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Valkyrja-Design/smol-wasm/errors"
	"github.com/Valkyrja-Design/smol-wasm/wasm"
)

// Config represents the wasminspect configuration file
// (~/.config/smol-wasm/config.yaml). Pointer fields distinguish "not set"
// from zero values.
type Config struct {
	Format              string `yaml:"format"`
	Color               string `yaml:"color"`
	LogLevel            string `yaml:"log_level"`
	LogFormat           string `yaml:"log_format"`
	CheckSectionSize    *bool  `yaml:"check_section_size"`
	SkipUnknownSections *bool  `yaml:"skip_unknown_sections"`
}

// settings are the effective values after merging flags and config.
type settings struct {
	format      string
	color       string
	logLevel    string
	logFormat   string
	strictSize  bool
	skipUnknown bool
}

// flagSetter reports whether a flag was given on the command line.
// *cli.Command satisfies it.
type flagSetter interface {
	IsSet(name string) bool
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "smol-wasm", "config.yaml")
}

// loadConfig reads the config file at path, or the default location when
// path is empty. A missing default file yields a zero Config; a missing
// explicit file is an error.
func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = configPath()
		if path == "" {
			return Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindIO, err, "read config "+path)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "parse config "+path)
	}
	return cfg, nil
}

// applyConfig applies config file defaults to s when the corresponding
// flag was not explicitly set.
func applyConfig(c flagSetter, cfg Config, s *settings) {
	if cfg.Format != "" && !c.IsSet("format") {
		s.format = cfg.Format
	}
	if cfg.Color != "" && !c.IsSet("color") {
		s.color = cfg.Color
	}
	if cfg.LogLevel != "" && !c.IsSet("log-level") && !c.IsSet("debug") {
		s.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		s.logFormat = cfg.LogFormat
	}
	if cfg.CheckSectionSize != nil && !c.IsSet("strict-size") {
		s.strictSize = *cfg.CheckSectionSize
	}
	if cfg.SkipUnknownSections != nil && !c.IsSet("skip-unknown") {
		s.skipUnknown = *cfg.SkipUnknownSections
	}
}

func (s settings) validate() error {
	switch s.format {
	case "", formatText, formatJSON, formatYAML:
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown format "+s.format+", expected text, json or yaml")
	}
	switch s.color {
	case "", "auto", "always", "never":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown color mode "+s.color+", expected auto, always or never")
	}
	switch s.logFormat {
	case "", "console", "json":
	default:
		return errors.InvalidInput(errors.PhaseConfig, "unknown log format "+s.logFormat+", expected console or json")
	}
	return nil
}

func (s settings) decodeOptions(log *zap.Logger) wasm.DecodeOptions {
	opts := wasm.DefaultDecodeOptions()
	opts.Logger = log
	opts.CheckSectionSize = s.strictSize
	opts.SkipUnknownSections = s.skipUnknown
	return opts
}

// newLogger builds a zap logger writing to stderr.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "log level "+level)
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
