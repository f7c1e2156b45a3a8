package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	logFormat  string
	debug      bool
	colorMode  string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file (default $XDG_CONFIG_HOME/smol-wasm/config.yaml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (console, json)",
			Value:       "console",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "colorize output (auto, always, never)",
			Value:       "auto",
			Destination: &colorMode,
		},
	}
}

// decodeFlags are shared by every subcommand that decodes a module.
func decodeFlags(strictSize, skipUnknown *bool, skipDefault bool) []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "strict-size",
			Usage:       "fail when a section body does not match its declared size",
			Value:       true,
			Destination: strictSize,
		},
		&cli.BoolFlag{
			Name:        "skip-unknown",
			Usage:       "skip sections without a decoder instead of stopping",
			Value:       skipDefault,
			Destination: skipUnknown,
		},
	}
}
