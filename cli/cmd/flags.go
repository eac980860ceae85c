// Package cmd provides CLI commands for the hashcloud binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags.
var (
	// ConfigFlag points at a hashcloud.yaml file. When absent, the file is
	// looked up in the working directory and may be missing entirely.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to hashcloud.yaml",
	}

	// APIURLFlag overrides the config file's api_url.
	APIURLFlag = &cli.StringFlag{
		Name:  "api-url",
		Usage: "Base URL of the Hash Cloud API",
	}

	// KeyfileFlag overrides the config file's keyfile.
	KeyfileFlag = &cli.StringFlag{
		Name:    "keyfile",
		Aliases: []string{"k"},
		Usage:   "Path to the hex-encoded signing key",
	}

	// CacheFlag overrides the config file's signature_cache.
	CacheFlag = &cli.StringFlag{
		Name:  "signature-cache",
		Usage: "Path to the persisted list-signature cache",
	}

	// TimeoutFlag overrides the config file's timeout.
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "HTTP request timeout",
	}

	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for the read-only list command.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (list only)",
	}
)

// ConnectionFlags returns the flags every command that talks to the
// service accepts.
func ConnectionFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		APIURLFlag,
		KeyfileFlag,
		CacheFlag,
		TimeoutFlag,
	}
}

// OutputFlags returns the rendering flags. --tui is included everywhere
// so unsupported commands can reject it with an explicit message instead
// of a generic "flag not defined" error.
func OutputFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		TUIFlag,
	}
}
