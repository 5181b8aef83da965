// Package cmd provides CLI commands for the fillctl binary.
package cmd

import "github.com/urfave/cli/v2"

// Shared flags.
var (
	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}

	// TUIFlag enables Bubble Tea interactive mode.
	// Only valid for inspect and decode --stats.
	TUIFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Enable interactive TUI mode (inspect, decode --stats only)",
	}

	// DebugFlag enables debug logging and detailed response descriptions.
	DebugFlag = &cli.BoolFlag{
		Name:    "debug",
		Usage:   "Enable debug logging",
		EnvVars: []string{"FILLCTL_DEBUG"},
	}

	// RawFlag switches payload I/O from length-prefixed frames to a single
	// bare payload.
	RawFlag = &cli.BoolFlag{
		Name:  "raw",
		Usage: "Read or write one bare payload instead of length-prefixed frames",
	}
)

// ReadOnlyFlags returns the shared flags for all rendering commands.
// Includes --tui so that unsupported commands can provide explicit error messages
// instead of generic "flag not defined" errors.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		FormatFlag,
		NoColorFlag,
		TUIFlag,
		DebugFlag,
	}
}

// PayloadFlags returns ReadOnlyFlags plus --raw.
func PayloadFlags() []cli.Flag {
	return append(ReadOnlyFlags(), RawFlag)
}
