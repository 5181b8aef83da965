package cmd

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/config"
	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/iox"
	"github.com/pithecene-io/fillwire/ipc"
	"github.com/pithecene-io/fillwire/log"
	"github.com/pithecene-io/fillwire/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUsage     = 1
	exitMalformed = 2
	exitIO        = 3
)

// toolName labels logs and metrics.
const toolName = "fillctl"

// NewApp assembles the fillctl application. The caller sets
// ExitErrHandler and the I/O streams.
func NewApp(commit string) *cli.App {
	return &cli.App{
		Name:    toolName,
		Usage:   "Build, encode and inspect fill responses",
		Version: fmt.Sprintf("%s (commit: %s)", types.Version, commit),
		Commands: []*cli.Command{
			BuildCommand(),
			EncodeCommand(),
			DecodeCommand(),
			InspectCommand(),
			VersionCommand(commit),
		},
	}
}

// exitCode classifies an error into a process exit code.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitSuccess
	case errors.Is(err, ipc.ErrMalformed), errors.Is(err, iox.ErrTooLarge):
		return exitMalformed
	case errors.Is(err, fill.ErrInvalidArgument),
		errors.Is(err, fill.ErrIllegalState),
		errors.Is(err, config.ErrInvalidManifest):
		return exitUsage
	default:
		return exitIO
	}
}

// fail wraps err in a cli.Exit carrying its exit code.
func fail(err error) error {
	return cli.Exit(err.Error(), exitCode(err))
}

// usage reports a command line mistake.
func usage(format string, args ...any) error {
	return cli.Exit(fmt.Sprintf(format, args...), exitUsage)
}

// newLogger creates the command logger, writing to the app's error stream.
// It also switches fill response descriptions to debug mode with --debug.
func newLogger(c *cli.Context, command string) *log.Logger {
	debug := c.Bool("debug")
	fill.SetDebug(debug)
	logger := log.NewLogger(log.Context{Tool: toolName, Command: command, Debug: debug})
	if c.App.ErrWriter != nil {
		logger = logger.WithOutput(c.App.ErrWriter)
	}
	return logger
}
