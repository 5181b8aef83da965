package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/render"
	"github.com/pithecene-io/fillwire/types"
)

// VersionResponse is the response for the version command.
type VersionResponse struct {
	Version     string `json:"version"`
	WireVersion uint64 `json:"wire_version"`
	Commit      string `json:"commit"`
}

// VersionCommand returns the version command.
// It reports the module version and the payload wire version it reads and
// writes.
func VersionCommand(commit string) *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version information",
		Flags:  ReadOnlyFlags(),
		Action: versionAction(commit),
	}
}

func versionAction(commit string) cli.ActionFunc {
	return func(c *cli.Context) error {
		r, err := render.NewRenderer(c)
		if err != nil {
			return usage("%v", err)
		}

		// TUI not supported for version command
		if c.Bool("tui") {
			return usage("--tui is not supported for version command")
		}

		return r.Render(VersionResponse{
			Version:     types.Version,
			WireVersion: types.WireVersion,
			Commit:      commit,
		})
	}
}
