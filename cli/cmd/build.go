package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/reader"
	"github.com/pithecene-io/fillwire/cli/render"
	"github.com/pithecene-io/fillwire/iox"
)

// BuildCommand returns the build command.
// Build validates a manifest through the builder and renders the response.
func BuildCommand() *cli.Command {
	return &cli.Command{
		Name:      "build",
		Usage:     "Validate a manifest and show the response it builds",
		ArgsUsage: "<manifest.yaml|->",
		Flags:     ReadOnlyFlags(),
		Action:    buildAction,
	}
}

func buildAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return usage("%v", err)
	}

	if c.Bool("tui") {
		return usage("--tui is not supported for build command")
	}

	logger := newLogger(c, "build")
	defer iox.DiscardErr(logger.Sync)

	resp, err := buildManifest(c, logger)
	if err != nil {
		return err
	}
	return r.RenderResponse(reader.View(resp))
}
