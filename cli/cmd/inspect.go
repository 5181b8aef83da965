package cmd

import (
	"errors"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/reader"
	"github.com/pithecene-io/fillwire/cli/render"
	"github.com/pithecene-io/fillwire/cli/tui"
	"github.com/pithecene-io/fillwire/iox"
	"github.com/pithecene-io/fillwire/ipc"
)

// errNoResponse reports an input without a single frame.
var errNoResponse = &ipc.FrameError{Kind: ipc.FrameErrorPartial, Msg: "input holds no response"}

// InspectCommand returns the inspect command.
// Inspect decodes the first response of the input and shows every part of it.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Show the first response of the input in detail",
		ArgsUsage: "[file]",
		Flags:     PayloadFlags(),
		Action:    inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return usage("%v", err)
	}

	logger := newLogger(c, "inspect")
	defer iox.DiscardErr(logger.Sync)

	src, closer, err := openResponses(c, nil, logger)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(closer)

	resp, err := src.Next()
	if errors.Is(err, io.EOF) {
		return fail(errNoResponse)
	}
	if err != nil {
		return fail(err)
	}
	logger.Debug("inspecting response", map[string]any{"response": resp.String()})

	view := reader.View(resp)
	if c.Bool("tui") {
		return r.RenderTUI(tui.ViewInspectResponse, view)
	}
	return r.RenderResponse(view)
}
