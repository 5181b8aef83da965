package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/reader"
	"github.com/pithecene-io/fillwire/cli/render"
	"github.com/pithecene-io/fillwire/cli/tui"
	"github.com/pithecene-io/fillwire/iox"
	"github.com/pithecene-io/fillwire/metrics"
)

// DecodeCommand returns the decode command.
// Decode reads every response from a stream and renders one summary per
// frame. A frame that fails to decode becomes a row with its error; the
// exit code reflects the first failure.
func DecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode framed responses and summarize each one",
		ArgsUsage: "[file]",
		Flags: append(PayloadFlags(), &cli.BoolFlag{
			Name:  "stats",
			Usage: "Log decode counters; with --tui, show them interactively",
		}),
		Action: decodeAction,
	}
}

func decodeAction(c *cli.Context) error {
	r, err := render.NewRenderer(c)
	if err != nil {
		return usage("%v", err)
	}
	if c.Bool("tui") && !c.Bool("stats") {
		return usage("--tui requires --stats for decode command")
	}

	logger := newLogger(c, "decode")
	defer iox.DiscardErr(logger.Sync)

	collector := metrics.NewCollector(toolName, "decode")
	src, closer, err := openResponses(c, collector, logger)
	if err != nil {
		return err
	}
	defer iox.DiscardClose(closer)

	entries, readErr := reader.ReadAll(src)

	snap := collector.Snapshot()
	if c.Bool("stats") {
		logger.Info("decode finished", snap.Fields())
	}

	if c.Bool("tui") {
		if err := r.RenderTUI(tui.ViewStatsDecode, snap); err != nil {
			return fail(err)
		}
	} else if err := r.Render(reader.SummarizeEntries(entries)); err != nil {
		return fail(err)
	}

	if readErr != nil {
		return fail(readErr)
	}
	for _, e := range entries {
		if e.Err != nil {
			return fail(e.Err)
		}
	}
	return nil
}
