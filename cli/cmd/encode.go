package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/iox"
	"github.com/pithecene-io/fillwire/ipc"
	"github.com/pithecene-io/fillwire/metrics"
)

// EncodeCommand returns the encode command.
// Encode builds a manifest and writes the response as a frame, or as a bare
// payload with --raw.
func EncodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "Build a manifest and write the encoded response",
		ArgsUsage: "<manifest.yaml|->",
		Flags: []cli.Flag{
			RawFlag,
			DebugFlag,
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file (default: stdout)",
			},
		},
		Action: encodeAction,
	}
}

func encodeAction(c *cli.Context) error {
	logger := newLogger(c, "encode")
	defer iox.DiscardErr(logger.Sync)

	resp, err := buildManifest(c, logger)
	if err != nil {
		return err
	}

	out, err := iox.CreateOutput(c.String("out"), c.App.Writer)
	if err != nil {
		return fail(err)
	}

	collector := metrics.NewCollector(toolName, "encode")
	if c.Bool("raw") {
		var payload []byte
		if payload, err = ipc.EncodeResponse(resp); err == nil {
			if _, err = out.Write(payload); err == nil {
				collector.RecordEncoded(len(payload))
			}
		}
	} else {
		err = ipc.NewResponseWriter(out, collector).Write(resp)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		logger.Error("encode failed", map[string]any{"error": err.Error()})
		return fail(err)
	}

	snap := collector.Snapshot()
	logger.Info("fill response encoded", map[string]any{
		"bytes":    snap.BytesEncoded,
		"datasets": resp.DatasetCount(),
		"raw":      c.Bool("raw"),
	})
	return nil
}
