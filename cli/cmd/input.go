package cmd

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/pithecene-io/fillwire/cli/config"
	"github.com/pithecene-io/fillwire/cli/reader"
	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/iox"
	"github.com/pithecene-io/fillwire/ipc"
	"github.com/pithecene-io/fillwire/log"
	"github.com/pithecene-io/fillwire/metrics"
)

// maxManifestSize bounds a manifest read from stdin.
const maxManifestSize = 1 << 20

// buildManifest loads the manifest named by the first argument ("-" for
// stdin) and builds it.
func buildManifest(c *cli.Context, logger *log.Logger) (*fill.Response, error) {
	if c.NArg() < 1 {
		return nil, usage("manifest path required (use - for stdin)")
	}
	path := c.Args().First()

	var m *config.Manifest
	if path == "-" {
		data, err := iox.ReadAllLimited(c.App.Reader, maxManifestSize)
		if err != nil {
			return nil, fail(err)
		}
		if m, err = config.Parse(data); err != nil {
			return nil, fail(err)
		}
	} else {
		var err error
		if m, err = config.Load(path); err != nil {
			return nil, fail(err)
		}
	}

	resp, err := m.Build()
	if err != nil {
		logger.Error("manifest rejected", map[string]any{
			"manifest": path,
			"error":    err.Error(),
		})
		return nil, fail(err)
	}
	logger.Debug("manifest built", map[string]any{
		"manifest": path,
		"response": resp.String(),
	})
	return resp, nil
}

// openResponses opens the first argument (stdin when absent) as a response
// source: length-prefixed frames, or one bare payload with --raw.
func openResponses(c *cli.Context, collector *metrics.Collector, logger *log.Logger) (reader.Reader, io.Closer, error) {
	in, err := iox.OpenInput(c.Args().First(), c.App.Reader)
	if err != nil {
		return nil, nil, fail(err)
	}

	if !c.Bool("raw") {
		return reader.NewFrameReader(in, collector, logger), in, nil
	}

	payload, err := iox.ReadAllLimited(in, ipc.MaxPayloadSize)
	if err != nil {
		iox.DiscardClose(in)
		return nil, nil, fail(err)
	}
	collector.RecordFrame(len(payload))
	return &countingReader{Reader: reader.NewRawReader(payload), collector: collector}, in, nil
}

// countingReader records decode outcomes for sources that bypass
// ipc.ResponseReader.
type countingReader struct {
	reader.Reader
	collector *metrics.Collector
}

func (r *countingReader) Next() (*fill.Response, error) {
	resp, err := r.Reader.Next()
	switch {
	case err == io.EOF:
	case err == nil:
		r.collector.IncResponsesDecoded()
	case exitCode(err) == exitMalformed:
		r.collector.IncDecodeMalformed()
	default:
		r.collector.IncDecodeRejected()
	}
	return resp, err
}
