package reader

import (
	"errors"
	"io"

	"github.com/pithecene-io/fillwire/cli/config"
	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/ipc"
	"github.com/pithecene-io/fillwire/log"
	"github.com/pithecene-io/fillwire/metrics"
)

// Reader yields fill responses from one source. Next returns io.EOF after
// the last response. A non-fatal error covers one response only and the
// next call continues.
type Reader interface {
	Next() (*fill.Response, error)
}

// Entry is one response, or the error that replaced it.
type Entry struct {
	Frame    int64
	Response *fill.Response
	Err      error
}

// ReadAll drains r. Payload errors are kept as entries; fatal frame errors
// and I/O errors stop the read and are returned with the entries so far.
func ReadAll(r Reader) ([]Entry, error) {
	var entries []Entry
	for frame := int64(1); ; frame++ {
		resp, err := r.Next()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			var frameErr *ipc.FrameError
			if !errors.As(err, &frameErr) || frameErr.IsFatal() {
				return entries, err
			}
			entries = append(entries, Entry{Frame: frame, Err: err})
			continue
		}
		entries = append(entries, Entry{Frame: frame, Response: resp})
	}
}

// NewFrameReader reads length-prefixed frames. collector and logger may be nil.
func NewFrameReader(r io.Reader, collector *metrics.Collector, logger *log.Logger) Reader {
	return ipc.NewResponseReader(r, collector, logger)
}

// NewRawReader yields the single response encoded in payload.
func NewRawReader(payload []byte) Reader {
	return &onceReader{next: func() (*fill.Response, error) {
		return ipc.DecodeResponse(payload)
	}}
}

// NewManifestReader yields the response a manifest builds.
func NewManifestReader(m *config.Manifest) Reader {
	return &onceReader{next: m.Build}
}

type onceReader struct {
	next func() (*fill.Response, error)
	done bool
}

func (o *onceReader) Next() (*fill.Response, error) {
	if o.done {
		return nil, io.EOF
	}
	o.done = true
	return o.next()
}
