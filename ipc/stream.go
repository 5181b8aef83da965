package ipc

import (
	"errors"
	"io"

	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/log"
	"github.com/pithecene-io/fillwire/metrics"
)

// ResponseWriter writes framed fill responses to a stream.
type ResponseWriter struct {
	w         io.Writer
	collector *metrics.Collector
}

// NewResponseWriter creates a writer. collector may be nil.
func NewResponseWriter(w io.Writer, collector *metrics.Collector) *ResponseWriter {
	return &ResponseWriter{w: w, collector: collector}
}

// Write encodes resp and writes it as one frame.
func (rw *ResponseWriter) Write(resp *fill.Response) error {
	payload, err := EncodeResponse(resp)
	if err != nil {
		rw.collector.IncEncodeFailures()
		return err
	}
	if err := WriteFrame(rw.w, payload); err != nil {
		rw.collector.IncEncodeFailures()
		return err
	}
	rw.collector.RecordEncoded(len(payload))
	return nil
}

// ResponseReader reads framed fill responses from a stream.
//
// A payload that is malformed or rejected inside an intact frame is reported
// for that frame only; the next call to Next continues with the following frame.
// Fatal frame errors (see IsFatalFrameError) end the stream.
type ResponseReader struct {
	frames    *FrameDecoder
	collector *metrics.Collector
	logger    *log.Logger
	seq       int64
}

// NewResponseReader creates a reader. collector and logger may be nil.
func NewResponseReader(r io.Reader, collector *metrics.Collector, logger *log.Logger) *ResponseReader {
	if logger == nil {
		logger = log.Nop()
	}
	return &ResponseReader{
		frames:    NewFrameDecoder(r),
		collector: collector,
		logger:    logger,
	}
}

// Next returns the next response, or io.EOF at a clean end of stream.
func (rr *ResponseReader) Next() (*fill.Response, error) {
	payload, err := rr.frames.ReadFrame()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		rr.record(err)
		rr.logger.Error("frame read failed", map[string]any{
			"frame": rr.seq + 1,
			"error": err.Error(),
		})
		return nil, err
	}
	rr.seq++
	rr.collector.RecordFrame(len(payload))

	resp, err := DecodeResponse(payload)
	if err != nil {
		rr.record(err)
		rr.logger.Warn("fill response decode failed", map[string]any{
			"frame": rr.seq,
			"bytes": len(payload),
			"error": err.Error(),
		})
		return nil, err
	}
	rr.collector.IncResponsesDecoded()
	rr.logger.Debug("fill response decoded", map[string]any{
		"frame":    rr.seq,
		"bytes":    len(payload),
		"datasets": resp.DatasetCount(),
	})
	return resp, nil
}

// Frames returns the number of complete frames read so far.
func (rr *ResponseReader) Frames() int64 {
	return rr.seq
}

func (rr *ResponseReader) record(err error) {
	var frameErr *FrameError
	if !errors.As(err, &frameErr) {
		return
	}
	switch frameErr.Kind {
	case FrameErrorPartial:
		rr.collector.IncFramesTruncated()
	case FrameErrorTooLarge:
		rr.collector.IncFramesTooLarge()
	case FrameErrorMalformed:
		rr.collector.IncDecodeMalformed()
	case FrameErrorRejected:
		rr.collector.IncDecodeRejected()
	}
}
