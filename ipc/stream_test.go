package ipc

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/log"
	"github.com/pithecene-io/fillwire/metrics"
)

func TestResponseWriter_Reader(t *testing.T) {
	first := fullResponse(t)
	second := build(t, func(b *fill.Builder) error {
		return b.AddDataset(testDataset("d9", 4, "lisa"))
	})

	var buf bytes.Buffer
	wc := metrics.NewCollector("fillctl", "encode")
	w := NewResponseWriter(&buf, wc)
	for _, resp := range []*fill.Response{first, second} {
		if err := w.Write(resp); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	ws := wc.Snapshot()
	if ws.ResponsesEncoded != 2 {
		t.Errorf("ResponsesEncoded = %d, want 2", ws.ResponsesEncoded)
	}
	if ws.BytesEncoded != int64(buf.Len()-2*LengthPrefixSize) {
		t.Errorf("BytesEncoded = %d, want %d", ws.BytesEncoded, buf.Len()-2*LengthPrefixSize)
	}

	rc := metrics.NewCollector("fillctl", "decode")
	r := NewResponseReader(iotest.HalfReader(&buf), rc, nil)

	got1, err := r.Next()
	if err != nil {
		t.Fatalf("Next 1 failed: %v", err)
	}
	assertSameResponse(t, got1, first)

	got2, err := r.Next()
	if err != nil {
		t.Fatalf("Next 2 failed: %v", err)
	}
	assertSameResponse(t, got2, second)

	if _, err := r.Next(); err != io.EOF {
		t.Errorf("Next 3 = %v, want io.EOF", err)
	}

	rs := rc.Snapshot()
	if rs.FramesRead != 2 || rs.ResponsesDecoded != 2 {
		t.Errorf("FramesRead = %d, ResponsesDecoded = %d, want 2 and 2", rs.FramesRead, rs.ResponsesDecoded)
	}
	if rs.BytesDecoded != ws.BytesEncoded {
		t.Errorf("BytesDecoded = %d, want %d", rs.BytesDecoded, ws.BytesEncoded)
	}
	if r.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", r.Frames())
	}
}

func TestResponseWriter_NotBuilt(t *testing.T) {
	var buf bytes.Buffer
	collector := metrics.NewCollector("fillctl", "encode")

	err := NewResponseWriter(&buf, collector).Write(&fill.Response{})
	if !errors.Is(err, ErrNotBuilt) {
		t.Fatalf("Write = %v, want ErrNotBuilt", err)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for an unbuilt response", buf.Len())
	}
	if s := collector.Snapshot(); s.EncodeFailures != 1 || s.ResponsesEncoded != 0 {
		t.Errorf("snapshot = %+v, want one encode failure", s)
	}
}

// A bad payload inside an intact frame does not stop the stream.
func TestResponseReader_ContinuesAfterBadPayload(t *testing.T) {
	valid, err := EncodeResponse(fullResponse(t))
	if err != nil {
		t.Fatalf("EncodeResponse failed: %v", err)
	}
	empty := newWire(t).version().nulls(7).bytes()

	var stream bytes.Buffer
	for _, p := range [][]byte{[]byte("garbage"), empty, valid} {
		if err := WriteFrame(&stream, p); err != nil {
			t.Fatalf("WriteFrame failed: %v", err)
		}
	}

	var logs bytes.Buffer
	logger := log.NewLogger(log.Context{Tool: "fillctl"}).WithOutput(&logs)
	collector := metrics.NewCollector("fillctl", "decode")
	r := NewResponseReader(&stream, collector, logger)

	if _, err := r.Next(); !errors.Is(err, ErrMalformed) {
		t.Errorf("frame 1 = %v, want ErrMalformed", err)
	}
	if _, err := r.Next(); !errors.Is(err, fill.ErrInvalidArgument) {
		t.Errorf("frame 2 = %v, want fill.ErrInvalidArgument", err)
	}
	if _, err := r.Next(); err != nil {
		t.Errorf("frame 3 = %v, want success", err)
	}
	if _, err := r.Next(); err != io.EOF {
		t.Errorf("frame 4 = %v, want io.EOF", err)
	}

	s := collector.Snapshot()
	if s.DecodeMalformed != 1 || s.DecodeRejected != 1 || s.ResponsesDecoded != 1 {
		t.Errorf("snapshot = %+v, want 1 malformed, 1 rejected, 1 decoded", s)
	}
	if s.FramesRead != 3 {
		t.Errorf("FramesRead = %d, want 3", s.FramesRead)
	}
	if got := strings.Count(logs.String(), "fill response decode failed"); got != 2 {
		t.Errorf("logged %d decode failures, want 2:\n%s", got, logs.String())
	}
}

func TestResponseReader_TruncatedStream(t *testing.T) {
	valid, err := EncodeResponse(fullResponse(t))
	if err != nil {
		t.Fatalf("EncodeResponse failed: %v", err)
	}
	frame := encodeFrame(valid)

	collector := metrics.NewCollector("fillctl", "decode")
	r := NewResponseReader(bytes.NewReader(frame[:len(frame)-3]), collector, nil)

	_, err = r.Next()
	if !IsFatalFrameError(err) {
		t.Fatalf("Next = %v, want fatal frame error", err)
	}
	if s := collector.Snapshot(); s.FramesTruncated != 1 || s.FramesRead != 0 {
		t.Errorf("snapshot = %+v, want one truncated frame", s)
	}
}

func TestResponseReader_NilCollector(t *testing.T) {
	var buf bytes.Buffer
	if err := NewResponseWriter(&buf, nil).Write(fullResponse(t)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := NewResponseReader(&buf, nil, nil).Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
}
