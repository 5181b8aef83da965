// Package metrics counts fill response traffic through the ipc stream helpers.
//
// The Collector is a leaf package with no internal dependencies; callers
// translate their outcomes into the increments below.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all counters.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Encode side
	ResponsesEncoded int64
	BytesEncoded     int64
	EncodeFailures   int64

	// Decode side
	FramesRead       int64
	ResponsesDecoded int64
	BytesDecoded     int64
	DecodeMalformed  int64
	DecodeRejected   int64
	FramesTruncated  int64
	FramesTooLarge   int64

	// Dimensions (informational, set at construction)
	Tool    string
	Command string
}

// DecodeErrors returns the total of all decode failure counters.
func (s Snapshot) DecodeErrors() int64 {
	return s.DecodeMalformed + s.DecodeRejected + s.FramesTruncated + s.FramesTooLarge
}

// Collector accumulates counters for one tool invocation or connection.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe.
type Collector struct {
	mu sync.Mutex

	responsesEncoded int64
	bytesEncoded     int64
	encodeFailures   int64

	framesRead       int64
	responsesDecoded int64
	bytesDecoded     int64
	decodeMalformed  int64
	decodeRejected   int64
	framesTruncated  int64
	framesTooLarge   int64

	tool    string
	command string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(tool, command string) *Collector {
	return &Collector{tool: tool, command: command}
}

// --- Encode ---

// RecordEncoded records one encoded response of n payload bytes.
func (c *Collector) RecordEncoded(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.responsesEncoded++
	c.bytesEncoded += int64(n)
	c.mu.Unlock()
}

// IncEncodeFailures records a response that could not be encoded or written.
func (c *Collector) IncEncodeFailures() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.encodeFailures++
	c.mu.Unlock()
}

// --- Decode ---

// RecordFrame records one complete frame of n payload bytes read off a stream.
func (c *Collector) RecordFrame(n int) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesRead++
	c.bytesDecoded += int64(n)
	c.mu.Unlock()
}

// IncResponsesDecoded records a payload that decoded into a response.
func (c *Collector) IncResponsesDecoded() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.responsesDecoded++
	c.mu.Unlock()
}

// IncDecodeMalformed records a payload that did not follow the wire layout.
func (c *Collector) IncDecodeMalformed() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodeMalformed++
	c.mu.Unlock()
}

// IncDecodeRejected records a well-formed payload the builder refused.
func (c *Collector) IncDecodeRejected() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.decodeRejected++
	c.mu.Unlock()
}

// IncFramesTruncated records a frame cut short by the end of the stream.
func (c *Collector) IncFramesTruncated() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesTruncated++
	c.mu.Unlock()
}

// IncFramesTooLarge records a frame whose length prefix exceeded the limit.
func (c *Collector) IncFramesTooLarge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesTooLarge++
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all counters.
// The Collector can continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		ResponsesEncoded: c.responsesEncoded,
		BytesEncoded:     c.bytesEncoded,
		EncodeFailures:   c.encodeFailures,

		FramesRead:       c.framesRead,
		ResponsesDecoded: c.responsesDecoded,
		BytesDecoded:     c.bytesDecoded,
		DecodeMalformed:  c.decodeMalformed,
		DecodeRejected:   c.decodeRejected,
		FramesTruncated:  c.framesTruncated,
		FramesTooLarge:   c.framesTooLarge,

		Tool:    c.tool,
		Command: c.command,
	}
}

// Fields flattens the snapshot for structured logging.
func (s Snapshot) Fields() map[string]any {
	return map[string]any{
		"responses_encoded": s.ResponsesEncoded,
		"bytes_encoded":     s.BytesEncoded,
		"encode_failures":   s.EncodeFailures,
		"frames_read":       s.FramesRead,
		"responses_decoded": s.ResponsesDecoded,
		"bytes_decoded":     s.BytesDecoded,
		"decode_malformed":  s.DecodeMalformed,
		"decode_rejected":   s.DecodeRejected,
		"frames_truncated":  s.FramesTruncated,
		"frames_too_large":  s.FramesTooLarge,
	}
}
