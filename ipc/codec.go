package ipc

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/types"
)

// Body tags. Every non-nil value on the wire is a [tag, body] pair.
const (
	TagDataset      = "dataset"
	TagSaveInfo     = "save_info"
	TagClientState  = "client_state"
	TagFieldID      = "field_id"
	TagActionHandle = "action_handle"
	TagPresentation = "presentation"
)

// MaxSequenceLen bounds the element count of any sequence in a payload.
const MaxSequenceLen = 1 << 16

// ErrNotBuilt is returned when encoding a response that did not come from
// fill.Builder.Build.
var ErrNotBuilt = errors.New("ipc: response was not built")

// EncodeResponse serializes resp. Fields are written in a fixed order, each
// preceded by nil when absent:
//
//	version, datasets, save info, client state,
//	authentication ids, authentication trigger, authentication presentation,
//	ignored ids
//
// The output is deterministic for equal responses.
func EncodeResponse(resp *fill.Response) ([]byte, error) {
	if resp.IsZero() {
		return nil, ErrNotBuilt
	}

	var buf bytes.Buffer
	e := &payloadEncoder{enc: msgpack.NewEncoder(&buf)}
	e.enc.UseCompactInts(true)

	e.err = e.enc.EncodeUint(types.WireVersion)

	datasets := resp.Datasets()
	if datasets == nil {
		e.encodeNil()
	} else {
		e.arrayLen(len(datasets))
		for _, ds := range datasets {
			e.tagged(TagDataset, ds)
		}
	}

	if info := resp.SaveInfo(); info != nil {
		e.tagged(TagSaveInfo, info)
	} else {
		e.encodeNil()
	}

	if state := resp.ClientState(); state != nil {
		e.tagged(TagClientState, []byte(state))
	} else {
		e.encodeNil()
	}

	e.fieldIDs(resp.AuthenticationFieldIDs())

	if tr := resp.AuthenticationTrigger(); tr != nil {
		e.tagged(TagActionHandle, tr)
	} else {
		e.encodeNil()
	}

	if p := resp.AuthenticationPresentation(); p != nil {
		e.tagged(TagPresentation, p)
	} else {
		e.encodeNil()
	}

	e.fieldIDs(resp.IgnoredFieldIDs())

	if e.err != nil {
		return nil, fmt.Errorf("ipc: encode response: %w", e.err)
	}
	return buf.Bytes(), nil
}

// payloadEncoder keeps the first error and turns later writes into no-ops.
type payloadEncoder struct {
	enc *msgpack.Encoder
	err error
}

func (e *payloadEncoder) encodeNil() {
	if e.err == nil {
		e.err = e.enc.EncodeNil()
	}
}

func (e *payloadEncoder) arrayLen(n int) {
	if e.err == nil {
		e.err = e.enc.EncodeArrayLen(n)
	}
}

func (e *payloadEncoder) tagged(tag string, body any) {
	if e.err != nil {
		return
	}
	if e.err = e.enc.EncodeArrayLen(2); e.err != nil {
		return
	}
	if e.err = e.enc.EncodeString(tag); e.err != nil {
		return
	}
	if b, ok := body.([]byte); ok {
		e.err = e.enc.EncodeBytes(b)
		return
	}
	e.err = e.enc.Encode(body)
}

func (e *payloadEncoder) fieldIDs(ids []types.FieldID) {
	if ids == nil {
		e.encodeNil()
		return
	}
	e.arrayLen(len(ids))
	for i := range ids {
		e.tagged(TagFieldID, &ids[i])
	}
}

// DecodeResponse parses a payload written by EncodeResponse.
//
// The response is rebuilt only through fill.Builder, in wire order, so a
// payload describing a combination the builder forbids (a trigger without a
// presentation, or nothing to offer) fails exactly like the equivalent
// in-process calls. Such failures are *FrameError with Kind
// FrameErrorRejected and match the builder's sentinel via errors.Is.
// Structural failures match ErrMalformed. No response is returned on error.
func DecodeResponse(payload []byte) (*fill.Response, error) {
	r := bytes.NewReader(payload)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)
	d := &payloadDecoder{r: r, dec: dec}

	version, err := dec.DecodeUint64()
	if err != nil {
		return nil, malformed("failed to decode wire version", err)
	}
	if version != types.WireVersion {
		return nil, malformed(fmt.Sprintf("unsupported wire version %d", version), nil)
	}

	b := fill.NewBuilder()

	n, _, err := d.sequenceLen("datasets")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		var ds types.Dataset
		if err := d.taggedBody(TagDataset, &ds); err != nil {
			return nil, err
		}
		if err := b.AddDataset(&ds); err != nil {
			return nil, rejected(err)
		}
	}

	var info *types.SaveInfo
	if ok, err := d.present(); err != nil {
		return nil, err
	} else if ok {
		info = &types.SaveInfo{}
		if err := d.taggedBody(TagSaveInfo, info); err != nil {
			return nil, err
		}
	}
	if err := b.SetSaveInfo(info); err != nil {
		return nil, rejected(err)
	}

	state, err := d.clientState()
	if err != nil {
		return nil, err
	}
	if err := b.SetClientState(state); err != nil {
		return nil, rejected(err)
	}

	authIDs, err := d.fieldIDs("authentication ids")
	if err != nil {
		return nil, err
	}
	var trigger *types.ActionHandle
	if ok, err := d.present(); err != nil {
		return nil, err
	} else if ok {
		trigger = &types.ActionHandle{}
		if err := d.taggedBody(TagActionHandle, trigger); err != nil {
			return nil, err
		}
	}
	var presentation *types.Presentation
	if ok, err := d.present(); err != nil {
		return nil, err
	} else if ok {
		presentation = &types.Presentation{}
		if err := d.taggedBody(TagPresentation, presentation); err != nil {
			return nil, err
		}
	}
	if err := b.SetAuthentication(authIDs, trigger, presentation); err != nil {
		return nil, rejected(err)
	}

	ignored, err := d.fieldIDs("ignored ids")
	if err != nil {
		return nil, err
	}
	if err := b.SetIgnoredFieldIDs(ignored...); err != nil {
		return nil, rejected(err)
	}

	if r.Len() != 0 {
		return nil, malformed(fmt.Sprintf("%d trailing bytes after ignored ids", r.Len()), nil)
	}

	resp, err := b.Build()
	if err != nil {
		return nil, rejected(err)
	}
	return resp, nil
}

func rejected(err error) *FrameError {
	return &FrameError{Kind: FrameErrorRejected, Msg: "fill response rejected", Err: err}
}

// payloadDecoder reads the wire layout from an in-memory payload. r is kept
// alongside the msgpack decoder to bound counts by the bytes left.
type payloadDecoder struct {
	r   *bytes.Reader
	dec *msgpack.Decoder
}

// present consumes a nil marker and reports false, or reports true and
// leaves the value in place.
func (d *payloadDecoder) present() (bool, error) {
	c, err := d.dec.PeekCode()
	if err != nil {
		return false, malformed("truncated payload", err)
	}
	if c != msgpcode.Nil {
		return true, nil
	}
	if err := d.dec.DecodeNil(); err != nil {
		return false, malformed("failed to decode nil marker", err)
	}
	return false, nil
}

// sequenceLen reads a nil marker or an array header. Every element takes at
// least one byte, so a count above the remaining length cannot be honest.
func (d *payloadDecoder) sequenceLen(field string) (int, bool, error) {
	ok, err := d.present()
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return 0, false, malformed(fmt.Sprintf("failed to decode %s count", field), err)
	}
	if n < 0 || n > MaxSequenceLen || n > d.r.Len() {
		return 0, false, malformed(fmt.Sprintf("%s count %d out of range", field, n), nil)
	}
	return n, true, nil
}

func (d *payloadDecoder) fieldIDs(field string) ([]types.FieldID, error) {
	n, ok, err := d.sequenceLen(field)
	if err != nil || !ok {
		return nil, err
	}
	ids := make([]types.FieldID, 0, n)
	for i := 0; i < n; i++ {
		var id types.FieldID
		if err := d.taggedBody(TagFieldID, &id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (d *payloadDecoder) clientState() (types.ClientState, error) {
	ok, err := d.present()
	if err != nil || !ok {
		return nil, err
	}
	if err := d.tag(TagClientState); err != nil {
		return nil, err
	}
	c, err := d.dec.PeekCode()
	if err != nil {
		return nil, malformed("truncated client state", err)
	}
	if c != msgpcode.Bin8 && c != msgpcode.Bin16 && c != msgpcode.Bin32 {
		return nil, malformed(fmt.Sprintf("client state body has code 0x%02x, want bin", c), nil)
	}
	b, err := d.dec.DecodeBytes()
	if err != nil {
		return nil, malformed("failed to decode client state", err)
	}
	if b == nil {
		b = []byte{}
	}
	return types.ClientState(b), nil
}

// tag reads the [tag, ...] header of a tagged value and checks the tag.
func (d *payloadDecoder) tag(want string) error {
	n, err := d.dec.DecodeArrayLen()
	if err != nil {
		return malformed(fmt.Sprintf("failed to decode %s header", want), err)
	}
	if n != 2 {
		return malformed(fmt.Sprintf("%s header has %d elements, want 2", want, n), nil)
	}
	got, err := d.dec.DecodeString()
	if err != nil {
		return malformed(fmt.Sprintf("failed to decode %s tag", want), err)
	}
	if got != want {
		return malformed(fmt.Sprintf("unexpected tag %q, want %q", got, want), nil)
	}
	return nil
}

// taggedBody reads a tagged value whose body is a msgpack map into v.
func (d *payloadDecoder) taggedBody(want string, v any) error {
	if err := d.tag(want); err != nil {
		return err
	}
	c, err := d.dec.PeekCode()
	if err != nil {
		return malformed(fmt.Sprintf("truncated %s body", want), err)
	}
	if !msgpcode.IsFixedMap(c) && c != msgpcode.Map16 && c != msgpcode.Map32 {
		return malformed(fmt.Sprintf("%s body has code 0x%02x, want map", want, c), nil)
	}
	if err := d.dec.Decode(v); err != nil {
		return malformed(fmt.Sprintf("failed to decode %s body", want), err)
	}
	return nil
}
