//nolint:revive // types is a common Go package naming convention
package types

// ActionHandle is an opaque, transferable reference the client uses to
// launch an external authentication flow.
type ActionHandle struct {
	// Target identifies the component that owns the flow.
	Target string `msgpack:"target" json:"target"`
	// Token is the handle payload. Never inspected by the fill core.
	Token []byte `msgpack:"token" json:"token"`
}

// Clone returns a deep copy. Nil-receiver safe.
func (h *ActionHandle) Clone() *ActionHandle {
	if h == nil {
		return nil
	}
	return &ActionHandle{Target: h.Target, Token: cloneBytes(h.Token)}
}

// Presentation is an opaque UI handle used to represent a dataset or the
// authentication affordance in the client's picker.
type Presentation struct {
	// Layout names the template the client inflates.
	Layout string `msgpack:"layout" json:"layout"`
	// Payload is the serialized presentation. Never inspected by the fill core.
	Payload []byte `msgpack:"payload" json:"payload"`
}

// Clone returns a deep copy. Nil-receiver safe.
func (p *Presentation) Clone() *Presentation {
	if p == nil {
		return nil
	}
	return &Presentation{Layout: p.Layout, Payload: cloneBytes(p.Payload)}
}

// ClientState is an opaque key/value bag round-tripped verbatim between fill
// and save cycles. Nil means absent.
type ClientState []byte

// Clone copies the blob, keeping nil and empty distinct.
func (s ClientState) Clone() ClientState {
	return ClientState(cloneBytes(s))
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
