package fill

import (
	"fmt"
	"strings"

	"github.com/pithecene-io/fillwire/types"
)

// Response is the validated, read-only result of Builder.Build.
//
// A Response never changes after construction and is safe for concurrent
// reads. Accessors return copies; mutating them does not affect the Response.
// Absent optional fields are reported as nil.
type Response struct {
	datasets     []*types.Dataset
	saveInfo     *types.SaveInfo
	clientState  types.ClientState
	trigger      *types.ActionHandle
	presentation *types.Presentation
	authIDs      []types.FieldID
	ignoredIDs   []types.FieldID
	built        bool
}

// IsZero reports whether r did not come from Builder.Build, for example a
// nil pointer or a zero value declared by a caller.
func (r *Response) IsZero() bool {
	return r == nil || !r.built
}

// Datasets returns the datasets in the order they were added, or nil.
func (r *Response) Datasets() []*types.Dataset {
	if r.datasets == nil {
		return nil
	}
	out := make([]*types.Dataset, len(r.datasets))
	for i, ds := range r.datasets {
		out[i] = ds.Clone()
	}
	return out
}

// DatasetCount returns the number of datasets without copying them.
func (r *Response) DatasetCount() int {
	return len(r.datasets)
}

// SaveInfo returns the save instruction, or nil.
func (r *Response) SaveInfo() *types.SaveInfo {
	return r.saveInfo.Clone()
}

// ClientState returns the opaque client state, or nil.
func (r *Response) ClientState() types.ClientState {
	return r.clientState.Clone()
}

// AuthenticationTrigger returns the response-level authentication flow, or nil.
func (r *Response) AuthenticationTrigger() *types.ActionHandle {
	return r.trigger.Clone()
}

// AuthenticationPresentation returns the presentation of the authentication
// affordance. It is non-nil exactly when AuthenticationTrigger is.
func (r *Response) AuthenticationPresentation() *types.Presentation {
	return r.presentation.Clone()
}

// AuthenticationFieldIDs returns the fields that surface the authentication
// affordance, or nil.
func (r *Response) AuthenticationFieldIDs() []types.FieldID {
	return types.CloneFieldIDs(r.authIDs)
}

// IgnoredFieldIDs returns the fields that must not trigger new fill
// requests, or nil.
func (r *Response) IgnoredFieldIDs() []types.FieldID {
	return types.CloneFieldIDs(r.ignoredIDs)
}

// String describes the response when debug output is enabled (see
// SetDebug) and otherwise only identifies it. Client state contents are
// never printed. The format is not stable.
func (r *Response) String() string {
	if !Debug() {
		return fmt.Sprintf("fill.Response@%p", r)
	}
	if r == nil {
		return "fill.Response<nil>"
	}

	var b strings.Builder
	b.WriteString("fill.Response{datasets=")
	if r.datasets == nil {
		b.WriteString("N/A")
	} else {
		ids := make([]string, len(r.datasets))
		for i, ds := range r.datasets {
			ids[i] = ds.ID
		}
		fmt.Fprintf(&b, "%d%v", len(r.datasets), ids)
	}
	if r.saveInfo != nil {
		fmt.Fprintf(&b, ", saveInfo=%s", r.saveInfo.Types)
	} else {
		b.WriteString(", saveInfo=N/A")
	}
	fmt.Fprintf(&b, ", clientState=%t", r.clientState != nil)
	fmt.Fprintf(&b, ", hasPresentation=%t", r.presentation != nil)
	fmt.Fprintf(&b, ", hasAuthentication=%t", r.trigger != nil)
	fmt.Fprintf(&b, ", authenticationSize=%s", sizeOrNA(r.authIDs))
	fmt.Fprintf(&b, ", ignoredIdsSize=%s}", sizeOrNA(r.ignoredIDs))
	return b.String()
}

func sizeOrNA(ids []types.FieldID) string {
	if ids == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", len(ids))
}
