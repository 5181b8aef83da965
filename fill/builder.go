// Package fill implements the fill response: an immutable value offering
// datasets, a save instruction and an optional authentication gate to a
// form-filling client.
//
// A Response can only be obtained from Builder.Build. The builder checks the
// authentication pairing when it is set and the non-empty rule at build time,
// so every Response in existence satisfies both:
//
//	b := fill.NewBuilder()
//	if err := b.AddDataset(ds); err != nil { ... }
//	resp, err := b.Build()
//
// The ipc package decodes wire payloads by replaying these same calls.
package fill

import "github.com/pithecene-io/fillwire/types"

// Builder operation names, used in BuildError.Op.
const (
	opSetAuthentication  = "set_authentication"
	opAddDataset         = "add_dataset"
	opSetSaveInfo        = "set_save_info"
	opSetClientState     = "set_client_state"
	opSetIgnoredFieldIDs = "set_ignored_field_ids"
	opBuild              = "build"
)

// Builder accumulates the optional parts of a Response.
//
// A Builder is single use and not safe for concurrent use: configure it,
// call Build once, discard it. After a successful Build every method fails
// with ErrIllegalState.
type Builder struct {
	datasets     []*types.Dataset
	saveInfo     *types.SaveInfo
	clientState  types.ClientState
	trigger      *types.ActionHandle
	presentation *types.Presentation
	authIDs      []types.FieldID
	ignoredIDs   []types.FieldID
	finalized    bool
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// SetAuthentication requires the client to run the trigger's flow before any
// dataset in the response can be used. ids are the fields that surface the
// authentication affordance when focused; presentation is what the client
// shows for it.
//
// trigger and presentation must both be set or both be nil. Each call
// replaces all three values.
func (b *Builder) SetAuthentication(ids []types.FieldID, trigger *types.ActionHandle, presentation *types.Presentation) error {
	if b.finalized {
		return alreadyBuilt(opSetAuthentication)
	}
	if (trigger == nil) != (presentation == nil) {
		return invalidArgument(opSetAuthentication, "trigger and presentation must be both set or both nil")
	}
	b.trigger = trigger.Clone()
	b.presentation = presentation.Clone()
	b.authIDs = types.CloneFieldIDs(ids)
	return nil
}

// AddDataset appends ds to the response. Datasets are offered to the user in
// the order they were added. A nil dataset is ignored.
func (b *Builder) AddDataset(ds *types.Dataset) error {
	if b.finalized {
		return alreadyBuilt(opAddDataset)
	}
	if ds == nil {
		return nil
	}
	b.datasets = append(b.datasets, ds.Clone())
	return nil
}

// SetSaveInfo sets the save instruction, replacing any previous one.
// A nil info clears it.
func (b *Builder) SetSaveInfo(info *types.SaveInfo) error {
	if b.finalized {
		return alreadyBuilt(opSetSaveInfo)
	}
	b.saveInfo = info.Clone()
	return nil
}

// SetClientState sets the opaque state handed back to the service on later
// fill and save requests. The bytes are stored as given; nil clears.
func (b *Builder) SetClientState(state types.ClientState) error {
	if b.finalized {
		return alreadyBuilt(opSetClientState)
	}
	b.clientState = state.Clone()
	return nil
}

// SetIgnoredFieldIDs marks fields that must not trigger new fill requests,
// replacing any previous set. Passing no ids (a nil slice) clears the set;
// a non-nil empty slice is kept as a present, empty set.
func (b *Builder) SetIgnoredFieldIDs(ids ...types.FieldID) error {
	if b.finalized {
		return alreadyBuilt(opSetIgnoredFieldIDs)
	}
	b.ignoredIDs = types.CloneFieldIDs(ids)
	return nil
}

// Build returns the Response. It fails with ErrInvalidArgument when the
// response would offer nothing: no dataset, no save info and no
// authentication. In that case the builder stays usable. On success the
// builder is finalized.
func (b *Builder) Build() (*Response, error) {
	if b.finalized {
		return nil, alreadyBuilt(opBuild)
	}
	if len(b.datasets) == 0 && b.saveInfo == nil && b.trigger == nil {
		return nil, invalidArgument(opBuild, "need at least one dataset, a save info or an authentication with a presentation")
	}
	b.finalized = true

	// The builder is dead from here on, so its staged copies move to the
	// response without another copy.
	r := &Response{
		datasets:     b.datasets,
		saveInfo:     b.saveInfo,
		clientState:  b.clientState,
		trigger:      b.trigger,
		presentation: b.presentation,
		authIDs:      b.authIDs,
		ignoredIDs:   b.ignoredIDs,
		built:        true,
	}
	b.datasets = nil
	b.saveInfo = nil
	b.clientState = nil
	b.trigger = nil
	b.presentation = nil
	b.authIDs = nil
	b.ignoredIDs = nil
	return r, nil
}
