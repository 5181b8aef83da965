// Package types defines the collaborator values carried by a fill response.
//
// The fill core treats every type here as opaque: it copies, orders and
// transfers them, but never interprets their contents. Types carry msgpack
// tags because the ipc codec writes them as tagged bodies on the wire.
//
//nolint:revive // types is a common Go package naming convention
package types

import "fmt"

// FieldID names one fillable field in the client's view hierarchy.
// Virtual is zero for fields that are not virtual children.
// FieldID is comparable and safe to use as a map key.
type FieldID struct {
	// View is the host view identifier.
	View int32 `msgpack:"view" json:"view" yaml:"view"`
	// Virtual is the virtual child identifier inside View, if any.
	Virtual int32 `msgpack:"virtual" json:"virtual,omitempty" yaml:"virtual,omitempty"`
}

// String returns "view" or "view:virtual".
func (f FieldID) String() string {
	if f.Virtual == 0 {
		return fmt.Sprintf("%d", f.View)
	}
	return fmt.Sprintf("%d:%d", f.View, f.Virtual)
}

// CloneFieldIDs copies ids, preserving the difference between nil (absent)
// and an empty slice (present but empty).
func CloneFieldIDs(ids []FieldID) []FieldID {
	if ids == nil {
		return nil
	}
	out := make([]FieldID, len(ids))
	copy(out, ids)
	return out
}
