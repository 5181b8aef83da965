package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/types"
)

// ErrInvalidManifest classifies manifest content that cannot describe a
// response. Builder rejections are returned unwrapped from Build instead.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest describes one fill response in YAML:
//
//	datasets:
//	  - id: homer            # optional, a UUID is generated when omitted
//	    presentation: {layout: item, payload: "Homer"}
//	    values:
//	      - {field: 1, value: homer}
//	      - {field: "2:7", value: simpson}
//	save_info:
//	  types: [password, username]
//	  required: [1, 2]
//	client_state:
//	  session: abc
//	authentication:
//	  field_ids: [1]
//	  trigger: {target: vault, token: unlock}
//	  presentation: {layout: auth, payload: "Tap to unlock"}
//	ignored_ids: [3]
//
// Sequences written as [] stay present and empty; omitted ones stay absent.
type Manifest struct {
	Datasets       []DatasetSpec     `yaml:"datasets"`
	SaveInfo       *SaveInfoSpec     `yaml:"save_info"`
	ClientState    map[string]string `yaml:"client_state"`
	Authentication *AuthSpec         `yaml:"authentication"`
	IgnoredIDs     []FieldRef        `yaml:"ignored_ids"`
}

// DatasetSpec is one dataset entry.
type DatasetSpec struct {
	ID             string            `yaml:"id"`
	Values         []ValueSpec       `yaml:"values"`
	Presentation   *PresentationSpec `yaml:"presentation"`
	Authentication *HandleSpec       `yaml:"authentication"`
}

// ValueSpec is one field/value pair.
type ValueSpec struct {
	Field        FieldRef          `yaml:"field"`
	Value        string            `yaml:"value"`
	Presentation *PresentationSpec `yaml:"presentation"`
}

// SaveInfoSpec is the save instruction. Types are flag names as printed by
// types.SaveDataType.String.
type SaveInfoSpec struct {
	Types       []string   `yaml:"types"`
	Required    []FieldRef `yaml:"required"`
	Optional    []FieldRef `yaml:"optional"`
	Description string     `yaml:"description"`
}

// AuthSpec gates the whole response behind an authentication flow.
type AuthSpec struct {
	FieldIDs     []FieldRef        `yaml:"field_ids"`
	Trigger      *HandleSpec       `yaml:"trigger"`
	Presentation *PresentationSpec `yaml:"presentation"`
}

// HandleSpec is an action handle with a text token.
type HandleSpec struct {
	Target string `yaml:"target"`
	Token  string `yaml:"token"`
}

// PresentationSpec is a presentation with a text payload.
type PresentationSpec struct {
	Layout  string `yaml:"layout"`
	Payload string `yaml:"payload"`
}

// FieldRef is a field id written as "view" or "view:virtual".
type FieldRef types.FieldID

// UnmarshalYAML parses a scalar field reference.
func (f *FieldRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: field id must be a scalar", node.Line)
	}
	id, err := ParseFieldID(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*f = FieldRef(id)
	return nil
}

// ParseFieldID parses "view" or "view:virtual".
func ParseFieldID(s string) (types.FieldID, error) {
	view, virtual, hasVirtual := strings.Cut(strings.TrimSpace(s), ":")
	v, err := strconv.ParseInt(view, 10, 32)
	if err != nil {
		return types.FieldID{}, fmt.Errorf("invalid field id %q", s)
	}
	id := types.FieldID{View: int32(v)}
	if hasVirtual {
		vv, err := strconv.ParseInt(virtual, 10, 32)
		if err != nil {
			return types.FieldID{}, fmt.Errorf("invalid field id %q", s)
		}
		id.Virtual = int32(vv)
	}
	return id, nil
}

// newDatasetID names datasets that omit an id.
var newDatasetID = uuid.NewString

// Build replays the manifest into a fresh fill.Builder and builds it.
func (m *Manifest) Build() (*fill.Response, error) {
	b := fill.NewBuilder()
	if err := m.Apply(b); err != nil {
		return nil, err
	}
	return b.Build()
}

// Apply replays the manifest into b in wire order without building.
func (m *Manifest) Apply(b *fill.Builder) error {
	for i := range m.Datasets {
		if err := b.AddDataset(m.Datasets[i].dataset()); err != nil {
			return err
		}
	}

	if m.SaveInfo != nil {
		info, err := m.SaveInfo.saveInfo()
		if err != nil {
			return err
		}
		if err := b.SetSaveInfo(info); err != nil {
			return err
		}
	}

	if m.ClientState != nil {
		state, err := EncodeClientState(m.ClientState)
		if err != nil {
			return err
		}
		if err := b.SetClientState(state); err != nil {
			return err
		}
	}

	if a := m.Authentication; a != nil {
		if err := b.SetAuthentication(fieldIDs(a.FieldIDs), a.Trigger.handle(), a.Presentation.presentation()); err != nil {
			return err
		}
	}

	if m.IgnoredIDs != nil {
		return b.SetIgnoredFieldIDs(fieldIDs(m.IgnoredIDs)...)
	}
	return nil
}

// EncodeClientState packs a string map into an opaque client state blob.
// Keys are sorted so equal maps give equal blobs.
func EncodeClientState(m map[string]string) (types.ClientState, error) {
	var sb strings.Builder
	enc := msgpack.NewEncoder(&sb)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("%w: client_state: %v", ErrInvalidManifest, err)
	}
	return types.ClientState(sb.String()), nil
}

// DecodeClientState reverses EncodeClientState. ok is false for blobs that
// were not produced by it.
func DecodeClientState(state types.ClientState) (map[string]string, bool) {
	if len(state) == 0 {
		return nil, false
	}
	var m map[string]string
	if err := msgpack.Unmarshal(state, &m); err != nil {
		return nil, false
	}
	return m, true
}

func (d *DatasetSpec) dataset() *types.Dataset {
	id := d.ID
	if id == "" {
		id = newDatasetID()
	}
	ds := &types.Dataset{
		ID:             id,
		Presentation:   d.Presentation.presentation(),
		Authentication: d.Authentication.handle(),
	}
	if d.Values != nil {
		ds.Values = make([]types.FieldValue, len(d.Values))
		for i, v := range d.Values {
			ds.Values[i] = types.FieldValue{
				Field:        types.FieldID(v.Field),
				Value:        v.Value,
				Presentation: v.Presentation.presentation(),
			}
		}
	}
	return ds
}

func (s *SaveInfoSpec) saveInfo() (*types.SaveInfo, error) {
	var flags types.SaveDataType
	for _, name := range s.Types {
		t, ok := types.ParseSaveDataType(name)
		if !ok {
			return nil, fmt.Errorf("%w: save_info: unknown type %q", ErrInvalidManifest, name)
		}
		flags |= t
	}
	return &types.SaveInfo{
		Types:       flags,
		RequiredIDs: fieldIDs(s.Required),
		OptionalIDs: fieldIDs(s.Optional),
		Description: s.Description,
	}, nil
}

func (h *HandleSpec) handle() *types.ActionHandle {
	if h == nil {
		return nil
	}
	return &types.ActionHandle{Target: h.Target, Token: []byte(h.Token)}
}

func (p *PresentationSpec) presentation() *types.Presentation {
	if p == nil {
		return nil
	}
	return &types.Presentation{Layout: p.Layout, Payload: []byte(p.Payload)}
}

func fieldIDs(refs []FieldRef) []types.FieldID {
	if refs == nil {
		return nil
	}
	ids := make([]types.FieldID, len(refs))
	for i, r := range refs {
		ids[i] = types.FieldID(r)
	}
	return ids
}
