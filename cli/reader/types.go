// Package reader provides the read side of fillctl: response sources and the
// view types commands render.
//
// Views are plain data with json and yaml tags. Id lists keep the
// absent/empty distinction: nil renders as null, an empty list as [].
package reader

// ResponseView is the detailed, render-ready form of one fill response.
type ResponseView struct {
	Datasets       []DatasetView    `json:"datasets" yaml:"datasets"`
	SaveInfo       *SaveInfoView    `json:"save_info" yaml:"save_info"`
	ClientState    *ClientStateView `json:"client_state" yaml:"client_state"`
	Authentication *AuthView        `json:"authentication" yaml:"authentication"`
	IgnoredIDs     []string         `json:"ignored_ids" yaml:"ignored_ids"`
}

// DatasetView is one dataset.
type DatasetView struct {
	ID            string           `json:"id" yaml:"id"`
	Fields        []FieldValueView `json:"fields" yaml:"fields"`
	Presentation  string           `json:"presentation,omitempty" yaml:"presentation,omitempty"`
	Authenticated bool             `json:"authenticated" yaml:"authenticated"`
}

// FieldValueView is one field/value pair of a dataset.
type FieldValueView struct {
	Field        string `json:"field" yaml:"field"`
	Value        string `json:"value" yaml:"value"`
	Presentation string `json:"presentation,omitempty" yaml:"presentation,omitempty"`
}

// SaveInfoView is the save instruction.
type SaveInfoView struct {
	Types       string   `json:"types" yaml:"types"`
	Required    []string `json:"required" yaml:"required"`
	Optional    []string `json:"optional" yaml:"optional"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// ClientStateView describes the opaque client state. Values is set only when
// the blob is a packed string map.
type ClientStateView struct {
	Bytes  int               `json:"bytes" yaml:"bytes"`
	Values map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
}

// AuthView is the response-level authentication gate.
type AuthView struct {
	Target   string   `json:"target" yaml:"target"`
	Layout   string   `json:"layout" yaml:"layout"`
	FieldIDs []string `json:"field_ids" yaml:"field_ids"`
}

// Summary is the one-line form of a decoded frame, or of a frame that
// failed to decode.
type Summary struct {
	Frame            int64  `json:"frame" yaml:"frame"`
	Datasets         int    `json:"datasets" yaml:"datasets"`
	SaveInfo         string `json:"save_info" yaml:"save_info"`
	Authentication   bool   `json:"authentication" yaml:"authentication"`
	ClientStateBytes int    `json:"client_state_bytes" yaml:"client_state_bytes"`
	IgnoredIDs       string `json:"ignored_ids" yaml:"ignored_ids"`
	Error            string `json:"error,omitempty" yaml:"error,omitempty"`
}
