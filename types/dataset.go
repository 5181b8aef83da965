//nolint:revive // types is a common Go package naming convention
package types

// FieldValue is one field/value pair inside a dataset.
type FieldValue struct {
	// Field is the target field.
	Field FieldID `msgpack:"field" json:"field"`
	// Value is the text to fill.
	Value string `msgpack:"value" json:"value"`
	// Presentation optionally overrides the dataset presentation for this field.
	Presentation *Presentation `msgpack:"presentation,omitempty" json:"presentation,omitempty"`
}

// Dataset is a named set of field/value pairs the user may apply together.
type Dataset struct {
	// ID is a service-chosen identifier, echoed back in save requests.
	ID string `msgpack:"id" json:"id"`
	// Values holds the field/value pairs in presentation order.
	Values []FieldValue `msgpack:"values" json:"values"`
	// Presentation represents the dataset in the picker.
	Presentation *Presentation `msgpack:"presentation,omitempty" json:"presentation,omitempty"`
	// Authentication gates this dataset alone behind a flow.
	Authentication *ActionHandle `msgpack:"authentication,omitempty" json:"authentication,omitempty"`
}

// Clone returns a deep copy. Nil-receiver safe.
func (d *Dataset) Clone() *Dataset {
	if d == nil {
		return nil
	}
	out := &Dataset{
		ID:             d.ID,
		Presentation:   d.Presentation.Clone(),
		Authentication: d.Authentication.Clone(),
	}
	if d.Values != nil {
		out.Values = make([]FieldValue, len(d.Values))
		for i, v := range d.Values {
			out.Values[i] = FieldValue{
				Field:        v.Field,
				Value:        v.Value,
				Presentation: v.Presentation.Clone(),
			}
		}
	}
	return out
}

// FieldIDs returns the fields this dataset fills, in order.
func (d *Dataset) FieldIDs() []FieldID {
	if d == nil {
		return nil
	}
	ids := make([]FieldID, 0, len(d.Values))
	for _, v := range d.Values {
		ids = append(ids, v.Field)
	}
	return ids
}
