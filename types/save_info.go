//nolint:revive // types is a common Go package naming convention
package types

import (
	"fmt"
	"strings"
)

// SaveDataType is a bitmask of the kinds of data a save instruction covers.
type SaveDataType uint32

// Save data type flags.
const (
	SaveDataTypeGeneric      SaveDataType = 0
	SaveDataTypePassword     SaveDataType = 1 << 0
	SaveDataTypeAddress      SaveDataType = 1 << 1
	SaveDataTypeCreditCard   SaveDataType = 1 << 2
	SaveDataTypeUsername     SaveDataType = 1 << 3
	SaveDataTypeEmailAddress SaveDataType = 1 << 4
)

// saveDataTypeMask covers every defined flag.
const saveDataTypeMask = SaveDataTypePassword | SaveDataTypeAddress |
	SaveDataTypeCreditCard | SaveDataTypeUsername | SaveDataTypeEmailAddress

var saveDataTypeNames = []struct {
	flag SaveDataType
	name string
}{
	{SaveDataTypePassword, "password"},
	{SaveDataTypeAddress, "address"},
	{SaveDataTypeCreditCard, "credit_card"},
	{SaveDataTypeUsername, "username"},
	{SaveDataTypeEmailAddress, "email_address"},
}

// String renders the set flags joined by "|", or "generic". Undefined bits
// are appended in hex.
func (t SaveDataType) String() string {
	var parts []string
	for _, n := range saveDataTypeNames {
		if t&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if unknown := t &^ saveDataTypeMask; unknown != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(unknown)))
	}
	if len(parts) == 0 {
		return "generic"
	}
	return strings.Join(parts, "|")
}

// ParseSaveDataType maps a flag name to its value. ok is false for unknown names.
func ParseSaveDataType(name string) (SaveDataType, bool) {
	if name == "generic" {
		return SaveDataTypeGeneric, true
	}
	for _, n := range saveDataTypeNames {
		if n.name == name {
			return n.flag, true
		}
	}
	return 0, false
}

// SaveInfo instructs the client how to offer saving user-edited data.
type SaveInfo struct {
	// Types is the set of data kinds being saved.
	Types SaveDataType `msgpack:"types" json:"types"`
	// RequiredIDs must all be filled before the save UI is shown.
	RequiredIDs []FieldID `msgpack:"required_ids" json:"required_ids"`
	// OptionalIDs may additionally trigger the save UI.
	OptionalIDs []FieldID `msgpack:"optional_ids" json:"optional_ids"`
	// Description is shown in the save UI.
	Description string `msgpack:"description" json:"description,omitempty"`
}

// Clone returns a deep copy. Nil-receiver safe.
func (s *SaveInfo) Clone() *SaveInfo {
	if s == nil {
		return nil
	}
	return &SaveInfo{
		Types:       s.Types,
		RequiredIDs: CloneFieldIDs(s.RequiredIDs),
		OptionalIDs: CloneFieldIDs(s.OptionalIDs),
		Description: s.Description,
	}
}
