//nolint:revive // types is a common Go package naming convention
package types

import (
	"fmt"
	"math"

	"github.com/vmihailenco/msgpack/v5"
)

// DecodeMsgpack decodes a {view, virtual} map. Unknown or repeated keys and
// ids outside the int32 range are errors.
func (f *FieldID) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return err
	}
	if n == -1 {
		*f = FieldID{}
		return nil
	}

	var out FieldID
	var seenView, seenVirtual bool
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return err
		}
		switch key {
		case "view":
			if seenView {
				return fmt.Errorf("field id: duplicate key %q", key)
			}
			seenView = true
			v, err := decodeInt(dec, "field id view", math.MinInt32, math.MaxInt32)
			if err != nil {
				return err
			}
			out.View = int32(v)
		case "virtual":
			if seenVirtual {
				return fmt.Errorf("field id: duplicate key %q", key)
			}
			seenVirtual = true
			v, err := decodeInt(dec, "field id virtual", math.MinInt32, math.MaxInt32)
			if err != nil {
				return err
			}
			out.Virtual = int32(v)
		default:
			return fmt.Errorf("field id: unknown key %q", key)
		}
	}
	*f = out
	return nil
}

// DecodeMsgpack decodes a flag set and rejects bits no flag defines.
func (t *SaveDataType) DecodeMsgpack(dec *msgpack.Decoder) error {
	v, err := decodeInt(dec, "save data type", 0, math.MaxUint32)
	if err != nil {
		return err
	}
	st := SaveDataType(v)
	if unknown := st &^ saveDataTypeMask; unknown != 0 {
		return fmt.Errorf("save data type: undefined flags 0x%x", uint32(unknown))
	}
	*t = st
	return nil
}

// decodeInt reads an integer of any msgpack width and checks it against
// [lo, hi]. Floats and other kinds are errors.
func decodeInt(dec *msgpack.Decoder, what string, lo, hi int64) (int64, error) {
	raw, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return 0, err
	}
	switch v := raw.(type) {
	case int64:
		if v < lo || v > hi {
			return 0, fmt.Errorf("%s: %d out of range [%d, %d]", what, v, lo, hi)
		}
		return v, nil
	case uint64:
		if hi < 0 || v > uint64(hi) {
			return 0, fmt.Errorf("%s: %d out of range [%d, %d]", what, v, lo, hi)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%s: got %T, want integer", what, raw)
	}
}
