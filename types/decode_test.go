package types //nolint:revive // types is a valid package name

import (
	"math"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := msgpack.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", v, err)
	}
	return data
}

func TestFieldID_DecodeMsgpackRoundTrip(t *testing.T) {
	ids := []FieldID{
		{},
		{View: 7},
		{View: 2, Virtual: 9},
		{View: math.MaxInt32, Virtual: math.MinInt32},
		{View: math.MinInt32, Virtual: math.MaxInt32},
	}
	for _, want := range ids {
		t.Run(want.String(), func(t *testing.T) {
			var got FieldID
			if err := msgpack.Unmarshal(marshal(t, want), &got); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if got != want {
				t.Errorf("decoded %+v, want %+v", got, want)
			}
		})
	}
}

func TestFieldID_DecodeMsgpackRejects(t *testing.T) {
	tests := []struct {
		name string
		body any
	}{
		{"view above int32", map[string]any{"view": int64(math.MaxInt32) + 1}},
		{"view wraps to small id", map[string]any{"view": int64(1<<32 + 5)}},
		{"virtual below int32", map[string]any{"view": 1, "virtual": int64(math.MinInt32) - 1}},
		{"view above int64", map[string]any{"view": uint64(math.MaxUint64)}},
		{"view is a float", map[string]any{"view": 3.0}},
		{"view is a string", map[string]any{"view": "3"}},
		{"unknown key", map[string]any{"view": 1, "depth": 2}},
		{"not a map", []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got FieldID
			if err := msgpack.Unmarshal(marshal(t, tt.body), &got); err == nil {
				t.Errorf("Unmarshal accepted %v as %+v", tt.body, got)
			}
		})
	}
}

func TestSaveDataType_DecodeMsgpack(t *testing.T) {
	all := SaveDataTypePassword | SaveDataTypeAddress | SaveDataTypeCreditCard |
		SaveDataTypeUsername | SaveDataTypeEmailAddress

	for _, want := range []SaveDataType{SaveDataTypeGeneric, SaveDataTypeCreditCard, all} {
		var got SaveDataType
		if err := msgpack.Unmarshal(marshal(t, want), &got); err != nil {
			t.Fatalf("Unmarshal(%s) failed: %v", want, err)
		}
		if got != want {
			t.Errorf("decoded %s, want %s", got, want)
		}
	}

	for _, raw := range []any{uint64(1<<32 | 1), 1 << 10, -1, 1.0} {
		var got SaveDataType
		if err := msgpack.Unmarshal(marshal(t, raw), &got); err == nil {
			t.Errorf("Unmarshal accepted %v as %s", raw, got)
		}
	}
}

func TestSaveInfo_DecodeMsgpackChecksNestedValues(t *testing.T) {
	body := map[string]any{
		"types":        1,
		"required_ids": []any{map[string]any{"view": int64(1 << 40)}},
	}
	var got SaveInfo
	if err := msgpack.Unmarshal(marshal(t, body), &got); err == nil {
		t.Errorf("Unmarshal accepted out-of-range required id as %+v", got)
	}
}
