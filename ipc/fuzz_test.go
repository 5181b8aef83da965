package ipc

import (
	"errors"
	"testing"

	"github.com/pithecene-io/fillwire/fill"
	"github.com/pithecene-io/fillwire/types"
)

func FuzzDecodeResponse(f *testing.F) {
	full, err := EncodeResponse(fullResponse(f))
	if err != nil {
		f.Fatalf("EncodeResponse failed: %v", err)
	}
	f.Add(full)
	f.Add(full[:len(full)/2])
	f.Add([]byte{})
	f.Add([]byte{0x01, 0xc0, 0xc0, 0xc0, 0xc0, 0xc0, 0xc0, 0xc0})
	f.Add([]byte{0x01, 0xdd, 0xff, 0xff, 0xff, 0xff})

	minimal := build(f, func(b *fill.Builder) error {
		return b.SetAuthentication([]types.FieldID{}, testTrigger(), testPresentation())
	})
	if payload, err := EncodeResponse(minimal); err == nil {
		f.Add(payload)
	}

	f.Fuzz(func(t *testing.T, payload []byte) {
		resp, err := DecodeResponse(payload)
		if err != nil {
			if resp != nil {
				t.Fatal("response returned with error")
			}
			if !errors.Is(err, ErrMalformed) && !errors.Is(err, fill.ErrInvalidArgument) {
				t.Fatalf("unclassified decode error: %v", err)
			}
			return
		}

		// Anything accepted satisfies the builder and encodes again.
		if resp.DatasetCount() == 0 && resp.SaveInfo() == nil && resp.AuthenticationTrigger() == nil {
			t.Fatal("decoded response offers nothing")
		}
		if (resp.AuthenticationTrigger() == nil) != (resp.AuthenticationPresentation() == nil) {
			t.Fatal("decoded response has unpaired authentication")
		}
		again, err := EncodeResponse(resp)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		if _, err := DecodeResponse(again); err != nil {
			t.Fatalf("re-encoded payload does not decode: %v", err)
		}
	})
}
