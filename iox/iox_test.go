package iox

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type spyCloser struct{ closed bool }

func (s *spyCloser) Close() error { s.closed = true; return errors.New("ignored") }

func TestDiscardClose(t *testing.T) {
	s := &spyCloser{}
	DiscardClose(s)
	if !s.closed {
		t.Fatal("Close was not called")
	}
}

func TestDiscardErr(t *testing.T) {
	called := false
	DiscardErr(func() error {
		called = true
		return errors.New("ignored")
	})
	if !called {
		t.Fatal("fn was not called")
	}
}

func TestReadAllLimited(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		limit   int64
		wantErr bool
	}{
		{name: "under limit", input: "abc", limit: 4},
		{name: "at limit", input: "abcd", limit: 4},
		{name: "over limit", input: "abcde", limit: 4, wantErr: true},
		{name: "empty", input: "", limit: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadAllLimited(strings.NewReader(tt.input), tt.limit)
			if tt.wantErr {
				if !errors.Is(err, ErrTooLarge) {
					t.Fatalf("err = %v, want ErrTooLarge", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.input {
				t.Errorf("got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestOpenInput_Stdin(t *testing.T) {
	for _, path := range []string{"", "-"} {
		rc, err := OpenInput(path, strings.NewReader("payload"))
		if err != nil {
			t.Fatalf("OpenInput(%q) failed: %v", path, err)
		}
		data, err := ReadAllLimited(rc, 64)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if string(data) != "payload" {
			t.Errorf("OpenInput(%q) read %q", path, data)
		}
		if err := rc.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	}
}

func TestOpenInput_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o600); err != nil {
		t.Fatal(err)
	}
	rc, err := OpenInput(path, nil)
	if err != nil {
		t.Fatalf("OpenInput failed: %v", err)
	}
	defer DiscardClose(rc)

	data, err := ReadAllLimited(rc, 64)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("read %v, want [1 2 3]", data)
	}
}

func TestOpenInput_Missing(t *testing.T) {
	if _, err := OpenInput(filepath.Join(t.TempDir(), "missing"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestCreateOutput(t *testing.T) {
	var stdout bytes.Buffer
	wc, err := CreateOutput("-", &stdout)
	if err != nil {
		t.Fatalf("CreateOutput failed: %v", err)
	}
	if _, err := wc.Write([]byte("hi")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if stdout.String() != "hi" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "hi")
	}

	path := filepath.Join(t.TempDir(), "out.bin")
	wc, err = CreateOutput(path, nil)
	if err != nil {
		t.Fatalf("CreateOutput failed: %v", err)
	}
	if _, err := wc.Write([]byte("file")); err != nil {
		t.Fatal(err)
	}
	if err := wc.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "file" {
		t.Errorf("file = %q, want %q", data, "file")
	}
}
