package types //nolint:revive // types is a valid package name

import (
	"regexp"
	"testing"
)

func TestVersion_Format(t *testing.T) {
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	if !semverRegex.MatchString(Version) {
		t.Errorf("Version %q is not a valid semver", Version)
	}
}

func TestWireVersion_NonZero(t *testing.T) {
	// Zero is reserved so an all-zero payload never parses as a valid header.
	if WireVersion == 0 {
		t.Error("WireVersion must be non-zero")
	}
}
