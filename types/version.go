//nolint:revive // types is a common Go package naming convention
package types

// Version is the canonical project version, shared by the library and fillctl.
const Version = "0.1.0"

// WireVersion is the fill response payload layout version.
// Any change to field order or tagging requires a bump.
const WireVersion uint64 = 1
