package fill

import (
	"errors"
	"fmt"
)

// Sentinel errors for builder failure classification.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrInvalidArgument indicates a call whose inputs violate a response
	// invariant (authentication pairing, or nothing to offer at build time).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalState indicates a call on a builder that has already built.
	ErrIllegalState = errors.New("illegal state")
)

// BuildError is returned by every failing Builder method.
type BuildError struct {
	// Kind is the sentinel for classification (ErrInvalidArgument or ErrIllegalState).
	Kind error
	// Op is the builder operation that failed, e.g. "set_authentication".
	Op string
	// Msg describes the violated constraint.
	Msg string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("fill: %s: %v: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether the error matches the target sentinel.
func (e *BuildError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func invalidArgument(op, msg string) error {
	return &BuildError{Kind: ErrInvalidArgument, Op: op, Msg: msg}
}

func alreadyBuilt(op string) error {
	return &BuildError{Kind: ErrIllegalState, Op: op, Msg: "already built"}
}
