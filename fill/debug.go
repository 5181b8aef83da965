package fill

import "sync/atomic"

var debug atomic.Bool

// SetDebug toggles descriptive Response.String output process-wide.
func SetDebug(on bool) { debug.Store(on) }

// Debug reports whether descriptive output is enabled.
func Debug() bool { return debug.Load() }
