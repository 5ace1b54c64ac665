package core

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("kestrel.core")

// SanityError is the panic payload of a failed Enforce. It signals a
// corrupted tree, i.e. a bug in the parser or in a rewrite pass.
// Binaries must not recover it; tests may, to assert that corruption
// is detected.
type SanityError struct {
	Message string
}

func (e *SanityError) Error() string {
	return "tree invariant violated: " + e.Message
}

// Enforce aborts if cond is false. This is the invariant check for
// structural tree properties, not input validation: a failure means
// upstream code produced a malformed node and no caller should try to
// continue with it.
func Enforce(cond bool, format string, args ...any) {
	if cond {
		return
	}
	msg := fmt.Sprintf(format, args...)
	log.Criticalf("tree invariant violated: %s", msg)
	panic(&SanityError{Message: msg})
}
