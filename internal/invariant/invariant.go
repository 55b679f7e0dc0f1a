// Package invariant holds the structural-invariant assertions shared by
// lfu, lru and bptree. A failing assertion means a bug in this module, not
// bad external input, so it aborts the process rather than returning a
// recoverable error.
package invariant

import "github.com/pkg/errors"

// Violation is the panic value raised by Check when a structural invariant
// doesn't hold. It carries a stack trace (captured via pkg/errors) so a bug
// report is post-mortem debuggable.
type Violation struct {
	Msg   string
	cause error
}

func (v *Violation) Error() string { return "structural invariant violated: " + v.Msg }

func (v *Violation) Unwrap() error { return v.cause }

// Check panics with a *Violation if cond is false. msg should name the
// invariant that broke, not explain why it matters.
func Check(cond bool, msg string) {
	if cond {
		return
	}
	panic(&Violation{Msg: msg, cause: errors.WithStack(errors.New(msg))})
}
