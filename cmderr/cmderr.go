// Package cmderr defines the closed set of command error kinds that the
// error dispatcher classifies. Commands and middlewares return these instead
// of ad-hoc errors so that every failure maps to exactly one user-facing
// behavior.
package cmderr

import (
	"errors"
	"fmt"
	"time"

	"github.com/diamondburned/arikawa/v2/discord"
)

// BadArgument is a user-input error: the command was found but an argument
// failed validation (bad invite, duplicate list entry, unknown tag). The
// Reason is shown to the user verbatim.
type BadArgument struct {
	Reason string
}

func (e *BadArgument) Error() string { return e.Reason }

func BadArgumentf(format string, v ...interface{}) *BadArgument {
	return &BadArgument{Reason: fmt.Sprintf(format, v...)}
}

// CheckError is a permission or check failure. Missing lists the roles any
// one of which would have passed the check. Silent checks are suppressed by
// the dispatcher entirely.
type CheckError struct {
	Missing []discord.RoleID
	Silent  bool
}

func (e *CheckError) Error() string {
	if len(e.Missing) > 0 {
		return "you do not have any of the roles required to run this command"
	}
	return "you cannot run this command here"
}

// CooldownError is returned by cooldown middlewares while a command is
// rate-limited for the invoking user. Its Error text is the message the
// dispatcher sends back.
type CooldownError struct {
	Command    string
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf(
		"The %s command is on cooldown. Try again in %.1f seconds.",
		e.Command, e.RetryAfter.Seconds())
}

type handledError struct {
	err error
	by  string
}

func (e *handledError) Error() string { return e.err.Error() }
func (e *handledError) Unwrap() error { return e.err }

// Handled marks err as already resolved by a command-local handler named by,
// so the dispatcher won't process it again. Wrapping replaces the mutable
// "handled" flag the error would otherwise need to carry.
func Handled(err error, by string) error {
	if err == nil {
		return nil
	}
	return &handledError{err: err, by: by}
}

// HandledBy returns the name of the handler that resolved err, or "" if the
// error still needs generic handling.
func HandledBy(err error) string {
	var h *handledError
	if errors.As(err, &h) {
		return h.by
	}
	return ""
}

type reinvokedError struct {
	err error
}

func (e *reinvokedError) Error() string { return e.err.Error() }
func (e *reinvokedError) Unwrap() error { return e.err }

// Reinvoke marks an error as produced while the error dispatcher itself was
// re-invoking command machinery, so a second pass drops it instead of
// recursing into the unknown-command fallbacks again.
func Reinvoke(err error) error {
	if err == nil {
		return nil
	}
	return &reinvokedError{err: err}
}

// IsReinvoked reports whether err carries the Reinvoke marker.
func IsReinvoked(err error) bool {
	var r *reinvokedError
	return errors.As(err, &r)
}
