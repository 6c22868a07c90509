package orbit5

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced by this package wraps exactly one of
// these sentinels, so callers can classify errors with errors.Is.
var (
	// ErrNotFound reports a missing mastergroup, group, attribute or dataset.
	ErrNotFound = errors.New("not found")

	// ErrConflict reports an attempt to re-initialize a resident offload
	// category without switch permission, or to activate an unknown QID.
	ErrConflict = errors.New("conflict")

	// ErrState reports an operation that is invalid for the controller's
	// current pack state.
	ErrState = errors.New("invalid state")

	// ErrFormat reports malformed persisted data: an unparsable date, a bad
	// QID, an ambiguous subtype or a missing required run attribute.
	ErrFormat = errors.New("malformed data")

	// ErrNativeCall reports a failure inside the native simulation library.
	ErrNativeCall = errors.New("native call failed")
)

// wrapf attaches context to an error kind.
func wrapf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), kind)
}
