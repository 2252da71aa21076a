package rs

import (
	"strings"
)

// ErrorKind categorizes an Error. Every kind describes a usage defect, not a
// transient condition: none of them should be retried.
type ErrorKind uint8

const (
	// KindInvalidState reports an operation on an object or context that is
	// not usable in its current state: destroyed objects, cross-context use,
	// double destroy, double bind.
	KindInvalidState ErrorKind = iota + 1

	// KindIllegalArgument reports malformed input to a setter or constructor.
	KindIllegalArgument

	// KindRuntime reports an internal inconsistency, such as reading an id
	// that was never bound, or a failure reported by the native runtime.
	KindRuntime
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidState:
		return "invalid state"
	case KindIllegalArgument:
		return "illegal argument"
	case KindRuntime:
		return "runtime error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every operation in this package.
type Error struct {
	Kind   ErrorKind
	Op     string
	Detail string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("rs: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind. When the target
// carries a Detail, the details must match as well, so both
// errors.Is(err, ErrInvalidState) and errors.Is(err, ErrDestroyed) work.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Detail == "" || t.Detail == e.Detail
}

// Kind-level sentinels, for errors.Is.
var (
	ErrInvalidState    = &Error{Kind: KindInvalidState}
	ErrIllegalArgument = &Error{Kind: KindIllegalArgument}
	ErrRuntime         = &Error{Kind: KindRuntime}
)

// Detailed sentinels for the object lifetime contract.
var (
	// ErrDestroyed is returned when using an object after Destroy.
	ErrDestroyed = &Error{Kind: KindInvalidState, Detail: "using a destroyed object"}

	// ErrAlreadyDestroyed is returned by a second Destroy.
	ErrAlreadyDestroyed = &Error{Kind: KindInvalidState, Detail: "object already destroyed"}

	// ErrContextMismatch is returned when an object is used with a context
	// other than the one that created it.
	ErrContextMismatch = &Error{Kind: KindInvalidState, Detail: "using object with mismatched context"}

	// ErrAlreadyBound is returned when binding an id to an object that has one.
	ErrAlreadyBound = &Error{Kind: KindInvalidState, Detail: "object id already bound"}

	// ErrNoContext is returned when calling into a destroyed context.
	ErrNoContext = &Error{Kind: KindInvalidState, Detail: "calling rs with no context active"}

	// ErrNotBound is returned when reading the id of an object that never
	// received one. It points at a construction-order bug.
	ErrNotBound = &Error{Kind: KindRuntime, Detail: "internal error: object id 0"}

	// ErrEmptyName is returned by SetName for an empty name.
	ErrEmptyName = &Error{Kind: KindIllegalArgument, Detail: "setName requires a string of non-zero length"}

	// ErrAlreadyNamed is returned by SetName when the object already has a name.
	ErrAlreadyNamed = &Error{Kind: KindIllegalArgument, Detail: "setName object already has a name"}
)

// newError builds an Error for op from a sentinel, keeping its kind and detail.
func newError(op string, sentinel *Error) *Error {
	return &Error{Kind: sentinel.Kind, Op: op, Detail: sentinel.Detail}
}

func invalidState(op, detail string) *Error {
	return &Error{Kind: KindInvalidState, Op: op, Detail: detail}
}

func illegalArgument(op, detail string) *Error {
	return &Error{Kind: KindIllegalArgument, Op: op, Detail: detail}
}

// runtimeError wraps a failure reported by the native runtime.
func runtimeError(op string, cause error) *Error {
	return &Error{Kind: KindRuntime, Op: op, Cause: cause}
}
