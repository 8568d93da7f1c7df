package systree

import "fmt"

// ErrorKind classifies the errors systree can return. It is the
// "kind, not concrete type" error taxonomy spec.md §7 describes for
// the node-model layer.
type ErrorKind int

const (
	// NotFound means a name was absent from a lookup, or an
	// attribute name was absent from an attribute set.
	NotFound ErrorKind = iota
	// NotPermitted means an attribute lacks the flag (CAN_READ or
	// CAN_WRITE) required for the requested operation.
	NotPermitted
	// AlreadyExists means a branch already has a child of the
	// given name.
	AlreadyExists
	// Invalid means a malformed argument, such as a node name
	// containing '/' or NUL.
	Invalid
)

func (k ErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case NotPermitted:
		return "not permitted"
	case AlreadyExists:
		return "already exists"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by systree operations.
// Path is the path of the node the error concerns, when known; Cause
// wraps an underlying error from an AttrIO handler, when the failure
// originated there.
type Error struct {
	Kind  ErrorKind
	Path  string
	Attr  string
	Cause error
}

func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("systree: %s: %s: %v", e.Path, e.Kind, e.Cause)
	case e.Attr != "":
		return fmt.Sprintf("systree: %s: attr %q: %s", e.Path, e.Attr, e.Kind)
	default:
		return fmt.Sprintf("systree: %s: %s", e.Path, e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(kind ErrorKind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}

func newAttrError(kind ErrorKind, path, attr string) *Error {
	return &Error{Kind: kind, Path: path, Attr: attr}
}

// NewNotFoundError reports that name was absent during a lookup.
// Exported for callers outside systree, such as sysfs's projection
// layer, that need to report the same NotFound kind the node model
// itself uses for missing children and attributes.
func NewNotFoundError(name string) *Error {
	return &Error{Kind: NotFound, Path: name}
}
