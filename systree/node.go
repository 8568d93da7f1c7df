package systree

import (
	"io"
	"strings"
)

// Kind identifies which of the three node variants a node is.
type Kind int

const (
	// KindBranch is a node that may have children.
	KindBranch Kind = iota
	// KindLeaf is a node that carries attributes but never
	// children.
	KindLeaf
	// KindSymlink is a node whose sole content is a target path
	// string.
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Object is the capability set every node in a SysTree exposes,
// regardless of kind: identity, type, name, upward reference, and
// path. It is the Go analogue of the Rust source's `SysObj` trait.
type Object interface {
	// ID returns the node's process-wide unique, immutable
	// identifier.
	ID() NodeID
	// Kind returns which node variant this is.
	Kind() Kind
	// Name returns the node's name. Only the tree root may have
	// an empty name.
	Name() string
	// Parent returns the node's parent branch and true, or
	// (nil, false) if the node is the tree root or is not
	// currently attached to a tree.
	Parent() (*Branch, bool)
	// Path returns the root-relative, '/'-separated path of the
	// node, and true, or ("", false) if the node has not been
	// attached to a tree. An attached path always begins with
	// '/'.
	Path() (string, bool)
}

// AttrIO backs the byte-level semantics of a node's attributes. A
// controller supplies one AttrIO per Branch or Leaf it constructs;
// the node model itself only enforces attribute existence and flags,
// never interprets attribute bytes (textual vs binary, per
// AttrFlags.IsBinary, is entirely up to the handler).
type AttrIO interface {
	// ReadAttr writes the current value of the named attribute to
	// w and returns the number of bytes written. name is
	// guaranteed to exist in the node's AttrSet and to have
	// CanRead set before this is called.
	ReadAttr(name string, w io.Writer) (int, error)
	// WriteAttr reads a new value for the named attribute from r.
	// name is guaranteed to exist in the node's AttrSet and to
	// have CanWrite set before this is called.
	WriteAttr(name string, r io.Reader) error
}

// Node is the capability set shared by Branch and Leaf: both may
// carry attributes. It is the Go analogue of the Rust source's
// `SysNode` trait.
type Node interface {
	Object
	// Attrs returns the node's immutable attribute set.
	Attrs() *AttrSet
	// ReadAttr reads the named attribute into w. It fails with a
	// NotFound error if the attribute is absent, NotPermitted if
	// the attribute lacks CanRead, or an Invalid error whose Cause
	// is the error the node's AttrIO handler returned.
	ReadAttr(name string, w io.Writer) (int, error)
	// WriteAttr writes the named attribute from r. It fails with a
	// NotFound error if the attribute is absent, NotPermitted if
	// the attribute lacks CanWrite, or an Invalid error whose Cause
	// is the error the node's AttrIO handler returned.
	WriteAttr(name string, r io.Reader) error
}

// SymlinkObj is the capability set of a symlink node. It is the Go
// analogue of the Rust source's `SysSymlink` trait.
type SymlinkObj interface {
	Object
	// TargetPath returns the symlink's target, as an opaque path
	// string. No resolution is performed by the core.
	TargetPath() string
}

// ValidateName checks the invariant spec.md §3 places on node names:
// non-root nodes must have a non-empty name containing neither '/'
// nor NUL.
func ValidateName(name string) error {
	if name == "" {
		return newError(Invalid, name)
	}
	if strings.ContainsAny(name, "/\x00") {
		return newError(Invalid, name)
	}
	return nil
}
