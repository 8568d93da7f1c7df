package refnodes

import (
	"fmt"
	"io"

	"github.com/gokernel/sysfstree/systree"
)

// MultiAttrIO composes several single-purpose AttrIO handlers, one
// per attribute name, into the single handler a systree Branch or
// Leaf requires. It lets a node mix, say, one StaticAttr and two
// KVAttrs under one set of names without writing a bespoke switch.
type MultiAttrIO map[string]systree.AttrIO

var _ systree.AttrIO = MultiAttrIO(nil)

// ReadAttr implements systree.AttrIO by dispatching to the handler
// registered for name.
func (m MultiAttrIO) ReadAttr(name string, w io.Writer) (int, error) {
	h, ok := m[name]
	if !ok {
		return 0, fmt.Errorf("refnodes: no handler registered for attribute %q", name)
	}
	return h.ReadAttr(name, w)
}

// WriteAttr implements systree.AttrIO by dispatching to the handler
// registered for name.
func (m MultiAttrIO) WriteAttr(name string, r io.Reader) error {
	h, ok := m[name]
	if !ok {
		return fmt.Errorf("refnodes: no handler registered for attribute %q", name)
	}
	return h.WriteAttr(name, r)
}
