package systree

import "io"

// Leaf is a node that carries attributes but never children. It is
// the Go analogue of the Rust source's leaf node variant plus its
// `SysNormalNodeFields` reference implementation.
type Leaf struct {
	nodeCore
	attrs *AttrSet
	io    AttrIO
}

var (
	_ Object = (*Leaf)(nil)
	_ Node   = (*Leaf)(nil)
)

// NewLeaf constructs a detached leaf with the given name, attribute
// set, and attribute I/O handler. attrs may be nil, equivalent to an
// empty set; io may be nil if and only if attrs is empty.
func NewLeaf(name string, attrs *AttrSet, io AttrIO) (*Leaf, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if attrs == nil {
		attrs = &EmptyAttrSet
	}
	if !attrs.IsEmpty() && io == nil {
		panic("systree: leaf has attributes but no AttrIO handler")
	}
	return &Leaf{
		nodeCore: newNodeCore(name, KindLeaf),
		attrs:    attrs,
		io:       io,
	}, nil
}

// Path returns the root-relative path of the leaf; see computePath.
func (l *Leaf) Path() (string, bool) { return computePath(l) }

// Attrs returns the leaf's immutable attribute set.
func (l *Leaf) Attrs() *AttrSet { return l.attrs }

// ReadAttr implements Node.
func (l *Leaf) ReadAttr(name string, w io.Writer) (int, error) {
	return readAttr(l, l.attrs, l.io, name, w)
}

// WriteAttr implements Node.
func (l *Leaf) WriteAttr(name string, r io.Reader) error {
	return writeAttr(l, l.attrs, l.io, name, r)
}
