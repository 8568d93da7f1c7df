package systree

import (
	"io"
	"sort"
	"sync"
)

// parentLinker is implemented by nodeCore (and so, by promotion, by
// every concrete node type) to let Branch manage the weak upward
// reference of a child without exposing mutation through the public
// Object interface.
type parentLinker interface {
	setParent(*Branch)
	clearParent()
}

// Branch is a node that may contain children keyed by name, in
// addition to carrying its own attribute set. It is the Go analogue
// of the Rust source's `SysBranchNode` trait plus its
// `SysBranchNodeFields` reference implementation.
type Branch struct {
	nodeCore
	attrs *AttrSet
	io    AttrIO

	mu       sync.RWMutex
	children map[string]Object
}

var (
	_ Object = (*Branch)(nil)
	_ Node   = (*Branch)(nil)
)

// NewBranch constructs a detached branch with the given name,
// attribute set, and attribute I/O handler. attrs may be nil,
// equivalent to an empty set; io may be nil if and only if attrs is
// empty. name must be non-empty and contain neither '/' nor NUL.
func NewBranch(name string, attrs *AttrSet, io AttrIO) (*Branch, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return newBranch(name, attrs, io), nil
}

func newBranch(name string, attrs *AttrSet, io AttrIO) *Branch {
	if attrs == nil {
		attrs = &EmptyAttrSet
	}
	if !attrs.IsEmpty() && io == nil {
		panic("systree: branch has attributes but no AttrIO handler")
	}
	return &Branch{
		nodeCore: newNodeCore(name, KindBranch),
		attrs:    attrs,
		io:       io,
		children: make(map[string]Object),
	}
}

// Path returns the root-relative path of the branch; see
// computePath.
func (b *Branch) Path() (string, bool) { return computePath(b) }

// Attrs returns the branch's immutable attribute set.
func (b *Branch) Attrs() *AttrSet { return b.attrs }

// ReadAttr implements Node.
func (b *Branch) ReadAttr(name string, w io.Writer) (int, error) {
	return readAttr(b, b.attrs, b.io, name, w)
}

// WriteAttr implements Node.
func (b *Branch) WriteAttr(name string, r io.Reader) error {
	return writeAttr(b, b.attrs, b.io, name, r)
}

// Contains reports whether the branch has a child of the given name.
func (b *Branch) Contains(name string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.children[name]
	return ok
}

// AddChild attaches child under the given name. It fails with
// AlreadyExists if the branch already has a child of that name.
func (b *Branch) AddChild(child Object) error {
	name := child.Name()
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.children[name]; exists {
		path, _ := b.Path()
		return newError(AlreadyExists, path+"/"+name)
	}
	b.children[name] = child
	if linker, ok := child.(parentLinker); ok {
		linker.setParent(b)
	}
	return nil
}

// RemoveChild detaches and returns the child of the given name, if
// any.
func (b *Branch) RemoveChild(name string) (Object, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	child, ok := b.children[name]
	if !ok {
		return nil, false
	}
	delete(b.children, name)
	if linker, ok := child.(parentLinker); ok {
		linker.clearParent()
	}
	return child, true
}

// VisitChild invokes visit exactly once: with the named child if
// present, or with a nil Object otherwise. The implementation holds
// an internal read lock for the duration of the call; visit must not
// call back into this branch (or any operation that would need the
// lock) or it will deadlock.
func (b *Branch) VisitChild(name string, visit func(Object)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	visit(b.children[name])
}

// VisitChildren invokes visit once per child whose ID is >= minID, in
// ascending ID order, until visit returns false or children are
// exhausted. Like VisitChild, the internal lock is held for the
// duration of the call.
func (b *Branch) VisitChildren(minID NodeID, visit func(Object) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ordered := make([]Object, 0, len(b.children))
	for _, c := range b.children {
		if c.ID() >= minID {
			ordered = append(ordered, c)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID() < ordered[j].ID() })

	for _, c := range ordered {
		if !visit(c) {
			return
		}
	}
}

// Child is the convenience form of VisitChild.
func (b *Branch) Child(name string) (Object, bool) {
	var result Object
	b.VisitChild(name, func(c Object) { result = c })
	return result, result != nil
}

// Children is the convenience form of VisitChildren that collects
// every child.
func (b *Branch) Children() []Object {
	var result []Object
	b.VisitChildren(0, func(c Object) bool {
		result = append(result, c)
		return true
	})
	return result
}

// CountChildren is the convenience form of VisitChildren that counts
// children without allocating a slice.
func (b *Branch) CountChildren() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.children)
}
