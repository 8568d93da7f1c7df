package systree

import (
	"sync"
	"weak"
)

// nodeCore is the embeddable field set shared by Branch, Leaf, and
// Symlink: identity plus the weak upward reference to a parent
// branch. It is the completion of `original_source/systree/src/utils.rs`'s
// sketched (but unfinished) `SysObjFields`.
type nodeCore struct {
	id   NodeID
	name string
	kind Kind

	mu     sync.RWMutex
	parent weak.Pointer[Branch]
}

func newNodeCore(name string, kind Kind) nodeCore {
	return nodeCore{id: newNodeID(), name: name, kind: kind}
}

func (c *nodeCore) ID() NodeID   { return c.id }
func (c *nodeCore) Kind() Kind   { return c.kind }
func (c *nodeCore) Name() string { return c.name }

// Parent returns the owning branch, or (nil, false) if this node has
// no parent: either it is the tree root, or it has not yet been
// attached via Branch.AddChild, or it has since been detached via
// Branch.RemoveChild.
func (c *nodeCore) Parent() (*Branch, bool) {
	c.mu.RLock()
	p := c.parent
	c.mu.RUnlock()
	b := p.Value()
	return b, b != nil
}

func (c *nodeCore) setParent(b *Branch) {
	c.mu.Lock()
	c.parent = weak.Make(b)
	c.mu.Unlock()
}

func (c *nodeCore) clearParent() {
	c.mu.Lock()
	c.parent = weak.Pointer[Branch]{}
	c.mu.Unlock()
}
