package systree

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Tree owns a single root Branch and the EventHub that reports
// changes beneath it. It is the Go analogue of the Rust source's
// `SysTree`.
type Tree struct {
	root *Branch
	hub  *EventHub
}

// NewTree constructs a tree with an empty root branch. log may be nil
// to disable event logging.
func NewTree(log logrus.FieldLogger) *Tree {
	return &Tree{
		root: newBranch("", &EmptyAttrSet, nil),
		hub:  NewEventHub(log),
	}
}

// Root returns the tree's root branch. The root has an empty name and
// no attributes; every other node's path is computed relative to it.
func (t *Tree) Root() *Branch { return t.root }

// Publish reports a change at obj to every registered observer that
// admits it.
func (t *Tree) Publish(obj Object, action Action, details []KV) {
	t.hub.Publish(obj, action, details)
}

// Hub returns the tree's event hub. Registering and unregistering
// observers is done through the package-level Register/Unregister
// generic functions against this hub, since Go methods cannot
// themselves carry type parameters.
func (t *Tree) Hub() *EventHub { return t.hub }

var (
	singletonOnce sync.Once
	singleton     *Tree
)

// Singleton returns the process-wide default tree, constructing it
// (with logging disabled) on first use. Most callers that need more
// than one tree, or that want event logging, should call NewTree
// directly instead.
func Singleton() *Tree {
	singletonOnce.Do(func() {
		singleton = NewTree(nil)
	})
	return singleton
}
