package systree

import "fmt"

// AttrFlags is a bit set over the capabilities of an attribute. The
// zero value has no bits set, not even CanRead; there is no implicit
// default, and AttrSetBuilder.Add stores exactly the flags it is given.
type AttrFlags uint8

const (
	// CanRead indicates an attribute can be shown or read.
	CanRead AttrFlags = 1 << iota
	// CanWrite indicates an attribute can be stored or written.
	CanWrite
	// IsBinary indicates an attribute is a binary one rather than
	// a textual one. The core does not interpret this bit; it is
	// informational for the AttrIO handler only and does not affect
	// projected sysfs file modes.
	IsBinary
)

func (f AttrFlags) Has(bit AttrFlags) bool {
	return f&bit != 0
}

func (f AttrFlags) String() string {
	s := ""
	if f.Has(CanRead) {
		s += "r"
	}
	if f.Has(CanWrite) {
		s += "w"
	}
	if f.Has(IsBinary) {
		s += "b"
	}
	if s == "" {
		return "-"
	}
	return s
}

// AttrSetCapacity is the maximum number of attributes an AttrSet may
// hold. Attribute IDs are assigned densely starting at 0 and are
// encoded as the low 8 bits of a sysfs inode number, so the set must
// never exceed 256 entries; see sysfs/ino.go.
const AttrSetCapacity = 256

// Attr is a single immutable named attribute of a node.
type Attr struct {
	id    uint8
	name  string
	flags AttrFlags
}

// ID returns the attribute's index within its owning AttrSet. IDs are
// dense, 0-based, and assigned in insertion order by AttrSetBuilder.
func (a Attr) ID() uint8 { return a.id }

// Name returns the attribute's name.
func (a Attr) Name() string { return a.name }

// Flags returns the attribute's capability bits.
func (a Attr) Flags() AttrFlags { return a.flags }

func (a Attr) String() string {
	return fmt.Sprintf("%s(%s,id=%d)", a.name, a.flags, a.id)
}

// AttrSet is an immutable, ordered collection of at most
// AttrSetCapacity attributes, optionally built on top of an inherited
// parent set. Once built, attribute membership and IDs never change.
type AttrSet struct {
	own    []Attr
	parent *AttrSet
}

// EmptyAttrSet is the attribute set with no attributes, used by nodes
// that expose none (such as the tree root).
var EmptyAttrSet = AttrSet{}

// Len returns the total number of attributes, including any inherited
// from a parent set.
func (s *AttrSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.own) + s.parent.Len()
}

// IsEmpty reports whether the set has no attributes at all.
func (s *AttrSet) IsEmpty() bool {
	return s.Len() == 0
}

// Get looks up an attribute by name, searching this set's own
// attributes before its inherited parent set.
func (s *AttrSet) Get(name string) (Attr, bool) {
	if s == nil {
		return Attr{}, false
	}
	for _, a := range s.own {
		if a.name == name {
			return a, true
		}
	}
	return s.parent.Get(name)
}

// Contains reports whether name is present in the set.
func (s *AttrSet) Contains(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// GetByID looks up an attribute by its dense ID.
func (s *AttrSet) GetByID(id uint8) (Attr, bool) {
	if s == nil {
		return Attr{}, false
	}
	for _, a := range s.own {
		if a.id == id {
			return a, true
		}
	}
	return s.parent.GetByID(id)
}

// All returns every attribute in the set, in ascending ID order. The
// parent set's attributes (lower IDs, since they were assigned before
// this set's own attributes) come first.
func (s *AttrSet) All() []Attr {
	if s == nil {
		return nil
	}
	out := s.parent.All()
	return append(out, s.own...)
}

// AttrSetBuilder builds an AttrSet, enforcing name uniqueness across
// both the attributes being added and an optional inherited parent
// set. Attribute IDs are assigned densely starting at len(parent) in
// insertion order.
type AttrSetBuilder struct {
	totalAttrs int
	own        []Attr
	parent     *AttrSet
}

// NewAttrSetBuilder starts building a set with no inherited
// attributes.
func NewAttrSetBuilder() *AttrSetBuilder {
	return &AttrSetBuilder{}
}

// NewAttrSetBuilderWithParent starts building a set that inherits all
// attributes (and their IDs) from parent. Attributes named the same
// as one already in parent are silently ignored by Add, matching the
// Rust source's builder.
func NewAttrSetBuilderWithParent(parent *AttrSet) *AttrSetBuilder {
	return &AttrSetBuilder{
		totalAttrs: parent.Len(),
		parent:     parent,
	}
}

// Add appends a new attribute with the given name and flags. It is a
// no-op if the name already exists in the parent set or has already
// been added to this builder. Add panics if the set would exceed
// AttrSetCapacity, the invariant violation spec.md §7 calls out for
// attribute-set capacity breach.
func (b *AttrSetBuilder) Add(name string, flags AttrFlags) *AttrSetBuilder {
	if b.parent.Contains(name) {
		return b
	}
	for _, a := range b.own {
		if a.name == name {
			return b
		}
	}
	if b.totalAttrs >= AttrSetCapacity {
		panic("systree: attribute set capacity exceeded")
	}
	b.own = append(b.own, Attr{
		id:    uint8(b.totalAttrs),
		name:  name,
		flags: flags,
	})
	b.totalAttrs++
	return b
}

// Build finalizes the set. The builder must not be reused afterwards.
func (b *AttrSetBuilder) Build() *AttrSet {
	return &AttrSet{own: b.own, parent: b.parent}
}
