// Package refnodes provides small, reusable AttrIO implementations for
// the common attribute shapes a systree node needs: a fixed value set
// once at construction, an atomically updated counter, and a mutable
// string.
// They complete the reference implementations sketched, but never
// finished, by the original systree sources.
package refnodes

import (
	"fmt"
	"io"
)

// StaticAttr is a read-only attribute backed by a byte slice fixed at
// construction time.
type StaticAttr struct {
	content []byte
}

// NewStaticAttr returns a StaticAttr that always reads back content.
// content is not copied; callers must not mutate it afterward.
func NewStaticAttr(content []byte) *StaticAttr {
	return &StaticAttr{content: content}
}

// ReadAttr implements systree.AttrIO.
func (s *StaticAttr) ReadAttr(_ string, w io.Writer) (int, error) {
	return w.Write(s.content)
}

// WriteAttr implements systree.AttrIO; StaticAttr is always read-only.
func (s *StaticAttr) WriteAttr(name string, _ io.Reader) error {
	return fmt.Errorf("refnodes: attribute %q is read-only", name)
}
