package refnodes

import (
	"fmt"
	"io"
	"strconv"
	"sync/atomic"
)

// CounterAttr is a read-only attribute that renders a 64-bit counter
// as decimal text, the way a statistics file under /sys typically
// does. The counter is updated out of band by calling Add; ReadAttr
// only renders the current snapshot, never mutates it.
type CounterAttr struct {
	value atomic.Int64
}

// NewCounterAttr returns a CounterAttr starting at initial.
func NewCounterAttr(initial int64) *CounterAttr {
	c := &CounterAttr{}
	c.value.Store(initial)
	return c
}

// Add atomically adds delta to the counter and returns the new value.
func (c *CounterAttr) Add(delta int64) int64 { return c.value.Add(delta) }

// Load returns the counter's current value.
func (c *CounterAttr) Load() int64 { return c.value.Load() }

// ReadAttr implements systree.AttrIO.
func (c *CounterAttr) ReadAttr(_ string, w io.Writer) (int, error) {
	return io.WriteString(w, strconv.FormatInt(c.value.Load(), 10))
}

// WriteAttr implements systree.AttrIO; CounterAttr is always
// read-only.
func (c *CounterAttr) WriteAttr(name string, _ io.Reader) error {
	return fmt.Errorf("refnodes: attribute %q is read-only", name)
}
