package refnodes

import (
	"io"
	"strings"
	"sync"
)

// KVAttr is a mutable string attribute, readable and writable, the
// way a tunable like /sys/.../enabled works: userspace writes a new
// value and later reads see it.
type KVAttr struct {
	mu    sync.RWMutex
	value string
}

// NewKVAttr returns a KVAttr holding the given initial value.
func NewKVAttr(initial string) *KVAttr {
	return &KVAttr{value: initial}
}

// Get returns the current value.
func (k *KVAttr) Get() string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.value
}

// Set replaces the current value.
func (k *KVAttr) Set(v string) {
	k.mu.Lock()
	k.value = v
	k.mu.Unlock()
}

// ReadAttr implements systree.AttrIO.
func (k *KVAttr) ReadAttr(_ string, w io.Writer) (int, error) {
	return io.WriteString(w, k.Get())
}

// WriteAttr implements systree.AttrIO. A single trailing newline, the
// usual shell-echo convention, is stripped; anything else is taken
// verbatim.
func (k *KVAttr) WriteAttr(_ string, r io.Reader) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	k.Set(strings.TrimSuffix(string(b), "\n"))
	return nil
}
