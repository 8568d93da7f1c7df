package systree

// Symlink is a node whose sole content is a target path string. It
// has no children and no attributes. It is the completion of the
// Rust source's unfinished `SymlinkNode` reference implementation.
type Symlink struct {
	nodeCore
	target string
}

var (
	_ Object     = (*Symlink)(nil)
	_ SymlinkObj = (*Symlink)(nil)
)

// NewSymlink constructs a detached symlink with the given name and
// target path. The target is opaque to the core; no resolution is
// performed here.
func NewSymlink(name, target string) (*Symlink, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return &Symlink{
		nodeCore: newNodeCore(name, KindSymlink),
		target:   target,
	}, nil
}

// Path returns the root-relative path of the symlink; see
// computePath.
func (s *Symlink) Path() (string, bool) { return computePath(s) }

// TargetPath returns the symlink's target path string.
func (s *Symlink) TargetPath() string { return s.target }
