package sysfs

import (
	"context"

	"github.com/gokernel/sysfstree/systree"
	"github.com/gokernel/sysfstree/vfs"
)

// FileSystem projects a systree.Tree as a vfs.FileSystem: the whole-
// filesystem operation set a host (see internal/fusebridge) drives.
type FileSystem struct {
	tree *systree.Tree
}

var _ vfs.FileSystem = (*FileSystem)(nil)

// NewFileSystem wraps tree for projection. tree must not be nil.
func NewFileSystem(tree *systree.Tree) *FileSystem {
	return &FileSystem{tree: tree}
}

// Tree returns the underlying model tree, for controllers that need
// to add or remove nodes beneath the mounted filesystem.
func (f *FileSystem) Tree() *systree.Tree { return f.tree }

// Sync implements vfs.FileSystem; there is nothing to flush.
func (f *FileSystem) Sync(_ context.Context) error { return nil }

// RootInode implements vfs.FileSystem.
func (f *FileSystem) RootInode(_ context.Context) (vfs.Inode, error) {
	return newBranchInode(f, f.tree.Root()), nil
}

// SuperBlock implements vfs.FileSystem, reporting the same magic,
// block size, and name-max values as Linux sysfs.
func (f *FileSystem) SuperBlock() vfs.SuperBlock {
	return vfs.DefaultSuperBlock
}
