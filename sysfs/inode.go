package sysfs

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/gokernel/sysfstree/systree"
	"github.com/gokernel/sysfstree/vfs"
)

// kind tags which systree shape an Inode projects, mirroring the
// variant enumeration spec.md's design notes call for in place of
// deep inheritance.
type kind int

const (
	kindBranch kind = iota
	kindLeafDir
	kindSymlink
	kindAttr
)

// Inode projects one systree object, or one of its attributes, as a
// vfs.Inode. Inodes are cheap, created fresh on every lookup and
// enumeration; the core keeps no inode cache (an external dentry
// cache is fine, per spec.md §4.5).
type Inode struct {
	fsys *FileSystem
	kind kind

	// Populated for kindBranch/kindLeafDir/kindSymlink.
	node systree.Object

	// Populated for kindAttr.
	attrHolder systree.Node
	attr       systree.Attr
	dirIno     uint64

	// ctime is captured once, at projection time, and never
	// refreshed; it stands in for atime/mtime/ctime alike since
	// sysfs inodes carry no real access/modify history.
	ctime time.Time

	mu   sync.RWMutex
	mode vfs.InodeMode
}

var _ vfs.Inode = (*Inode)(nil)

func newBranchInode(fsys *FileSystem, b *systree.Branch) *Inode {
	return &Inode{fsys: fsys, kind: kindBranch, node: b, ctime: Now(), mode: vfs.ModeDir}
}

func newLeafDirInode(fsys *FileSystem, l *systree.Leaf) *Inode {
	return &Inode{fsys: fsys, kind: kindLeafDir, node: l, ctime: Now(), mode: vfs.ModeDir}
}

func newSymlinkInode(fsys *FileSystem, s *systree.Symlink) *Inode {
	return &Inode{fsys: fsys, kind: kindSymlink, node: s, ctime: Now(), mode: vfs.ModeSymlink}
}

func newAttrInode(fsys *FileSystem, holder systree.Node, dirIno uint64, attr systree.Attr) *Inode {
	var mode vfs.InodeMode
	if attr.Flags().Has(systree.CanRead) {
		mode |= 0o400
	}
	if attr.Flags().Has(systree.CanWrite) {
		mode |= 0o200
	}
	return &Inode{
		fsys:       fsys,
		kind:       kindAttr,
		attrHolder: holder,
		attr:       attr,
		dirIno:     dirIno,
		ctime:      Now(),
		mode:       mode,
	}
}

// ino returns this inode's reported inode number.
func (n *Inode) ino() uint64 {
	if n.kind == kindAttr {
		return InoOfAttr(n.dirIno, n.attr.ID())
	}
	return InoOfNode(n.node.ID())
}

func (n *Inode) vfsType() vfs.InodeType {
	switch n.kind {
	case kindSymlink:
		return vfs.TypeSymlink
	case kindAttr:
		return vfs.TypeFile
	default:
		return vfs.TypeDir
	}
}

// Stat implements vfs.Inode.
func (n *Inode) Stat(_ context.Context) (vfs.Metadata, error) {
	n.mu.RLock()
	mode := n.mode
	n.mu.RUnlock()

	return vfs.Metadata{
		Ino:   n.ino(),
		Type:  n.vfsType(),
		Mode:  mode,
		Size:  0,
		Atime: n.ctime,
		Mtime: n.ctime,
		Ctime: n.ctime,
	}, nil
}

// SetMode implements vfs.Inode. It updates only this ephemeral
// projection's in-memory mode; since the core never caches inodes,
// the change is visible to any holder of this same *Inode value but
// does not persist across a fresh lookup.
func (n *Inode) SetMode(_ context.Context, mode vfs.InodeMode) error {
	n.mu.Lock()
	n.mode = mode
	n.mu.Unlock()
	return nil
}

// SetOwner implements vfs.Inode; sysfs inodes are never chown-able.
func (n *Inode) SetOwner(_ context.Context, _ vfs.Owner) error {
	return vfs.ErrNotPermitted
}

// ReadAt implements vfs.Inode. Valid only on attribute (TypeFile)
// inodes; offset is ignored, matching the unresolved source TODO
// spec.md §9 documents rather than guesses at.
func (n *Inode) ReadAt(_ context.Context, p []byte, _ int64) (int, error) {
	if n.kind != kindAttr {
		return 0, vfs.ErrInvalid
	}
	buf := &sliceWriter{buf: p}
	written, err := n.attrHolder.ReadAttr(n.attr.Name(), buf)
	if err != nil {
		return written, err
	}
	return written, nil
}

// WriteAt implements vfs.Inode. Valid only on attribute inodes;
// offset is ignored.
func (n *Inode) WriteAt(_ context.Context, p []byte, _ int64) (int, error) {
	if n.kind != kindAttr {
		return 0, vfs.ErrInvalid
	}
	if err := n.attrHolder.WriteAttr(n.attr.Name(), bytes.NewReader(p)); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadLink implements vfs.Inode. Valid only on symlink inodes.
func (n *Inode) ReadLink(_ context.Context) (string, error) {
	sym, ok := n.node.(systree.SymlinkObj)
	if !ok {
		return "", vfs.ErrInvalid
	}
	return sym.TargetPath(), nil
}

// Poll implements vfs.Inode; sysfs inodes are always ready for
// whatever the caller asks about.
func (n *Inode) Poll(_ context.Context, mask uint32) (uint32, error) {
	return mask, nil
}

// Resize implements vfs.Inode; sysfs inodes have no resizable
// backing store.
func (n *Inode) Resize(_ context.Context, _ uint64) error {
	return vfs.ErrNotSupported
}

// Fallocate implements vfs.Inode.
func (n *Inode) Fallocate(_ context.Context, _, _ int64) error {
	return vfs.ErrNotSupported
}

// Sync, SyncAll and SyncData implement vfs.Inode as no-op successes;
// there is nothing in memory to flush.
func (n *Inode) Sync(_ context.Context) error     { return nil }
func (n *Inode) SyncAll(_ context.Context) error  { return nil }
func (n *Inode) SyncData(_ context.Context) error { return nil }

// sliceWriter adapts a fixed []byte into an io.Writer that reports
// io.ErrShortWrite once it fills up, instead of growing.
type sliceWriter struct {
	buf []byte
	n   int
}

func (s *sliceWriter) Write(p []byte) (int, error) {
	room := len(s.buf) - s.n
	if room <= 0 && len(p) > 0 {
		return 0, io.ErrShortWrite
	}
	k := len(p)
	if k > room {
		k = room
	}
	copy(s.buf[s.n:], p[:k])
	s.n += k
	if k < len(p) {
		return k, io.ErrShortWrite
	}
	return k, nil
}
