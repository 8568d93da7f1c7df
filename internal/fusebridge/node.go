// Package fusebridge adapts the small vfs.FileSystem/vfs.Inode
// boundary onto a real kernel mount via github.com/hanwen/go-fuse/v2.
// It holds no sysfs-specific knowledge: anything implementing the vfs
// package's interfaces can be mounted through it.
package fusebridge

import (
	"context"
	"io"
	"syscall"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/gokernel/sysfstree/vfs"
)

// Node bridges one vfs.Inode into go-fuse's InodeEmbedder tree. It
// carries no state beyond the wrapped vfs.Inode: every operation is a
// direct pass-through, since the sysfs core itself creates inode
// projections fresh on every lookup rather than caching them.
type Node struct {
	fs.Inode
	vnode vfs.Inode
}

var (
	_ fs.InodeEmbedder  = (*Node)(nil)
	_ fs.NodeLookuper   = (*Node)(nil)
	_ fs.NodeReaddirer  = (*Node)(nil)
	_ fs.NodeGetattrer  = (*Node)(nil)
	_ fs.NodeSetattrer  = (*Node)(nil)
	_ fs.NodeReader     = (*Node)(nil)
	_ fs.NodeWriter     = (*Node)(nil)
	_ fs.NodeReadlinker = (*Node)(nil)
)

func wrap(v vfs.Inode) *Node { return &Node{vnode: v} }

// Root builds the go-fuse root InodeEmbedder for fsys.
func Root(ctx context.Context, fsys vfs.FileSystem) (*Node, error) {
	root, err := fsys.RootInode(ctx)
	if err != nil {
		return nil, err
	}
	return wrap(root), nil
}

// Lookup implements fs.NodeLookuper by delegating to the wrapped
// inode's Lookup and projecting the result as a child go-fuse Inode.
func (n *Node) Lookup(ctx context.Context, name string, out *fuse.EntryOut) (*fs.Inode, syscall.Errno) {
	child, err := n.vnode.Lookup(ctx, name)
	if err != nil {
		return nil, vfs.ToErrno(err)
	}
	meta, err := child.Stat(ctx)
	if err != nil {
		return nil, vfs.ToErrno(err)
	}
	fillAttr(&out.Attr, meta)
	out.SetEntryTimeout(0)
	out.SetAttrTimeout(0)

	stable := fs.StableAttr{Mode: modeBits(meta), Ino: meta.Ino}
	childInode := n.NewInode(ctx, wrap(child), stable)
	return childInode, 0
}

// Readdir implements fs.NodeReaddirer by draining the wrapped inode's
// full offset-as-min-ino enumeration into an in-memory DirStream;
// go-fuse itself handles paging the result back to the kernel.
func (n *Node) Readdir(ctx context.Context) (fs.DirStream, syscall.Errno) {
	var entries []fuse.DirEntry
	visitor := dirVisitorFunc(func(d vfs.Dirent) bool {
		entries = append(entries, fuse.DirEntry{
			Name: d.Name,
			Ino:  d.Ino,
			Mode: direntModeBits(d.Type),
		})
		return true
	})
	if _, err := n.vnode.ReaddirAt(ctx, 0, visitor); err != nil {
		return nil, vfs.ToErrno(err)
	}
	return fs.NewListDirStream(entries), 0
}

// Getattr implements fs.NodeGetattrer.
func (n *Node) Getattr(ctx context.Context, _ fs.FileHandle, out *fuse.AttrOut) syscall.Errno {
	meta, err := n.vnode.Stat(ctx)
	if err != nil {
		return vfs.ToErrno(err)
	}
	fillAttr(&out.Attr, meta)
	return 0
}

// Setattr implements fs.NodeSetattrer. Only mode changes are
// meaningful; sysfs inodes reject chown via vfs.Inode.SetOwner.
func (n *Node) Setattr(ctx context.Context, _ fs.FileHandle, in *fuse.SetAttrIn, out *fuse.AttrOut) syscall.Errno {
	if in.Valid&fuse.FATTR_MODE != 0 {
		if err := n.vnode.SetMode(ctx, vfs.InodeMode(in.Mode&0o777)); err != nil {
			return vfs.ToErrno(err)
		}
	}
	if in.Valid&(fuse.FATTR_UID|fuse.FATTR_GID) != 0 {
		if err := n.vnode.SetOwner(ctx, vfs.Owner{UID: in.Uid, GID: in.Gid}); err != nil {
			return vfs.ToErrno(err)
		}
	}
	meta, err := n.vnode.Stat(ctx)
	if err != nil {
		return vfs.ToErrno(err)
	}
	fillAttr(&out.Attr, meta)
	return 0
}

// Read implements fs.NodeReader; valid only on attribute inodes.
func (n *Node) Read(ctx context.Context, _ fs.FileHandle, dest []byte, off int64) (fuse.ReadResult, syscall.Errno) {
	read, err := n.vnode.ReadAt(ctx, dest, off)
	if err != nil && err != io.EOF {
		return nil, vfs.ToErrno(err)
	}
	return fuse.ReadResultData(dest[:read]), 0
}

// Write implements fs.NodeWriter; valid only on attribute inodes.
func (n *Node) Write(ctx context.Context, _ fs.FileHandle, data []byte, off int64) (uint32, syscall.Errno) {
	written, err := n.vnode.WriteAt(ctx, data, off)
	if err != nil {
		return 0, vfs.ToErrno(err)
	}
	return uint32(written), 0
}

// Readlink implements fs.NodeReadlinker; valid only on symlink
// inodes.
func (n *Node) Readlink(ctx context.Context) ([]byte, syscall.Errno) {
	target, err := n.vnode.ReadLink(ctx)
	if err != nil {
		return nil, vfs.ToErrno(err)
	}
	return []byte(target), 0
}

type dirVisitorFunc func(vfs.Dirent) bool

func (f dirVisitorFunc) Visit(d vfs.Dirent) bool { return f(d) }

func fillAttr(a *fuse.Attr, meta vfs.Metadata) {
	a.Ino = meta.Ino
	a.Size = meta.Size
	a.Mode = modeBits(meta)
	a.Atime = uint64(meta.Atime.Unix())
	a.Mtime = uint64(meta.Mtime.Unix())
	a.Ctime = uint64(meta.Ctime.Unix())
	a.Uid = meta.Owner.UID
	a.Gid = meta.Owner.GID
}

func modeBits(meta vfs.Metadata) uint32 {
	switch meta.Type {
	case vfs.TypeDir:
		return syscall.S_IFDIR | uint32(meta.Mode)
	case vfs.TypeSymlink:
		return syscall.S_IFLNK | uint32(meta.Mode)
	default:
		return syscall.S_IFREG | uint32(meta.Mode)
	}
}

func direntModeBits(t vfs.InodeType) uint32 {
	switch t {
	case vfs.TypeDir:
		return syscall.S_IFDIR
	case vfs.TypeSymlink:
		return syscall.S_IFLNK
	default:
		return syscall.S_IFREG
	}
}
