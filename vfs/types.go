// Package vfs defines the small boundary contract a sysfs.FileSystem
// must satisfy to be mounted by a real filesystem host (see
// internal/fusebridge). It intentionally mirrors go-fuse's own
// Inode/InodeEmbedder split in fs/api.go: a handful of narrow
// interfaces rather than one large one, so a host can drive any
// conforming in-process tree without depending on systree directly.
package vfs

import (
	"context"
	"time"
)

// InodeType is the kind of filesystem object an Inode projects.
type InodeType int

const (
	// TypeDir is a directory: a Branch, or a Leaf (attributes only,
	// no further children).
	TypeDir InodeType = iota
	// TypeFile is a regular file: an attribute.
	TypeFile
	// TypeSymlink is a symbolic link.
	TypeSymlink
)

func (t InodeType) String() string {
	switch t {
	case TypeDir:
		return "dir"
	case TypeFile:
		return "file"
	case TypeSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// InodeMode holds the permission bits reported for an inode. Only the
// low 9 bits (rwxrwxrwx) are meaningful; there is no setuid/setgid/
// sticky support.
type InodeMode uint32

const (
	// ModeDir is the fixed mode of every directory inode: readable
	// and executable for all, never writable.
	ModeDir InodeMode = 0o555
	// ModeSymlink is the fixed mode of every symlink inode.
	ModeSymlink InodeMode = 0o444
)

// Owner is the uid/gid pair reported for an inode.
type Owner struct {
	UID uint32
	GID uint32
}

// Metadata is the immutable-except-Mode metadata block reported for
// an inode, captured once at projection time from the coarse
// real-time clock.
type Metadata struct {
	Ino   uint64
	Type  InodeType
	Mode  InodeMode
	Size  uint64
	Atime time.Time
	Mtime time.Time
	Ctime time.Time
	Owner Owner
}

// Dirent is one entry offered to a DirentVisitor during ReaddirAt.
// Cookie is the ordering inode — the sort/gate key described in
// sysfs's enumeration protocol — which may differ from Ino for the
// synthetic "." and ".." entries.
type Dirent struct {
	Name   string
	Ino    uint64
	Type   InodeType
	Cookie uint64
}

// DirentVisitor receives directory entries from Inode.ReaddirAt, in
// order, until it returns false or entries are exhausted.
type DirentVisitor interface {
	// Visit offers one entry. It returns true if the entry was
	// accepted, false if the caller has no room for more (e.g. a
	// fixed-size getdents buffer is full).
	Visit(d Dirent) bool
}

// Inode is the per-object operation set a mounted node must support.
// All non-applicable operations (create, mknod, link, unlink, rename,
// and anything else not listed here) are simply absent: a host maps
// their absence to ENOSYS/ENOTSUP itself, since this boundary only
// models operations sysfs actually implements.
type Inode interface {
	// Stat returns the inode's current metadata.
	Stat(ctx context.Context) (Metadata, error)

	// SetMode updates the mutable mode field.
	SetMode(ctx context.Context, mode InodeMode) error
	// SetOwner always fails with ErrNotPermitted; sysfs inodes are
	// not chown-able. It exists so a host can report a consistent
	// error rather than treating the operation as unsupported.
	SetOwner(ctx context.Context, owner Owner) error

	// ReadAt and WriteAt are valid only on TypeFile inodes (attribute
	// projections); any other inode returns ErrInvalid.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	WriteAt(ctx context.Context, p []byte, off int64) (int, error)

	// Lookup resolves name within this inode. Valid only on
	// TypeDir inodes; any other inode returns ErrNotDir.
	Lookup(ctx context.Context, name string) (Inode, error)

	// ReaddirAt enumerates this directory's entries whose ordering
	// inode is >= minIno, offering each to visitor, and returns the
	// delta to add to minIno to resume after the last entry accepted
	// (an entry the visitor rejected is offered again on resumption).
	// Valid only on TypeDir inodes.
	ReaddirAt(ctx context.Context, minIno uint64, visitor DirentVisitor) (uint64, error)

	// ReadLink returns the symlink target. Valid only on
	// TypeSymlink inodes.
	ReadLink(ctx context.Context) (string, error)

	// Poll reports which bits of mask are currently ready; sysfs
	// inodes are always readable and writable.
	Poll(ctx context.Context, mask uint32) (uint32, error)

	// Resize and Fallocate always fail; sysfs inodes have no
	// resizable backing store.
	Resize(ctx context.Context, size uint64) error
	Fallocate(ctx context.Context, off, size int64) error

	// Sync, SyncAll and SyncData are no-op successes; there is
	// nothing to flush.
	Sync(ctx context.Context) error
	SyncAll(ctx context.Context) error
	SyncData(ctx context.Context) error
}

// SuperBlock holds the fixed filesystem-wide statistics a host reports
// for statfs(2). The values match Linux sysfs for compatibility with
// tools that key behavior off them.
type SuperBlock struct {
	Magic     uint32
	BlockSize uint32
	NameMax   int
}

// DefaultSuperBlock is the sysfs-compatible magic/block size/name-max
// triple every sysfs.FileSystem reports.
var DefaultSuperBlock = SuperBlock{
	Magic:     0x62656572,
	BlockSize: 1024,
	NameMax:   255,
}

// FileSystem is the whole-filesystem operation set a host drives.
type FileSystem interface {
	// Sync flushes the filesystem; always a no-op success here.
	Sync(ctx context.Context) error
	// RootInode returns the filesystem's root directory inode.
	RootInode(ctx context.Context) (Inode, error)
	// SuperBlock returns the filesystem's fixed statfs values.
	SuperBlock() SuperBlock
}
