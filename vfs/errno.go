package vfs

import (
	"errors"
	"syscall"

	"github.com/gokernel/sysfstree/systree"
)

// Sentinel errors for the vfs-layer failure modes that don't
// originate from a systree.Error: operations sysfs inodes never
// support, and directory/non-directory mismatches detected while
// walking the projection rather than inside a node.
var (
	ErrNotDir       = errors.New("vfs: not a directory")
	ErrNotSupported = errors.New("vfs: operation not supported")
	ErrInvalid      = errors.New("vfs: invalid argument")
	ErrNotPermitted = errors.New("vfs: operation not permitted")
)

// ToErrno maps an error returned from an Inode or FileSystem method
// to the syscall.Errno a host reports to the kernel, following the
// same "every operation boundary returns syscall.Errno" convention
// go-fuse's fs package uses throughout fs/api.go.
func ToErrno(err error) syscall.Errno {
	if err == nil {
		return 0
	}

	var sysErr *systree.Error
	if errors.As(err, &sysErr) {
		switch sysErr.Kind {
		case systree.NotFound:
			return syscall.ENOENT
		case systree.NotPermitted:
			return syscall.EPERM
		case systree.AlreadyExists:
			return syscall.EEXIST
		case systree.Invalid:
			return syscall.EINVAL
		}
	}

	switch {
	case errors.Is(err, ErrNotDir):
		return syscall.ENOTDIR
	case errors.Is(err, ErrNotSupported):
		return syscall.ENOSYS
	case errors.Is(err, ErrInvalid):
		return syscall.EINVAL
	case errors.Is(err, ErrNotPermitted):
		return syscall.EPERM
	default:
		return syscall.EIO
	}
}
