package fusebridge

import (
	"context"

	"github.com/hanwen/go-fuse/v2/fs"
	"github.com/hanwen/go-fuse/v2/fuse"
	"github.com/sirupsen/logrus"

	"github.com/gokernel/sysfstree/vfs"
)

// Mount mounts fsys at mountpoint through go-fuse and returns the
// running server. Callers should arrange to call server.Unmount (or
// rely on the kernel tearing the mount down) and should call
// server.Wait to block until the mount ends, the way every go-fuse
// consumer drives the returned *fuse.Server.
func Mount(ctx context.Context, mountpoint string, fsys vfs.FileSystem, log logrus.FieldLogger) (*fuse.Server, error) {
	root, err := Root(ctx, fsys)
	if err != nil {
		return nil, err
	}

	opts := &fs.Options{
		MountOptions: fuse.MountOptions{
			FsName:     "sysfstree",
			Name:       "sysfstree",
			AllowOther: false,
		},
	}

	server, err := fs.Mount(mountpoint, root, opts)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.WithField("mountpoint", mountpoint).Info("fusebridge: mounted")
	}
	return server, nil
}
