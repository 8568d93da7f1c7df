package sysfs

import (
	"context"
	"strings"

	"github.com/gokernel/sysfstree/vfs"
)

// Walk resolves a slash-separated path from fsys's root, one
// component at a time through Lookup, the way a real VFS host resolves
// each path component via repeated lookup(2) calls during path
// walking. It's a convenience for controllers and tests that want to
// address a node by path without driving a mount.
func Walk(ctx context.Context, fsys *FileSystem, path string) (vfs.Inode, error) {
	cur, err := fsys.RootInode(ctx)
	if err != nil {
		return nil, err
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return cur, nil
	}
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next, err := cur.Lookup(ctx, part)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
