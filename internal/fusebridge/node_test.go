package fusebridge

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/hanwen/go-fuse/v2/fuse"

	"github.com/gokernel/sysfstree/vfs"
)

// fakeInode is a minimal vfs.Inode double. Mounting through a real
// kernel FUSE connection is out of scope for this package's test
// suite (it needs privileged mount access the test environment
// doesn't grant); these tests instead pin the pure translation logic
// between vfs.Metadata/vfs.Dirent and go-fuse's wire structs, which is
// everything this package does beyond delegating to vfs.Inode.
type fakeInode struct {
	meta    vfs.Metadata
	statErr error
	readErr error
	written []byte
	target  string
	entries []vfs.Dirent
	setMode vfs.InodeMode
}

func (f *fakeInode) Stat(context.Context) (vfs.Metadata, error) { return f.meta, f.statErr }
func (f *fakeInode) SetMode(_ context.Context, m vfs.InodeMode) error {
	f.setMode = m
	return nil
}
func (f *fakeInode) SetOwner(context.Context, vfs.Owner) error { return vfs.ErrNotPermitted }
func (f *fakeInode) ReadAt(_ context.Context, p []byte, _ int64) (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return copy(p, []byte("value")), nil
}
func (f *fakeInode) WriteAt(_ context.Context, p []byte, _ int64) (int, error) {
	f.written = append([]byte(nil), p...)
	return len(p), nil
}
func (f *fakeInode) Lookup(context.Context, string) (vfs.Inode, error) { return nil, vfs.ErrNotDir }
func (f *fakeInode) ReaddirAt(_ context.Context, _ uint64, v vfs.DirentVisitor) (uint64, error) {
	for _, e := range f.entries {
		if !v.Visit(e) {
			break
		}
	}
	return 0, nil
}
func (f *fakeInode) ReadLink(context.Context) (string, error) { return f.target, nil }
func (f *fakeInode) Poll(_ context.Context, mask uint32) (uint32, error) { return mask, nil }
func (f *fakeInode) Resize(context.Context, uint64) error               { return vfs.ErrNotSupported }
func (f *fakeInode) Fallocate(context.Context, int64, int64) error      { return vfs.ErrNotSupported }
func (f *fakeInode) Sync(context.Context) error                         { return nil }
func (f *fakeInode) SyncAll(context.Context) error                      { return nil }
func (f *fakeInode) SyncData(context.Context) error                     { return nil }

func TestModeBitsPerType(t *testing.T) {
	cases := []struct {
		typ  vfs.InodeType
		mode vfs.InodeMode
		want uint32
	}{
		{vfs.TypeDir, vfs.ModeDir, syscall.S_IFDIR | uint32(vfs.ModeDir)},
		{vfs.TypeSymlink, vfs.ModeSymlink, syscall.S_IFLNK | uint32(vfs.ModeSymlink)},
		{vfs.TypeFile, 0o400, syscall.S_IFREG | 0o400},
	}
	for _, c := range cases {
		got := modeBits(vfs.Metadata{Type: c.typ, Mode: c.mode})
		if got != c.want {
			t.Errorf("modeBits(%v) = %#o, want %#o", c.typ, got, c.want)
		}
	}
}

func TestDirentModeBitsPerType(t *testing.T) {
	cases := []struct {
		typ  vfs.InodeType
		want uint32
	}{
		{vfs.TypeDir, syscall.S_IFDIR},
		{vfs.TypeSymlink, syscall.S_IFLNK},
		{vfs.TypeFile, syscall.S_IFREG},
	}
	for _, c := range cases {
		if got := direntModeBits(c.typ); got != c.want {
			t.Errorf("direntModeBits(%v) = %#o, want %#o", c.typ, got, c.want)
		}
	}
}

func TestFillAttrCopiesMetadata(t *testing.T) {
	now := time.Unix(1700000000, 0)
	meta := vfs.Metadata{
		Ino: 42, Type: vfs.TypeDir, Mode: vfs.ModeDir, Size: 0,
		Atime: now, Mtime: now, Ctime: now,
		Owner: vfs.Owner{UID: 1000, GID: 1000},
	}
	var a fuse.Attr
	fillAttr(&a, meta)
	if a.Ino != 42 {
		t.Errorf("Ino = %d, want 42", a.Ino)
	}
	if a.Mode != modeBits(meta) {
		t.Errorf("Mode = %#o, want %#o", a.Mode, modeBits(meta))
	}
	if a.Uid != 1000 || a.Gid != 1000 {
		t.Errorf("Uid/Gid = %d/%d, want 1000/1000", a.Uid, a.Gid)
	}
	if a.Mtime != uint64(now.Unix()) {
		t.Errorf("Mtime = %d, want %d", a.Mtime, now.Unix())
	}
}

func TestNodeGetattrDelegatesAndMapsError(t *testing.T) {
	node := wrap(&fakeInode{statErr: vfs.ErrInvalid})
	var out fuse.AttrOut
	errno := node.Getattr(context.Background(), nil, &out)
	if errno != vfs.ToErrno(vfs.ErrInvalid) {
		t.Errorf("Getattr errno = %v, want %v", errno, vfs.ToErrno(vfs.ErrInvalid))
	}
}

func TestNodeReadDelegatesToReadAt(t *testing.T) {
	node := wrap(&fakeInode{})
	buf := make([]byte, 16)
	res, errno := node.Read(context.Background(), nil, buf, 0)
	if errno != 0 {
		t.Fatalf("Read errno = %v, want 0", errno)
	}
	data, status := res.Bytes(buf)
	if status != fuse.OK {
		t.Fatalf("ReadResult.Bytes status = %v", status)
	}
	if string(data) != "value" {
		t.Errorf("Read data = %q, want %q", data, "value")
	}
}

func TestNodeWriteDelegatesToWriteAt(t *testing.T) {
	fake := &fakeInode{}
	node := wrap(fake)
	n, errno := node.Write(context.Background(), nil, []byte("hello"), 0)
	if errno != 0 {
		t.Fatalf("Write errno = %v, want 0", errno)
	}
	if n != 5 || string(fake.written) != "hello" {
		t.Errorf("Write wrote %q (n=%d), want %q (n=5)", fake.written, n, "hello")
	}
}

func TestNodeReadlinkDelegatesToReadLink(t *testing.T) {
	node := wrap(&fakeInode{target: "/eth0"})
	got, errno := node.Readlink(context.Background())
	if errno != 0 {
		t.Fatalf("Readlink errno = %v, want 0", errno)
	}
	if string(got) != "/eth0" {
		t.Errorf("Readlink = %q, want /eth0", got)
	}
}

func TestNodeReaddirDrainsAllEntries(t *testing.T) {
	fake := &fakeInode{entries: []vfs.Dirent{
		{Name: "a", Ino: 1, Type: vfs.TypeFile},
		{Name: "b", Ino: 2, Type: vfs.TypeDir},
	}}
	node := wrap(fake)
	stream, errno := node.Readdir(context.Background())
	if errno != 0 {
		t.Fatalf("Readdir errno = %v, want 0", errno)
	}
	var got []string
	for stream.HasNext() {
		e, errno := stream.Next()
		if errno != 0 {
			t.Fatalf("stream.Next errno = %v", errno)
		}
		got = append(got, e.Name)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("drained entries = %v, want [a b]", got)
	}
}

func TestNodeSetattrAppliesModeBits(t *testing.T) {
	fake := &fakeInode{}
	node := wrap(fake)
	var in fuse.SetAttrIn
	in.Valid = fuse.FATTR_MODE
	in.Mode = 0o644
	var out fuse.AttrOut
	errno := node.Setattr(context.Background(), nil, &in, &out)
	if errno != 0 {
		t.Fatalf("Setattr errno = %v, want 0", errno)
	}
	if fake.setMode != 0o644 {
		t.Errorf("setMode = %#o, want %#o", fake.setMode, 0o644)
	}
}

func TestNodeSetattrChownIsRejected(t *testing.T) {
	node := wrap(&fakeInode{})
	var in fuse.SetAttrIn
	in.Valid = fuse.FATTR_UID
	var out fuse.AttrOut
	errno := node.Setattr(context.Background(), nil, &in, &out)
	if errno != vfs.ToErrno(vfs.ErrNotPermitted) {
		t.Errorf("Setattr chown errno = %v, want %v", errno, vfs.ToErrno(vfs.ErrNotPermitted))
	}
}
