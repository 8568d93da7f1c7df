package sysfs

import (
	"context"
	"testing"

	"github.com/gokernel/sysfstree/vfs"
)

type collectingVisitor struct {
	limit   int
	entries []vfs.Dirent
}

func (c *collectingVisitor) Visit(d vfs.Dirent) bool {
	if c.limit >= 0 && len(c.entries) >= c.limit {
		return false
	}
	c.entries = append(c.entries, d)
	return true
}

func TestReaddirRootOrderingAttrsThenChildrenThenDotDotDot(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)

	v := &collectingVisitor{limit: -1}
	next, err := root.ReaddirAt(ctx, 0, v)
	if err != nil {
		t.Fatalf("ReaddirAt: %v", err)
	}

	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	// root has no attrs of its own, so the order is: children in
	// ascending id (cpu0, eth0, primary_nic), then ".", then "..".
	want := []string{"cpu0", "eth0", "primary_nic", ".", ".."}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q (full: %v)", i, names[i], want[i], names)
		}
	}

	if next != (ParentOrderingIno+1)-0 {
		t.Errorf("next = %d, want %d", next, (ParentOrderingIno + 1))
	}
}

func TestReaddirRejectingFirstEntryIsInvalid(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)

	v := &collectingVisitor{limit: 0}
	_, err := root.ReaddirAt(ctx, 0, v)
	if err != vfs.ErrInvalid {
		t.Errorf("ReaddirAt with first entry rejected = %v, want ErrInvalid", err)
	}
}

func TestReaddirResumesAtRejectedEntryNotPastIt(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)

	// First call: accept only the first entry (cpu0), reject the
	// second (eth0). The returned offset must land the next call
	// exactly on eth0 again, never skipping it.
	first := &collectingVisitor{limit: 1}
	next1, err := root.ReaddirAt(ctx, 0, first)
	if err != nil {
		t.Fatalf("first ReaddirAt: %v", err)
	}
	if len(first.entries) != 1 || first.entries[0].Name != "cpu0" {
		t.Fatalf("first call entries = %v, want [cpu0]", first.entries)
	}

	second := &collectingVisitor{limit: -1}
	_, err = root.ReaddirAt(ctx, next1, second)
	if err != nil {
		t.Fatalf("second ReaddirAt: %v", err)
	}
	if len(second.entries) == 0 || second.entries[0].Name != "eth0" {
		t.Fatalf("second call first entry = %v, want eth0 (resumed at rejected entry, not past it)", second.entries)
	}
}

func TestReaddirNoDuplicatesAcrossPagedCalls(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)

	var all []string
	minIno := uint64(0)
	for {
		v := &collectingVisitor{limit: 1}
		next, err := root.ReaddirAt(ctx, minIno, v)
		if err != nil {
			t.Fatalf("ReaddirAt(%d): %v", minIno, err)
		}
		if len(v.entries) == 0 {
			break
		}
		all = append(all, v.entries[0].Name)
		minIno += next
		if len(all) > 20 {
			t.Fatal("readdir did not converge, possible infinite loop")
		}
	}

	want := []string{"cpu0", "eth0", "primary_nic", ".", ".."}
	if len(all) != len(want) {
		t.Fatalf("paged entries = %v, want %v", all, want)
	}
	seen := map[string]bool{}
	for _, n := range all {
		if seen[n] {
			t.Errorf("duplicate entry %q across paged calls: %v", n, all)
		}
		seen[n] = true
	}
}

func TestReaddirBranchAttrsComeBeforeDotEntries(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)
	cpu0, err := root.Lookup(ctx, "cpu0")
	if err != nil {
		t.Fatal(err)
	}

	v := &collectingVisitor{limit: -1}
	if _, err := cpu0.ReaddirAt(ctx, 0, v); err != nil {
		t.Fatal(err)
	}
	names := make([]string, len(v.entries))
	for i, e := range v.entries {
		names[i] = e.Name
	}
	// cpu0 has two attrs and no children: online, model, ".", "..".
	want := []string{"online", "model", ".", ".."}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entries[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestLeafDirectoryFirstAttrInoAliasesDirIno(t *testing.T) {
	// A leaf's directory-projection ino and its own first attribute's
	// file ino are numerically identical (InoOfAttr(dirIno, 0) ==
	// dirIno); they're distinguished by type and path, not by number.
	// This is accepted, not special-cased, by the projection.
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)
	eth0, err := root.Lookup(ctx, "eth0")
	if err != nil {
		t.Fatal(err)
	}
	dirMeta, err := eth0.Stat(ctx)
	if err != nil {
		t.Fatal(err)
	}
	attrNode, err := eth0.Lookup(ctx, "rx_packets")
	if err != nil {
		t.Fatal(err)
	}
	attrMeta, err := attrNode.Stat(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if dirMeta.Ino != attrMeta.Ino {
		t.Errorf("dir ino %d != first attr ino %d, want aliasing", dirMeta.Ino, attrMeta.Ino)
	}
	if dirMeta.Type == attrMeta.Type {
		t.Errorf("dir and attr report the same type %v, want distinct types despite aliasing ino", dirMeta.Type)
	}
}

func TestReaddirOnNonDirectoryIsNotDir(t *testing.T) {
	ctx := context.Background()
	fsys := newTestFileSystem(t)
	root, _ := fsys.RootInode(ctx)
	cpu0, _ := root.Lookup(ctx, "cpu0")
	model, _ := cpu0.Lookup(ctx, "model")

	v := &collectingVisitor{limit: -1}
	if _, err := model.ReaddirAt(ctx, 0, v); err != vfs.ErrNotDir {
		t.Errorf("ReaddirAt on a file = %v, want ErrNotDir", err)
	}
}
