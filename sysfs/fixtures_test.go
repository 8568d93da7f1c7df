package sysfs

import (
	"testing"

	"github.com/gokernel/sysfstree/systree"
	"github.com/gokernel/sysfstree/systree/refnodes"
)

// newTestFileSystem builds a small tree that reuses names from
// cmd/sysfsmount's sample tree but lays them out flat under the root:
// a branch with two attributes, a leaf with one attribute, and a
// symlink, all three children of the root.
func newTestFileSystem(t *testing.T) *FileSystem {
	t.Helper()
	tree := systree.NewTree(nil)

	devAttrs := systree.NewAttrSetBuilder().
		Add("online", systree.CanRead|systree.CanWrite).
		Add("model", systree.CanRead).
		Build()
	devIO := refnodes.MultiAttrIO{
		"online": refnodes.NewKVAttr("1"),
		"model":  refnodes.NewStaticAttr([]byte("widget")),
	}
	cpu0, err := systree.NewBranch("cpu0", devAttrs, devIO)
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Root().AddChild(cpu0); err != nil {
		t.Fatal(err)
	}

	leafAttrs := systree.NewAttrSetBuilder().
		Add("rx_packets", systree.CanRead).
		Build()
	leaf, err := systree.NewLeaf("eth0", leafAttrs, refnodes.MultiAttrIO{
		"rx_packets": refnodes.NewCounterAttr(0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Root().AddChild(leaf); err != nil {
		t.Fatal(err)
	}

	link, err := systree.NewSymlink("primary_nic", "/eth0")
	if err != nil {
		t.Fatal(err)
	}
	if err := tree.Root().AddChild(link); err != nil {
		t.Fatal(err)
	}

	return NewFileSystem(tree)
}
