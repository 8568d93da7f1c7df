package sysfs

import (
	"context"

	"github.com/gokernel/sysfstree/systree"
	"github.com/gokernel/sysfstree/vfs"
)

// attrHolderOf returns the systree.Node and attribute set backing
// this inode's directory view, for branches and leaf-directories
// alike. Any other kind has no attributes to host.
func (n *Inode) attrHolderOf() (systree.Node, bool) {
	switch n.kind {
	case kindBranch:
		return n.node.(*systree.Branch), true
	case kindLeafDir:
		return n.node.(*systree.Leaf), true
	default:
		return nil, false
	}
}

// Lookup implements vfs.Inode, following the protocol in spec.md
// §4.5: "." and ".." first, then children (branches only), then
// attributes, in that order.
func (n *Inode) Lookup(ctx context.Context, name string) (vfs.Inode, error) {
	if n.kind != kindBranch && n.kind != kindLeafDir {
		return nil, vfs.ErrNotDir
	}

	if name == "." {
		return n, nil
	}
	if name == ".." {
		parent, ok := n.node.Parent()
		if !ok {
			return n, nil
		}
		return newBranchInode(n.fsys, parent), nil
	}

	if branch, ok := n.node.(*systree.Branch); ok {
		if child, ok := branch.Child(name); ok {
			return projectChild(n.fsys, child), nil
		}
	}

	holder, _ := n.attrHolderOf()
	if attr, ok := holder.Attrs().Get(name); ok {
		return newAttrInode(n.fsys, holder, n.ino(), attr), nil
	}

	return nil, systree.NewNotFoundError(name)
}

// projectChild builds the directory/symlink inode a child of the
// given kind projects as, per the projection rules in spec.md §4.5.
func projectChild(fsys *FileSystem, child systree.Object) vfs.Inode {
	switch c := child.(type) {
	case *systree.Branch:
		return newBranchInode(fsys, c)
	case *systree.Leaf:
		return newLeafDirInode(fsys, c)
	case *systree.Symlink:
		return newSymlinkInode(fsys, c)
	default:
		panic("sysfs: unknown systree.Object implementation")
	}
}

// ReaddirAt implements vfs.Inode's offset-as-minimum-inode enumeration
// protocol from spec.md §4.5: attributes in ascending attr id, then
// children in ascending node id (branches only), then "." and "..".
// Entries are gated on their ordering inode, not their reported one.
func (n *Inode) ReaddirAt(_ context.Context, minIno uint64, visitor vfs.DirentVisitor) (uint64, error) {
	if n.kind != kindBranch && n.kind != kindLeafDir {
		return 0, vfs.ErrNotDir
	}

	myIno := n.ino()
	holder, _ := n.attrHolderOf()

	first := true
	accept := func(d vfs.Dirent) (bool, error) {
		ok := visitor.Visit(d)
		if !ok {
			if first {
				return false, vfs.ErrInvalid
			}
			return false, nil
		}
		first = false
		return true, nil
	}

	for _, attr := range holder.Attrs().All() {
		orderingIno := InoOfAttr(myIno, attr.ID())
		if orderingIno < minIno {
			continue
		}
		cont, err := accept(vfs.Dirent{
			Name:   attr.Name(),
			Ino:    orderingIno,
			Type:   vfs.TypeFile,
			Cookie: orderingIno,
		})
		if err != nil {
			return 0, err
		}
		if !cont {
			return orderingIno - minIno, nil
		}
	}

	if branch, ok := n.node.(*systree.Branch); ok {
		var iterErr error
		var stoppedAt uint64
		stopped := false
		branch.VisitChildren(0, func(c systree.Object) bool {
			childIno := InoOfNode(c.ID())
			if childIno < minIno {
				return true
			}
			cont, err := accept(vfs.Dirent{
				Name:   c.Name(),
				Ino:    childIno,
				Type:   childVfsType(c),
				Cookie: childIno,
			})
			if err != nil {
				iterErr = err
				stopped = true
				stoppedAt = childIno
				return false
			}
			if !cont {
				stopped = true
				stoppedAt = childIno
				return false
			}
			return true
		})
		if iterErr != nil {
			return 0, iterErr
		}
		if stopped {
			return stoppedAt - minIno, nil
		}
	}

	if SelfOrderingIno >= minIno {
		cont, err := accept(vfs.Dirent{Name: ".", Ino: myIno, Type: vfs.TypeDir, Cookie: SelfOrderingIno})
		if err != nil {
			return 0, err
		}
		if !cont {
			return SelfOrderingIno - minIno, nil
		}
	}

	parentIno := myIno
	if parent, ok := n.node.Parent(); ok {
		parentIno = InoOfNode(parent.ID())
	}
	if ParentOrderingIno >= minIno {
		cont, err := accept(vfs.Dirent{Name: "..", Ino: parentIno, Type: vfs.TypeDir, Cookie: ParentOrderingIno})
		if err != nil {
			return 0, err
		}
		if !cont {
			return ParentOrderingIno - minIno, nil
		}
	}

	return (ParentOrderingIno + 1) - minIno, nil
}

func childVfsType(o systree.Object) vfs.InodeType {
	switch o.(type) {
	case *systree.Symlink:
		return vfs.TypeSymlink
	default:
		return vfs.TypeDir
	}
}
