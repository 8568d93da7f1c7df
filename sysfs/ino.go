package sysfs

import (
	"math"

	"github.com/gokernel/sysfstree/systree"
)

// SelfOrderingIno and ParentOrderingIno are the synthetic ordering
// inodes used only during readdir offset arithmetic for "." and
// "..". Neither is ever reported as a persistent inode number.
const (
	SelfOrderingIno   uint64 = math.MaxUint64 - 2
	ParentOrderingIno uint64 = math.MaxUint64 - 1
)

// InoOfNode derives a directory or symlink inode number from a
// systree node id. The low 8 bits are always zero, leaving room for
// up to 256 attribute inode numbers per directory.
func InoOfNode(id systree.NodeID) uint64 {
	return id.AsUint64() << 8
}

// InoOfAttr derives an attribute's file inode number from its owning
// directory's inode number and the attribute's dense id.
func InoOfAttr(dirIno uint64, attrID uint8) uint64 {
	return dirIno + uint64(attrID)
}
