// Package sysfstree models an in-process, kernel-style information
// tree (systree) and projects it as a read-only virtual filesystem
// (sysfs) over the small boundary contract defined in package vfs.
//
// See the systree, sysfs, and vfs packages for the actual API; this
// top-level package exists only to give the module a doc comment and
// a place for cmd/sysfsmount, which wires everything together into a
// real, mountable filesystem via internal/fusebridge.
package sysfstree
