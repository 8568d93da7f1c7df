package systree

import "strings"

// computePath implements the path() contract from spec.md §3/§4.1: walk
// upward via Parent() until reaching a node with no parent. If that
// node has the empty name, it is the tree root and self is attached;
// the path is the '/'-joined chain of names, always beginning with
// '/'. If it has a non-empty name, self is not attached to any tree.
func computePath(self Object) (string, bool) {
	var parts []string
	cur := self
	for {
		name := cur.Name()
		parent, ok := cur.Parent()
		if !ok {
			if name == "" {
				break
			}
			return "", false
		}
		parts = append(parts, name)
		cur = parent
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/"), true
}
