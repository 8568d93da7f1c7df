package systree

import "io"

// readAttr and writeAttr implement the shared attribute I/O contract
// from spec.md §4.1 for both Branch and Leaf: resolve the attribute,
// check its flags, then delegate to the node's AttrIO handler. An error
// from the handler comes back as an Invalid *Error whose Cause is the
// handler's error (reachable through errors.Is/errors.As); the
// handler's error itself is not returned as is.
func readAttr(self Object, attrs *AttrSet, handler AttrIO, name string, w io.Writer) (int, error) {
	path, _ := self.Path()
	attr, ok := attrs.Get(name)
	if !ok {
		return 0, newAttrError(NotFound, path, name)
	}
	if !attr.Flags().Has(CanRead) {
		return 0, newAttrError(NotPermitted, path, name)
	}
	n, err := handler.ReadAttr(name, w)
	if err != nil {
		return n, &Error{Kind: Invalid, Path: path, Attr: name, Cause: err}
	}
	return n, nil
}

func writeAttr(self Object, attrs *AttrSet, handler AttrIO, name string, r io.Reader) error {
	path, _ := self.Path()
	attr, ok := attrs.Get(name)
	if !ok {
		return newAttrError(NotFound, path, name)
	}
	if !attr.Flags().Has(CanWrite) {
		return newAttrError(NotPermitted, path, name)
	}
	if err := handler.WriteAttr(name, r); err != nil {
		return &Error{Kind: Invalid, Path: path, Attr: name, Cause: err}
	}
	return nil
}
