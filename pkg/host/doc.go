// Package host provides an in-memory host tree for the virtual DOM.
//
// The host tree plays the role a browser DOM plays for a client-side
// renderer: virtual nodes materialize themselves into host nodes with
// InsertBefore, AppendChild and RemoveChild, and the resulting tree can be
// serialized back to HTML.
//
// # Nodes
//
// A Node is either an element (tag plus attributes plus children) or a text
// node. Nodes keep parent and sibling pointers so that a caller holding a
// single handle can use it as an insertion anchor:
//
//	root := host.NewElement("div")
//	hello := host.NewText("Hello")
//	_ = root.AppendChild(hello)
//	_ = root.InsertBefore(host.NewElement("hr"), hello)
//	root.InnerHTML() // "<hr>Hello"
//
// # Errors
//
// Mutations that violate the tree structure return a *Error wrapping
// ErrNotFound or ErrHierarchy. Use errors.Is to test for them.
//
// # Observation
//
// SetObserver attaches an Observer that receives a Mutation record for every
// change made to the node or any of its descendants.
package host
