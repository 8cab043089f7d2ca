// Package vdom provides the virtual DOM node variants and the ordered-list
// reconciler for vlist.
//
// Every virtual node implements the Node contract: it can render itself into
// a host tree (RenderWalk), reconcile itself against the node previously
// rendered in its slot (Patch), release its host nodes (Remove) and report
// the host node it currently owns (HostNode).
//
// # Core Types
//
// Text, Element, Component and List are the node variants. KeyedNode pairs a
// node with an optional identity key; List holds an ordered sequence of
// KeyedNode entries.
//
// # Anchors
//
// Host nodes are placed with insert-before semantics. Each operation receives
// the host node that must stay immediately after whatever it inserts (the
// "next" anchor), or nil to append at the end of the parent. A List walks its
// entries right to left so every entry learns its right sibling's host node
// before inserting itself.
//
// # Reconciliation
//
// List.Patch pairs new and old entries by position, not by key: entry i of
// the new list is patched against entry i of the old list. Surplus old entries
// are removed; surplus new entries render fresh. Reordered lists produce the
// correct host content but not a minimal set of mutations.
//
// # Ownership
//
// Patch consumes the old node and Remove consumes the receiver. A consumed
// node reports ErrConsumed from every subsequent operation. A node owns its
// host nodes exclusively: rendering a node that is already rendered, such as
// one value placed twice in a list, reports ErrRendered.
//
//	list := vdom.NewList(
//	    vdom.Unkeyed(vdom.NewText("Hello World!")),
//	    vdom.Unkeyed(vdom.Childless("div")),
//	)
//	_ = list.Patch(nil, container, nil)
//	container.InnerHTML() // "Hello World!<div></div>"
package vdom
