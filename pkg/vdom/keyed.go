package vdom

import "github.com/vango-dev/vlist/pkg/host"

// KeyedNode pairs a node with an optional identity key.
//
// The key is carried for a keyed-diff algorithm; List pairs entries by
// position and never consults it.
type KeyedNode struct {
	Key  string
	Node Node
}

// Keyed pairs n with key. A nil n is replaced by an empty list.
func Keyed(key string, n Node) KeyedNode {
	if resolve(n) == nil {
		n = NewList()
	}
	return KeyedNode{Key: key, Node: n}
}

// Unkeyed wraps n without a key.
func Unkeyed(n Node) KeyedNode {
	return Keyed("", n)
}

// HasKey reports whether the entry carries a key.
func (k KeyedNode) HasKey() bool {
	return k.Key != ""
}

// RenderWalk implements Node.
func (k KeyedNode) RenderWalk(parent, next *host.Node) error {
	return k.Node.RenderWalk(parent, next)
}

// Patch implements Node.
func (k KeyedNode) Patch(old Node, parent, next *host.Node) error {
	return k.Node.Patch(old, parent, next)
}

// Remove implements Node.
func (k KeyedNode) Remove(parent *host.Node) error {
	return k.Node.Remove(parent)
}

// HostNode implements Node.
func (k KeyedNode) HostNode() *host.Node {
	return k.Node.HostNode()
}

// String implements Node.
func (k KeyedNode) String() string {
	return k.Node.String()
}
