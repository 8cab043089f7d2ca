package vdom

import (
	"errors"

	"github.com/vango-dev/vlist/pkg/host"
)

var (
	// ErrConsumed is returned by any operation on a node that has already
	// been passed to Patch as the old node, or removed.
	ErrConsumed = errors.New("vdom: node used after it was consumed")

	// ErrAliased is returned when a node is patched against itself.
	ErrAliased = errors.New("vdom: node patched against itself")

	// ErrRendered is returned when a node that already owns host nodes is
	// rendered again, for example when one value appears twice in a tree.
	ErrRendered = errors.New("vdom: node is already rendered")
)

// Node is the contract every virtual node variant implements.
type Node interface {
	// RenderWalk renders the node for the first time, inserting its host
	// nodes into parent immediately before next (or at the end if next is nil).
	RenderWalk(parent, next *host.Node) error

	// Patch reconciles the node against old, the node previously rendered in
	// the same slot, and consumes old. A nil old renders fresh.
	Patch(old Node, parent, next *host.Node) error

	// Remove releases the node's host nodes from parent and consumes the node.
	Remove(parent *host.Node) error

	// HostNode returns the host node the node currently owns, or nil.
	HostNode() *host.Node

	// String returns the HTML representation of the node.
	String() string
}

// lifecycle is the moved-from marker shared by every variant.
type lifecycle struct {
	consumed bool
}

func (l *lifecycle) check() error {
	if l.consumed {
		return ErrConsumed
	}
	return nil
}

func (l *lifecycle) consume() {
	l.consumed = true
}

// Consumed reports whether the node has been consumed by Patch or Remove.
func (l *lifecycle) Consumed() bool {
	return l.consumed
}

// insert places child into parent immediately before next.
func insert(parent, child, next *host.Node) error {
	if next != nil {
		return parent.InsertBefore(child, next)
	}
	return parent.AppendChild(child)
}

// resolve strips KeyedNode wrappers and typed nil pointers so that a variant
// can switch on the kind of the node previously rendered in its slot.
func resolve(n Node) Node {
	for {
		switch v := n.(type) {
		case nil:
			return nil
		case KeyedNode:
			n = v.Node
		case *KeyedNode:
			if v == nil {
				return nil
			}
			n = v.Node
		case *List:
			if v == nil {
				return nil
			}
			return v
		case *Element:
			if v == nil {
				return nil
			}
			return v
		case *Text:
			if v == nil {
				return nil
			}
			return v
		case *Component:
			if v == nil {
				return nil
			}
			return v
		default:
			return n
		}
	}
}

// anchorOf returns the host node of n, or fallback when n rendered nothing.
func anchorOf(n Node, fallback *host.Node) *host.Node {
	if h := n.HostNode(); h != nil {
		return h
	}
	return fallback
}
