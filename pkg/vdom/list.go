package vdom

import (
	"strings"

	"github.com/vango-dev/vlist/pkg/host"
)

// List is an ordered sequence of keyed nodes. Entry order is host-tree
// sibling order.
type List struct {
	entries []KeyedNode
	lifecycle
}

// NewList creates a list from the given entries.
func NewList(entries ...KeyedNode) *List {
	return &List{entries: entries}
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.entries)
}

// Entry returns the entry at index i.
func (l *List) Entry(i int) KeyedNode {
	return l.entries[i]
}

// RenderWalk implements Node. Entries render right to left; each entry is
// anchored on the host node of the entry to its right, the last one on next.
func (l *List) RenderWalk(parent, next *host.Node) error {
	if err := l.check(); err != nil {
		return err
	}
	anchor := next
	for i := len(l.entries) - 1; i >= 0; i-- {
		entry := l.entries[i]
		if err := entry.RenderWalk(parent, anchor); err != nil {
			return err
		}
		anchor = anchorOf(entry, anchor)
	}
	return nil
}

// Patch implements Node.
//
// Against an old List, new entry i is patched against old entry i (by
// position, keys are ignored) and old entries beyond the new length are
// removed afterwards. Against nil every entry renders fresh. Against any other
// kind the old node is removed first.
func (l *List) Patch(old Node, parent, next *host.Node) error {
	if err := l.check(); err != nil {
		return err
	}

	switch prev := resolve(old).(type) {
	case nil:
		return l.patchEntries(nil, parent, next)

	case *List:
		if prev == l {
			return ErrAliased
		}
		if err := prev.check(); err != nil {
			return err
		}
		stale := prev.entries
		prev.entries = nil
		prev.consume()

		if err := l.patchEntries(stale, parent, next); err != nil {
			return err
		}
		if len(stale) > len(l.entries) {
			for _, entry := range stale[len(l.entries):] {
				if err := entry.Remove(parent); err != nil {
					return err
				}
			}
		}
		return nil

	default:
		if err := prev.Remove(parent); err != nil {
			return err
		}
		return l.patchEntries(nil, parent, next)
	}
}

// patchEntries walks the entries right to left, pairing entry i with old[i]
// when it exists.
func (l *List) patchEntries(old []KeyedNode, parent, next *host.Node) error {
	anchor := next
	for i := len(l.entries) - 1; i >= 0; i-- {
		var paired Node
		if i < len(old) {
			paired = old[i]
		}
		entry := l.entries[i]
		if err := entry.Patch(paired, parent, anchor); err != nil {
			return err
		}
		anchor = anchorOf(entry, anchor)
	}
	return nil
}

// Remove implements Node. Every entry is removed, left to right.
func (l *List) Remove(parent *host.Node) error {
	if err := l.check(); err != nil {
		return err
	}
	l.consume()
	entries := l.entries
	l.entries = nil
	for _, entry := range entries {
		if err := entry.Remove(parent); err != nil {
			return err
		}
	}
	return nil
}

// HostNode implements Node. It returns the host node of the left-most entry
// that rendered one, so a list whose leading entries are empty still anchors
// its left sibling correctly.
func (l *List) HostNode() *host.Node {
	for _, entry := range l.entries {
		if h := entry.HostNode(); h != nil {
			return h
		}
	}
	return nil
}

// String implements Node.
func (l *List) String() string {
	var b strings.Builder
	for _, entry := range l.entries {
		b.WriteString(entry.String())
	}
	return b.String()
}
