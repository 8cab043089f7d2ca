package host

import (
	"sort"
	"strconv"
)

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = 1 // <div>, <input>, etc.
	TextNode    NodeType = 3 // Character data
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a live node in the host tree.
//
// The zero value is not usable; create nodes with NewElement or NewText.
// A Node is not safe for concurrent use.
type Node struct {
	nodeType NodeType
	tag      string
	data     string
	attrs    map[string]string

	parent     *Node
	firstChild *Node
	lastChild  *Node
	prev       *Node
	next       *Node

	observer Observer
}

// NewElement creates a detached element node.
func NewElement(tag string) *Node {
	return &Node{
		nodeType: ElementNode,
		tag:      tag,
		attrs:    make(map[string]string),
	}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{
		nodeType: TextNode,
		data:     data,
	}
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.nodeType }

// Tag returns the element tag name, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Data returns the character data of a text node.
func (n *Node) Data() string { return n.data }

// Parent returns the parent node, or nil if the node is detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child, or nil.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child, or nil.
func (n *Node) LastChild() *Node { return n.lastChild }

// PreviousSibling returns the previous sibling, or nil.
func (n *Node) PreviousSibling() *Node { return n.prev }

// NextSibling returns the next sibling, or nil.
func (n *Node) NextSibling() *Node { return n.next }

// HasChildNodes reports whether the node has any children.
func (n *Node) HasChildNodes() bool { return n.firstChild != nil }

// ChildNodes returns a snapshot of the node's children in order.
func (n *Node) ChildNodes() []*Node {
	var children []*Node
	for c := n.firstChild; c != nil; c = c.next {
		children = append(children, c)
	}
	return children
}

// Contains reports whether other is n or one of its descendants.
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// AttributeNames returns the element's attribute names in sorted order.
func (n *Node) AttributeNames() []string {
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetAttribute sets an attribute on an element node. It is a no-op on text nodes
// and when the value is unchanged.
func (n *Node) SetAttribute(name, value string) {
	if n.nodeType != ElementNode {
		return
	}
	if old, ok := n.attrs[name]; ok && old == value {
		return
	}
	n.attrs[name] = value
	n.notify(Mutation{Kind: MutationAttr, Target: n, Name: name})
}

// RemoveAttribute removes an attribute from an element node.
func (n *Node) RemoveAttribute(name string) {
	if _, ok := n.attrs[name]; !ok {
		return
	}
	delete(n.attrs, name)
	n.notify(Mutation{Kind: MutationAttr, Target: n, Name: name})
}

// SetData replaces the character data of a text node.
func (n *Node) SetData(data string) {
	if n.nodeType != TextNode || n.data == data {
		return
	}
	n.data = data
	n.notify(Mutation{Kind: MutationText, Target: n})
}

// AppendChild appends child as the last child of n.
// If child already has a parent it is moved.
func (n *Node) AppendChild(child *Node) error {
	return n.insert("AppendChild", child, nil)
}

// InsertBefore inserts child immediately before ref, which must be a child of n.
// A nil ref appends. If child already has a parent it is moved.
func (n *Node) InsertBefore(child, ref *Node) error {
	return n.insert("InsertBefore", child, ref)
}

func (n *Node) insert(op string, child, ref *Node) error {
	if child == nil || n.nodeType != ElementNode {
		return newError(op, n, child, ErrHierarchy)
	}
	if child.Contains(n) {
		return newError(op, n, child, ErrHierarchy)
	}
	if ref != nil && ref.parent != n {
		return newError(op, n, child, ErrNotFound)
	}
	if ref == child {
		ref = child.next
	}

	if child.parent != nil {
		child.parent.unlink(child)
	}

	child.parent = n
	child.next = ref
	if ref == nil {
		child.prev = n.lastChild
		if n.lastChild != nil {
			n.lastChild.next = child
		} else {
			n.firstChild = child
		}
		n.lastChild = child
	} else {
		child.prev = ref.prev
		if ref.prev != nil {
			ref.prev.next = child
		} else {
			n.firstChild = child
		}
		ref.prev = child
	}

	n.notify(Mutation{Kind: MutationInsert, Target: n, Node: child})
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return newError("RemoveChild", n, child, ErrNotFound)
	}
	n.unlink(child)
	n.notify(Mutation{Kind: MutationRemove, Target: n, Node: child})
	return nil
}

// Remove detaches n from its parent, if any.
func (n *Node) Remove() {
	if n.parent == nil {
		return
	}
	_ = n.parent.RemoveChild(n)
}

// unlink splices child out of n's child chain without notifying.
func (n *Node) unlink(child *Node) {
	if child.prev != nil {
		child.prev.next = child.next
	} else {
		n.firstChild = child.next
	}
	if child.next != nil {
		child.next.prev = child.prev
	} else {
		n.lastChild = child.prev
	}
	child.parent = nil
	child.prev = nil
	child.next = nil
}

// describe returns a short label for error messages.
func (n *Node) describe() string {
	switch n.nodeType {
	case ElementNode:
		return "<" + n.tag + ">"
	case TextNode:
		return "#text " + strconv.Quote(n.data)
	default:
		return "#node"
	}
}
