package vdom

import (
	"fmt"

	"github.com/vango-dev/vlist/pkg/host"
)

// Text is a virtual text node.
type Text struct {
	content string
	node    *host.Node
	lifecycle
}

// NewText creates a text node.
func NewText(content string) *Text {
	return &Text{content: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Text {
	return NewText(fmt.Sprintf(format, args...))
}

// Content returns the text content.
func (t *Text) Content() string {
	return t.content
}

// RenderWalk implements Node.
func (t *Text) RenderWalk(parent, next *host.Node) error {
	if err := t.check(); err != nil {
		return err
	}
	if t.node != nil {
		return ErrRendered
	}
	node := host.NewText(t.content)
	if err := insert(parent, node, next); err != nil {
		return err
	}
	t.node = node
	return nil
}

// Patch implements Node. A previous text node is updated in place; any other
// kind is removed and replaced.
func (t *Text) Patch(old Node, parent, next *host.Node) error {
	if err := t.check(); err != nil {
		return err
	}

	prev := resolve(old)
	if pt, ok := prev.(*Text); ok && pt == t {
		return ErrAliased
	}
	if t.node != nil {
		return ErrRendered
	}

	switch prev := prev.(type) {
	case nil:
		return t.RenderWalk(parent, next)

	case *Text:
		if err := prev.check(); err != nil {
			return err
		}
		node := prev.node
		prev.node = nil
		prev.consume()
		if node == nil {
			return t.RenderWalk(parent, next)
		}
		node.SetData(t.content)
		t.node = node
		return nil

	default:
		if err := prev.Remove(parent); err != nil {
			return err
		}
		return t.RenderWalk(parent, next)
	}
}

// Remove implements Node.
func (t *Text) Remove(parent *host.Node) error {
	if err := t.check(); err != nil {
		return err
	}
	t.consume()
	node := t.node
	t.node = nil
	if node == nil {
		return nil
	}
	return parent.RemoveChild(node)
}

// HostNode implements Node.
func (t *Text) HostNode() *host.Node {
	return t.node
}

// String implements Node.
func (t *Text) String() string {
	return host.EscapeText(t.content)
}
