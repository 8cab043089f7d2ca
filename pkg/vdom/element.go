package vdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/vlist/pkg/host"
)

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value string
}

// IsEmpty returns true if this is an empty attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// Element is a virtual element node with attributes and an ordered list of
// children.
type Element struct {
	tag      string
	attrs    map[string]string
	children *List
	node     *host.Node
	lifecycle
}

// NewElement creates an element with the given attributes and children.
// Empty attributes are ignored; later attributes override earlier ones.
func NewElement(tag string, attrs []Attr, children ...KeyedNode) *Element {
	e := &Element{
		tag:      tag,
		attrs:    make(map[string]string, len(attrs)),
		children: NewList(children...),
	}
	for _, a := range attrs {
		if !a.IsEmpty() {
			e.attrs[a.Key] = a.Value
		}
	}
	return e
}

// Childless creates an element without children.
func Childless(tag string, attrs ...Attr) *Element {
	return NewElement(tag, attrs)
}

// Tag returns the element tag name.
func (e *Element) Tag() string {
	return e.tag
}

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Children returns the element's child list.
func (e *Element) Children() *List {
	return e.children
}

// RenderWalk implements Node. The host element is fully built, children
// included, before it is inserted into parent.
func (e *Element) RenderWalk(parent, next *host.Node) error {
	if err := e.check(); err != nil {
		return err
	}
	if e.node != nil {
		return ErrRendered
	}
	node := host.NewElement(e.tag)
	for _, name := range sortedKeys(e.attrs) {
		node.SetAttribute(name, e.attrs[name])
	}
	if err := e.children.RenderWalk(node, nil); err != nil {
		return err
	}
	if err := insert(parent, node, next); err != nil {
		return err
	}
	e.node = node
	return nil
}

// Patch implements Node. A previous element with the same tag keeps its host
// node: attributes are diffed and children patched inside it. Anything else
// is removed and replaced.
func (e *Element) Patch(old Node, parent, next *host.Node) error {
	if err := e.check(); err != nil {
		return err
	}

	prev := resolve(old)
	pe, ok := prev.(*Element)
	if ok && pe == e {
		return ErrAliased
	}
	if e.node != nil {
		return ErrRendered
	}
	if prev == nil {
		return e.RenderWalk(parent, next)
	}
	if !ok || pe.tag != e.tag || pe.node == nil {
		if err := prev.Remove(parent); err != nil {
			return err
		}
		return e.RenderWalk(parent, next)
	}
	if err := pe.check(); err != nil {
		return err
	}

	node := pe.node
	pe.node = nil
	pe.consume()
	e.node = node

	patchAttrs(node, pe.attrs, e.attrs)
	return e.children.Patch(pe.children, node, nil)
}

// patchAttrs removes attributes missing from next and sets new or changed ones.
func patchAttrs(node *host.Node, prev, next map[string]string) {
	for _, name := range sortedKeys(prev) {
		if _, ok := next[name]; !ok {
			node.RemoveAttribute(name)
		}
	}
	for _, name := range sortedKeys(next) {
		if v, ok := prev[name]; !ok || v != next[name] {
			node.SetAttribute(name, next[name])
		}
	}
}

// Remove implements Node. Children leave the host tree with the element.
func (e *Element) Remove(parent *host.Node) error {
	if err := e.check(); err != nil {
		return err
	}
	e.consume()
	e.children.consume()
	node := e.node
	e.node = nil
	if node == nil {
		return nil
	}
	return parent.RemoveChild(node)
}

// HostNode implements Node.
func (e *Element) HostNode() *host.Node {
	return e.node
}

// String implements Node.
func (e *Element) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.tag)
	for _, name := range sortedKeys(e.attrs) {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(host.EscapeAttr(e.attrs[name]))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	if host.IsVoidElement(e.tag) {
		return b.String()
	}
	if host.IsRawTextElement(e.tag) {
		b.WriteString(rawString(e.children))
	} else {
		b.WriteString(e.children.String())
	}
	b.WriteString("</")
	b.WriteString(e.tag)
	b.WriteByte('>')
	return b.String()
}

// rawString displays n as content of a raw-text element. Lists and components
// render into the element itself, so their text is written verbatim too;
// nested elements display normally.
func rawString(n Node) string {
	switch v := resolve(n).(type) {
	case nil:
		return ""
	case *Text:
		return v.content
	case *List:
		var b strings.Builder
		for _, entry := range v.entries {
			b.WriteString(rawString(entry))
		}
		return b.String()
	case *Component:
		if v.rendered != nil {
			return rawString(v.rendered)
		}
		return rawString(v.output())
	default:
		return v.String()
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
