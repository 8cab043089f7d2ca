package host

import "strings"

// InnerHTML serializes the children of n.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	n.writeChildren(&b)
	return b.String()
}

// OuterHTML serializes n and its children.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	return n.OuterHTML()
}

func (n *Node) write(b *strings.Builder) {
	switch n.nodeType {
	case TextNode:
		if n.parent != nil && IsRawTextElement(n.parent.tag) {
			b.WriteString(n.data)
		} else {
			b.WriteString(EscapeText(n.data))
		}
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.tag)
		for _, name := range n.AttributeNames() {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteString(`="`)
			b.WriteString(EscapeAttr(n.attrs[name]))
			b.WriteByte('"')
		}
		b.WriteByte('>')
		if IsVoidElement(n.tag) {
			return
		}
		n.writeChildren(b)
		b.WriteString("</")
		b.WriteString(n.tag)
		b.WriteByte('>')
	}
}

func (n *Node) writeChildren(b *strings.Builder) {
	for c := n.firstChild; c != nil; c = c.next {
		c.write(b)
	}
}
