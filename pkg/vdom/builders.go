package vdom

import "strings"

// H creates an element with the given tag.
// Arguments can be: nil, Attr, []Attr, KeyedNode, []KeyedNode, Node, []Node, string.
// Strings become text children; nil arguments are skipped so conditional
// children can be passed inline.
func H(tag string, args ...any) *Element {
	var (
		attrs    []Attr
		children []KeyedNode
	)

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			attrs = append(attrs, v)
		case []Attr:
			attrs = append(attrs, v...)
		case KeyedNode:
			children = append(children, v)
		case []KeyedNode:
			children = append(children, v...)
		case string:
			children = append(children, Unkeyed(NewText(v)))
		case Node:
			if resolve(v) != nil {
				children = append(children, Unkeyed(v))
			}
		case []Node:
			for _, n := range v {
				if resolve(n) != nil {
					children = append(children, Unkeyed(n))
				}
			}
		}
	}

	return NewElement(tag, attrs, children...)
}

// Fragment groups nodes into an unkeyed list.
func Fragment(nodes ...Node) *List {
	entries := make([]KeyedNode, 0, len(nodes))
	for _, n := range nodes {
		entries = append(entries, Unkeyed(n))
	}
	return NewList(entries...)
}

// Element helpers

func Div(args ...any) *Element    { return H("div", args...) }
func Span(args ...any) *Element   { return H("span", args...) }
func P(args ...any) *Element      { return H("p", args...) }
func Ul(args ...any) *Element     { return H("ul", args...) }
func Li(args ...any) *Element     { return H("li", args...) }
func Button(args ...any) *Element { return H("button", args...) }
func Input(args ...any) *Element  { return H("input", args...) }

// Attribute helpers

// A creates an attribute.
func A(key, value string) Attr { return Attr{Key: key, Value: value} }

// ID sets the id attribute.
func ID(id string) Attr { return A("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return A("class", strings.Join(classes, " ")) }

// Type sets the type attribute.
func Type(t string) Attr { return A("type", t) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return A("data-"+key, value) }
