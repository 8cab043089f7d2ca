package vdom

import (
	"errors"
	"testing"
)

func TestElementString(t *testing.T) {
	tests := []struct {
		name string
		node *Element
		want string
	}{
		{name: "childless", node: Childless("div"), want: "<div></div>"},
		{name: "void", node: Input(Type("text")), want: `<input type="text">`},
		{name: "void ignores children", node: H("br", "x"), want: "<br>"},
		{name: "sorted attributes", node: Div(ID("main"), Class("a", "b")), want: `<div class="a b" id="main"></div>`},
		{name: "escaped text", node: P("1 < 2"), want: "<p>1 &lt; 2</p>"},
		{name: "escaped attribute", node: Div(Data("q", `"x"`)), want: `<div data-q="&quot;x&quot;"></div>`},
		{name: "nested", node: Ul(Li("one"), Li(Span("two"))), want: "<ul><li>one</li><li><span>two</span></li></ul>"},
		{name: "nil child skipped", node: Div(nil, "a", nil), want: "<div>a</div>"},
		{name: "empty attribute skipped", node: Div(Attr{}, "a"), want: "<div>a</div>"},
		{name: "script text raw", node: H("script", "a<b && c"), want: "<script>a<b && c</script>"},
		{name: "style text raw", node: H("style", "p > a { color: red }"), want: "<style>p > a { color: red }</style>"},
		{
			name: "raw text through list and component",
			node: H("script", Fragment(NewText("x<y"), Func(func() Node { return NewText("&z") }))),
			want: "<script>x<y&z</script>",
		},
		{name: "raw text ends at nested element", node: H("noembed", "<", Span("<")), want: "<noembed><<span>&lt;</span></noembed>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestElementDisplayMatchesHost(t *testing.T) {
	tests := []struct {
		name  string
		build func() *Element
	}{
		{"script", func() *Element { return H("script", "a<b") }},
		{"style", func() *Element { return H("style", "a > b { x: \"&\" }") }},
		{"script with fragment", func() *Element {
			return H("script", Fragment(NewText("if (a<b) "), NewText("{}")))
		}},
		{"div", func() *Element { return Div("a<b", H("script", "<&>")) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := tt.build()
			display := e.String()
			root := container()
			mustPatch(t, e, nil, root, nil)
			if got := root.InnerHTML(); got != display {
				t.Errorf("host HTML = %q, display = %q", got, display)
			}
			if got := e.String(); got != display {
				t.Errorf("display after render = %q, want %q", got, display)
			}
		})
	}
}

func TestElementRenderWalk(t *testing.T) {
	div := container()
	el := Ul(Class("list"), Li("a"), Li("b"))

	if err := el.RenderWalk(div, nil); err != nil {
		t.Fatalf("RenderWalk() error = %v", err)
	}
	if got := div.InnerHTML(); got != el.String() {
		t.Errorf("InnerHTML() = %q, want %q", got, el.String())
	}
	if el.HostNode() == nil || el.HostNode().Parent() != div {
		t.Error("host node not attached to parent")
	}
}

func TestElementPatchSameTag(t *testing.T) {
	div := container()
	old := Div(ID("x"), Class("a"), "one")
	mustPatch(t, old, nil, div, nil)
	node := old.HostNode()

	next := Div(Class("b"), Data("k", "v"), "two")
	mustPatch(t, next, old, div, nil)

	if next.HostNode() != node {
		t.Error("host element not reused")
	}
	if got := div.InnerHTML(); got != `<div class="b" data-k="v">two</div>` {
		t.Errorf("InnerHTML() = %q", got)
	}
	if _, ok := node.Attr("id"); ok {
		t.Error("stale id attribute kept")
	}
	if !old.Consumed() {
		t.Error("old element not consumed")
	}
}

func TestElementPatchDifferentTag(t *testing.T) {
	div := container()
	old := NewList(Unkeyed(Div("x")), Unkeyed(NewText("after")))
	mustPatch(t, old, nil, div, nil)
	oldNode := old.Entry(0).HostNode()

	next := NewList(Unkeyed(Span("x")), Unkeyed(NewText("after")))
	mustPatch(t, next, old, div, nil)

	if got := div.InnerHTML(); got != "<span>x</span>after" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if next.Entry(0).HostNode() == oldNode {
		t.Error("element with a different tag reused the old host node")
	}
	if oldNode.Parent() != nil {
		t.Error("old host node still attached")
	}
}

func TestElementPatchChildren(t *testing.T) {
	div := container()
	old := Ul(Li("1"))
	mustPatch(t, old, nil, div, nil)

	grown := Ul(Li("1"), Li("2"), Li("3"))
	mustPatch(t, grown, old, div, nil)
	if got := div.InnerHTML(); got != "<ul><li>1</li><li>2</li><li>3</li></ul>" {
		t.Errorf("InnerHTML() after growth = %q", got)
	}

	shrunk := Ul(Li("3"))
	mustPatch(t, shrunk, grown, div, nil)
	if got := div.InnerHTML(); got != "<ul><li>3</li></ul>" {
		t.Errorf("InnerHTML() after shrink = %q", got)
	}
}

func TestElementPatchReplacesText(t *testing.T) {
	div := container()
	old := NewText("plain")
	mustPatch(t, old, nil, div, nil)

	el := Childless("hr")
	mustPatch(t, el, old, div, nil)

	if got := div.InnerHTML(); got != "<hr>" {
		t.Errorf("InnerHTML() = %q, want %q", got, "<hr>")
	}
}

func TestElementRemove(t *testing.T) {
	div := container()
	el := Div(Span("a"))
	mustPatch(t, el, nil, div, nil)

	if err := el.Remove(div); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if div.HasChildNodes() {
		t.Errorf("InnerHTML() = %q, want empty", div.InnerHTML())
	}
	if !el.Children().Consumed() {
		t.Error("children not consumed with the element")
	}
	if err := el.Patch(nil, div, nil); !errors.Is(err, ErrConsumed) {
		t.Errorf("Patch() after Remove error = %v, want ErrConsumed", err)
	}
	if err := el.Remove(div); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Remove() error = %v, want ErrConsumed", err)
	}
}

func TestElementPatchAliased(t *testing.T) {
	div := container()
	el := Div()
	mustPatch(t, el, nil, div, nil)

	if err := el.Patch(el, div, nil); !errors.Is(err, ErrAliased) {
		t.Errorf("error = %v, want ErrAliased", err)
	}
}
