package host

import (
	"errors"
	"testing"
)

func TestAppendChild(t *testing.T) {
	root := NewElement("div")
	a := NewText("a")
	b := NewElement("span")

	if err := root.AppendChild(a); err != nil {
		t.Fatalf("AppendChild(a) error = %v", err)
	}
	if err := root.AppendChild(b); err != nil {
		t.Fatalf("AppendChild(b) error = %v", err)
	}

	if root.FirstChild() != a || root.LastChild() != b {
		t.Errorf("first/last = %v/%v, want a/b", root.FirstChild(), root.LastChild())
	}
	if a.NextSibling() != b || b.PreviousSibling() != a {
		t.Error("sibling pointers not linked")
	}
	if a.Parent() != root || b.Parent() != root {
		t.Error("parent pointers not set")
	}
	if got := root.InnerHTML(); got != "a<span></span>" {
		t.Errorf("InnerHTML() = %q, want %q", got, "a<span></span>")
	}
}

func TestInsertBefore(t *testing.T) {
	tests := []struct {
		name string
		ref  func(a, b *Node) *Node
		want string
	}{
		{name: "before first", ref: func(a, b *Node) *Node { return a }, want: "xab"},
		{name: "before last", ref: func(a, b *Node) *Node { return b }, want: "axb"},
		{name: "nil ref appends", ref: func(a, b *Node) *Node { return nil }, want: "abx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewElement("div")
			a, b := NewText("a"), NewText("b")
			_ = root.AppendChild(a)
			_ = root.AppendChild(b)

			if err := root.InsertBefore(NewText("x"), tt.ref(a, b)); err != nil {
				t.Fatalf("InsertBefore() error = %v", err)
			}
			if got := root.InnerHTML(); got != tt.want {
				t.Errorf("InnerHTML() = %q, want %q", got, tt.want)
			}
			if got := len(root.ChildNodes()); got != 3 {
				t.Errorf("len(ChildNodes()) = %d, want 3", got)
			}
		})
	}
}

func TestInsertBeforeMovesAttachedNode(t *testing.T) {
	root := NewElement("div")
	a, b, c := NewText("a"), NewText("b"), NewText("c")
	for _, n := range []*Node{a, b, c} {
		_ = root.AppendChild(n)
	}

	if err := root.InsertBefore(c, a); err != nil {
		t.Fatalf("InsertBefore() error = %v", err)
	}
	if got := root.InnerHTML(); got != "cab" {
		t.Errorf("InnerHTML() = %q, want %q", got, "cab")
	}
	if root.LastChild() != b {
		t.Errorf("LastChild() = %v, want b", root.LastChild())
	}

	// Inserting a node before itself leaves it in place.
	if err := root.InsertBefore(a, a); err != nil {
		t.Fatalf("InsertBefore(self) error = %v", err)
	}
	if got := root.InnerHTML(); got != "cab" {
		t.Errorf("InnerHTML() after self insert = %q, want %q", got, "cab")
	}
}

func TestInsertBeforeErrors(t *testing.T) {
	root := NewElement("div")
	stranger := NewText("stranger")
	child := NewElement("p")
	_ = root.AppendChild(child)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{
			name: "reference not a child",
			call: func() error { return root.InsertBefore(NewText("x"), stranger) },
			want: ErrNotFound,
		},
		{
			name: "nil child",
			call: func() error { return root.InsertBefore(nil, nil) },
			want: ErrHierarchy,
		},
		{
			name: "text parent",
			call: func() error { return stranger.AppendChild(NewText("x")) },
			want: ErrHierarchy,
		},
		{
			name: "ancestor into descendant",
			call: func() error { return child.AppendChild(root) },
			want: ErrHierarchy,
		},
		{
			name: "remove non child",
			call: func() error { return root.RemoveChild(stranger) },
			want: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var hostErr *Error
			if !errors.As(err, &hostErr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if hostErr.Op == "" {
				t.Error("Op is empty")
			}
		})
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewElement("ul")
	a, b, c := NewElement("li"), NewElement("li"), NewElement("li")
	for _, n := range []*Node{a, b, c} {
		_ = root.AppendChild(n)
	}

	if err := root.RemoveChild(b); err != nil {
		t.Fatalf("RemoveChild() error = %v", err)
	}
	if a.NextSibling() != c || c.PreviousSibling() != a {
		t.Error("siblings not relinked after removal")
	}
	if b.Parent() != nil || b.NextSibling() != nil || b.PreviousSibling() != nil {
		t.Error("removed node still linked")
	}

	a.Remove()
	c.Remove()
	if root.HasChildNodes() {
		t.Errorf("HasChildNodes() = true, want false; html = %q", root.InnerHTML())
	}
	if root.FirstChild() != nil || root.LastChild() != nil {
		t.Error("first/last not cleared")
	}

	// Remove on a detached node is a no-op.
	b.Remove()
}

func TestAttributes(t *testing.T) {
	el := NewElement("input")
	el.SetAttribute("type", "text")
	el.SetAttribute("class", "a&b")

	if v, ok := el.Attr("type"); !ok || v != "text" {
		t.Errorf("Attr(type) = %q, %v", v, ok)
	}
	if got := el.OuterHTML(); got != `<input class="a&amp;b" type="text">` {
		t.Errorf("OuterHTML() = %q", got)
	}

	el.RemoveAttribute("class")
	if _, ok := el.Attr("class"); ok {
		t.Error("class still present after RemoveAttribute")
	}

	text := NewText("x")
	text.SetAttribute("id", "nope")
	if _, ok := text.Attr("id"); ok {
		t.Error("text node accepted an attribute")
	}
}

func TestObserver(t *testing.T) {
	root := NewElement("div")
	var got []MutationKind
	root.SetObserver(ObserverFunc(func(m Mutation) {
		got = append(got, m.Kind)
	}))

	child := NewElement("p")
	text := NewText("one")
	_ = root.AppendChild(child)
	_ = child.AppendChild(text)
	text.SetData("two")
	text.SetData("two") // unchanged, not recorded
	child.SetAttribute("id", "x")
	_ = root.RemoveChild(child)

	want := []MutationKind{MutationInsert, MutationInsert, MutationText, MutationAttr, MutationRemove}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mutation[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
