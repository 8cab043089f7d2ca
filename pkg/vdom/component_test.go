package vdom

import (
	"errors"
	"testing"
)

func TestComponentRender(t *testing.T) {
	label := "a"
	comp := Func(func() Node { return Span(label) })

	div := container()
	mustPatch(t, comp, nil, div, nil)

	if got := div.InnerHTML(); got != "<span>a</span>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if comp.HostNode() != div.FirstChild() {
		t.Error("HostNode() does not delegate to the rendered output")
	}
}

func TestComponentPatchReusesOutput(t *testing.T) {
	label := "a"
	render := func() Node { return Span(label) }

	div := container()
	old := Func(render)
	mustPatch(t, old, nil, div, nil)
	node := old.HostNode()

	label = "b"
	next := Func(render)
	mustPatch(t, next, old, div, nil)

	if got := div.InnerHTML(); got != "<span>b</span>" {
		t.Errorf("InnerHTML() = %q", got)
	}
	if next.HostNode() != node {
		t.Error("component output did not reuse the host node")
	}
	if !old.Consumed() {
		t.Error("old component not consumed")
	}
}

func TestComponentPatchAgainstPlainNode(t *testing.T) {
	div := container()
	old := NewText("x")
	mustPatch(t, old, nil, div, nil)
	node := old.HostNode()

	comp := Func(func() Node { return NewText("y") })
	mustPatch(t, comp, old, div, nil)

	if comp.HostNode() != node {
		t.Error("output was not patched against the previous node")
	}
	if got := div.InnerHTML(); got != "y" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestComponentRenderingNothing(t *testing.T) {
	show := true
	render := func() Node {
		if !show {
			return nil
		}
		return Div()
	}

	div := container()
	old := Func(render)
	mustPatch(t, old, nil, div, nil)

	show = false
	next := Func(render)
	mustPatch(t, next, old, div, nil)

	if div.HasChildNodes() {
		t.Errorf("InnerHTML() = %q, want empty", div.InnerHTML())
	}
	if next.HostNode() != nil {
		t.Error("HostNode() != nil for empty output")
	}
	if err := next.Remove(div); err != nil {
		t.Errorf("Remove() error = %v", err)
	}
}

func TestComponentStringDoesNotRender(t *testing.T) {
	calls := 0
	comp := Func(func() Node {
		calls++
		return P("x")
	})

	if got := comp.String(); got != "<p>x</p>" {
		t.Errorf("String() = %q", got)
	}
	if comp.HostNode() != nil {
		t.Error("String() rendered the component")
	}
	if calls != 1 {
		t.Errorf("render calls = %d, want 1", calls)
	}
}

func TestComponentRemove(t *testing.T) {
	div := container()
	comp := Func(func() Node { return texts("a", "b") })
	mustPatch(t, comp, nil, div, nil)

	if err := comp.Remove(div); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if div.HasChildNodes() {
		t.Errorf("InnerHTML() = %q, want empty", div.InnerHTML())
	}
	if err := comp.Remove(div); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Remove() error = %v, want ErrConsumed", err)
	}
}
