package vdom

import "github.com/vango-dev/vlist/pkg/host"

// Component is a node whose content is produced by a render function.
// The node contract is delegated to the rendered output.
type Component struct {
	render   func() Node
	rendered Node
	lifecycle
}

// Func creates a component from a render function. The function must return
// a fresh node on every call, or nil to render nothing.
func Func(render func() Node) *Component {
	return &Component{render: render}
}

func (c *Component) output() Node {
	if c.render == nil {
		return nil
	}
	return resolve(c.render())
}

// RenderWalk implements Node.
func (c *Component) RenderWalk(parent, next *host.Node) error {
	if err := c.check(); err != nil {
		return err
	}
	if c.rendered != nil {
		return ErrRendered
	}
	c.rendered = c.output()
	if c.rendered == nil {
		return nil
	}
	return c.rendered.RenderWalk(parent, next)
}

// Patch implements Node. Against an old component, the new output is patched
// against the old output; against any other node, the output is patched
// against that node directly.
func (c *Component) Patch(old Node, parent, next *host.Node) error {
	if err := c.check(); err != nil {
		return err
	}

	prev := resolve(old)
	if pc, ok := prev.(*Component); ok && pc == c {
		return ErrAliased
	}
	if c.rendered != nil {
		return ErrRendered
	}
	if pc, ok := prev.(*Component); ok {
		if err := pc.check(); err != nil {
			return err
		}
		prev = pc.rendered
		pc.rendered = nil
		pc.consume()
	}

	c.rendered = c.output()
	if c.rendered == nil {
		if prev != nil {
			return prev.Remove(parent)
		}
		return nil
	}
	return c.rendered.Patch(prev, parent, next)
}

// Remove implements Node.
func (c *Component) Remove(parent *host.Node) error {
	if err := c.check(); err != nil {
		return err
	}
	c.consume()
	rendered := c.rendered
	c.rendered = nil
	if rendered == nil {
		return nil
	}
	return rendered.Remove(parent)
}

// HostNode implements Node.
func (c *Component) HostNode() *host.Node {
	if c.rendered == nil {
		return nil
	}
	return c.rendered.HostNode()
}

// String implements Node. An unrendered component renders its output for
// display without keeping it.
func (c *Component) String() string {
	if c.rendered != nil {
		return c.rendered.String()
	}
	if out := c.output(); out != nil {
		return out.String()
	}
	return ""
}
