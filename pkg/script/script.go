package script

import (
	"bytes"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/vdom"
)

// Script is a named sequence of list states.
type Script struct {
	Name  string `yaml:"name" json:"name"`
	Steps []Step `yaml:"steps" json:"steps"`
}

// Step is one list state. Rendering a step patches it against the previous
// step's list.
type Step struct {
	Name  string     `yaml:"name,omitempty" json:"name,omitempty"`
	Nodes []NodeSpec `yaml:"nodes" json:"nodes"`
}

// NodeSpec describes a single node. Exactly one of Text, Element or List is
// set; Attrs and Children only apply to elements. A bare string in a node
// sequence is shorthand for a text node.
type NodeSpec struct {
	Key      string            `yaml:"key,omitempty" json:"key,omitempty"`
	Text     string            `yaml:"text,omitempty" json:"text,omitempty"`
	Element  string            `yaml:"element,omitempty" json:"element,omitempty"`
	List     []NodeSpec        `yaml:"list,omitempty" json:"list,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Children []NodeSpec        `yaml:"children,omitempty" json:"children,omitempty"`

	// Line and Column locate the node in its source document.
	Line   int `yaml:"-" json:"-"`
	Column int `yaml:"-" json:"-"`

	kinds    []string
	hasAttrs bool
}

// UnmarshalYAML records which fields were present and where the node starts.
func (n *NodeSpec) UnmarshalYAML(value *yaml.Node) error {
	n.Line, n.Column = value.Line, value.Column

	if value.Kind == yaml.ScalarNode {
		n.kinds = []string{"text"}
		return value.Decode(&n.Text)
	}

	type plain NodeSpec
	p := (*plain)(n)
	if err := value.Decode(p); err != nil {
		return err
	}
	n.Line, n.Column = value.Line, value.Column
	n.kinds = nil
	n.hasAttrs = false
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch key := value.Content[i].Value; key {
		case "text", "element", "list":
			n.kinds = append(n.kinds, key)
		case "attrs", "children":
			n.hasAttrs = true
		}
	}
	return nil
}

// Kind returns "text", "element" or "list", or "" for an invalid node.
func (n *NodeSpec) Kind() string {
	if len(n.kinds) != 1 {
		return ""
	}
	return n.kinds[0]
}

// Build converts the node description into a fresh vdom node.
func (n *NodeSpec) Build() vdom.Node {
	switch n.Kind() {
	case "text":
		return vdom.NewText(n.Text)
	case "element":
		names := make([]string, 0, len(n.Attrs))
		for name := range n.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		attrs := make([]vdom.Attr, 0, len(names))
		for _, name := range names {
			attrs = append(attrs, vdom.A(name, n.Attrs[name]))
		}
		return vdom.NewElement(n.Element, attrs, buildEntries(n.Children)...)
	case "list":
		return vdom.NewList(buildEntries(n.List)...)
	default:
		return vdom.NewList()
	}
}

// Build converts the step into a fresh list. Every call returns new nodes.
func (s *Step) Build() *vdom.List {
	return vdom.NewList(buildEntries(s.Nodes)...)
}

func buildEntries(specs []NodeSpec) []vdom.KeyedNode {
	entries := make([]vdom.KeyedNode, 0, len(specs))
	for i := range specs {
		entries = append(entries, vdom.Keyed(specs[i].Key, specs[i].Build()))
	}
	return entries
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E150").Wrap(err)
	}
	return parse(path, data)
}

// Parse decodes and validates a YAML or JSON script.
func Parse(data []byte) (*Script, error) {
	return parse("", data)
}

func parse(name string, data []byte) (*Script, error) {
	var s Script
	if err := decode(data, &s); err != nil && err != io.EOF {
		return nil, syntaxError(name, data, err)
	}
	if len(s.Steps) == 0 {
		return nil, errors.New("E153").
			WithSource(name, data, 1, 0).
			WithExample("steps:\n  - nodes:\n      - text: Hello")
	}
	for i := range s.Steps {
		if err := validate(name, data, s.Steps[i].Nodes); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

// ParseStep decodes and validates a single step, as sent over a live
// connection.
func ParseStep(data []byte) (*Step, error) {
	var st Step
	if err := decode(data, &st); err != nil {
		return nil, syntaxError("", data, err)
	}
	if err := validate("", data, st.Nodes); err != nil {
		return nil, err
	}
	return &st, nil
}

func decode(data []byte, v any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(v)
}

func validate(name string, data []byte, specs []NodeSpec) error {
	for i := range specs {
		n := &specs[i]
		switch kind := n.Kind(); {
		case kind == "":
			return errors.New("E151").
				WithSource(name, data, n.Line, n.Column).
				WithMessagef("found %d", len(n.kinds)).
				WithExample("- element: div\n  children:\n    - text: inner")
		case kind == "element" && n.Element == "":
			return errors.New("E152").
				WithSource(name, data, n.Line, n.Column).
				WithMessagef("element tag is empty")
		case kind != "element" && n.hasAttrs:
			return errors.New("E152").
				WithSource(name, data, n.Line, n.Column).
				WithMessagef("attrs or children on a %s node", kind).
				WithSuggestion("Wrap the content in an element, or use list for a nested sequence")
		}
		if err := validate(name, data, n.Children); err != nil {
			return err
		}
		if err := validate(name, data, n.List); err != nil {
			return err
		}
	}
	return nil
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

func syntaxError(name string, data []byte, err error) error {
	ce := errors.New("E150").Wrap(err)
	if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
		line, _ := strconv.Atoi(m[1])
		ce.WithSource(name, data, line, 0)
	}
	return ce
}
