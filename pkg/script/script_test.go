package script

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vango-dev/vlist/internal/errors"
	"github.com/vango-dev/vlist/pkg/host"
	"github.com/vango-dev/vlist/pkg/mount"
)

const greeting = `name: greeting
steps:
  - name: mount
    nodes:
      - text: Hello World!
      - element: div
  - name: reorder
    nodes:
      - element: div
        attrs: {class: box}
        children:
          - inner
      - list:
          - text: Hello World!
      - key: q
        text: How are you?
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(greeting))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Name != "greeting" || len(s.Steps) != 2 {
		t.Fatalf("Parse() = %+v", s)
	}

	reorder := s.Steps[1]
	if len(reorder.Nodes) != 3 {
		t.Fatalf("reorder has %d nodes, want 3", len(reorder.Nodes))
	}
	div := reorder.Nodes[0]
	if div.Kind() != "element" || div.Element != "div" || div.Attrs["class"] != "box" {
		t.Errorf("div = %+v", div)
	}
	if div.Line != 9 || div.Column != 9 {
		t.Errorf("div at %d:%d, want 9:9", div.Line, div.Column)
	}
	if len(div.Children) != 1 || div.Children[0].Kind() != "text" || div.Children[0].Text != "inner" {
		t.Errorf("div children = %+v", div.Children)
	}
	if reorder.Nodes[1].Kind() != "list" || len(reorder.Nodes[1].List) != 1 {
		t.Errorf("list = %+v", reorder.Nodes[1])
	}
	if q := reorder.Nodes[2]; q.Key != "q" || q.Kind() != "text" {
		t.Errorf("keyed text = %+v", q)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code string
		line int
	}{
		{"syntax", "steps: [\n", "E150", 0},
		{"unknown field", "name: x\nstep: []\n", "E150", 2},
		{"empty document", "", "E153", 0},
		{"no steps", "name: x\nsteps: []\n", "E153", 1},
		{
			"two kinds",
			"steps:\n  - nodes:\n      - text: a\n        element: b\n",
			"E151", 3,
		},
		{
			"no kind",
			"steps:\n  - nodes:\n      - key: a\n",
			"E151", 3,
		},
		{
			"empty tag",
			"steps:\n  - nodes:\n      - element: \"\"\n",
			"E152", 3,
		},
		{
			"attrs on text",
			"steps:\n  - nodes:\n      - text: a\n        attrs: {id: x}\n",
			"E152", 3,
		},
		{
			"children on list",
			"steps:\n  - nodes:\n      - list: []\n        children: [a]\n",
			"E152", 3,
		},
		{
			"nested",
			"steps:\n  - nodes:\n      - element: ul\n        children:\n          - key: x\n",
			"E151", 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			var ce *errors.Error
			if !stderrors.As(err, &ce) {
				t.Fatalf("Parse() error = %v, want *errors.Error", err)
			}
			if ce.Code != tt.code {
				t.Errorf("Code = %s, want %s (%v)", ce.Code, tt.code, err)
			}
			if tt.line > 0 && (ce.Location == nil || ce.Location.Line != tt.line) {
				t.Errorf("Location = %+v, want line %d", ce.Location, tt.line)
			}
		})
	}
}

func TestParseStepJSON(t *testing.T) {
	st, err := ParseStep([]byte(`{"name":"form","nodes":[{"text":"Name: "},{"element":"input","attrs":{"type":"text"}}]}`))
	if err != nil {
		t.Fatalf("ParseStep() error: %v", err)
	}
	if got := st.Build().String(); got != `Name: <input type="text">` {
		t.Errorf("Build().String() = %q", got)
	}

	if _, err := ParseStep([]byte(`{"nodes":[{"text":"a","list":[]}]}`)); err == nil {
		t.Error("ParseStep should reject a node with two kinds")
	}
}

func TestBuild(t *testing.T) {
	s, err := Parse([]byte(greeting))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		step int
		want string
	}{
		{0, "Hello World!<div></div>"},
		{1, `<div class="box">inner</div>Hello World!How are you?`},
	}
	for _, tt := range tests {
		if got := s.Steps[tt.step].Build().String(); got != tt.want {
			t.Errorf("step %d String() = %q, want %q", tt.step, got, tt.want)
		}
	}

	a, b := s.Steps[0].Build(), s.Steps[0].Build()
	if a == b {
		t.Error("Build() must return a fresh list on every call")
	}
	if key := s.Steps[1].Build().Entry(2).Key; key != "q" {
		t.Errorf("entry key = %q, want q", key)
	}
}

func TestRun(t *testing.T) {
	s, err := Parse([]byte(greeting))
	if err != nil {
		t.Fatal(err)
	}

	m := mount.New(host.NewElement("body"))
	results, err := s.Run(context.Background(), m)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Run() returned %d results", len(results))
	}

	first, second := results[0], results[1]
	if first.Name != "mount" || first.HTML != "Hello World!<div></div>" {
		t.Errorf("first = %+v", first)
	}
	if first.Mutations != (mount.Mutations{Inserts: 2}) {
		t.Errorf("first mutations = %+v", first.Mutations)
	}
	if second.HTML != `<div class="box">inner</div>Hello World!How are you?` {
		t.Errorf("second HTML = %q", second.HTML)
	}
	if second.Mutations != (mount.Mutations{Inserts: 3, Removes: 2}) {
		t.Errorf("second mutations = %+v", second.Mutations)
	}
	if second.Generation != 2 {
		t.Errorf("second generation = %d", second.Generation)
	}
}

func TestRunUnnamedSteps(t *testing.T) {
	s, err := Parse([]byte("steps:\n  - nodes: [a]\n  - nodes: [a, b]\n"))
	if err != nil {
		t.Fatal(err)
	}
	results, err := s.Run(context.Background(), mount.New(host.NewElement("body")))
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Name != "step 1" || results[1].Name != "step 2" {
		t.Errorf("names = %q, %q", results[0].Name, results[1].Name)
	}
	if results[1].HTML != "ab" || results[1].Mutations.Inserts != 1 {
		t.Errorf("second = %+v", results[1])
	}
}

func TestRunHostError(t *testing.T) {
	s, err := Parse([]byte(greeting))
	if err != nil {
		t.Fatal(err)
	}

	results, err := s.Run(context.Background(), mount.New(host.NewText("x")))
	if len(results) != 0 {
		t.Errorf("results = %+v, want none", results)
	}
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Code != "E100" {
		t.Fatalf("Run() error = %v, want E100", err)
	}
	if !stderrors.Is(err, host.ErrHierarchy) {
		t.Errorf("Run() error should wrap host.ErrHierarchy: %v", err)
	}
}

func TestRunCanceled(t *testing.T) {
	s, err := Parse([]byte(greeting))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Run(ctx, mount.New(host.NewElement("body"))); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "greeting.yaml")
	if err := os.WriteFile(path, []byte(greeting), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Name != "greeting" {
		t.Errorf("Name = %q", s.Name)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("steps:\n  - nodes:\n      - {}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(bad)
	var ce *errors.Error
	if !stderrors.As(err, &ce) || ce.Location == nil || ce.Location.File != bad {
		t.Errorf("Load(bad) error = %v, want location in %s", err, bad)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}
