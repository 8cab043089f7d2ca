package vdom

import (
	"testing"

	"github.com/vango-dev/vlist/pkg/host"
)

// container returns an empty host element to render into.
func container() *host.Node {
	return host.NewElement("div")
}

// mutationCounts records host mutations under root by kind.
func mutationCounts(root *host.Node) map[host.MutationKind]int {
	counts := make(map[host.MutationKind]int)
	root.SetObserver(host.ObserverFunc(func(m host.Mutation) {
		counts[m.Kind]++
	}))
	return counts
}

func mustPatch(t *testing.T, n Node, old Node, parent, next *host.Node) {
	t.Helper()
	if err := n.Patch(old, parent, next); err != nil {
		t.Fatalf("Patch() error = %v", err)
	}
}

func texts(contents ...string) *List {
	entries := make([]KeyedNode, 0, len(contents))
	for _, c := range contents {
		entries = append(entries, Unkeyed(NewText(c)))
	}
	return NewList(entries...)
}
