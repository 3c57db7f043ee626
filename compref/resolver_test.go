package compref

import (
	"reflect"
	"testing"

	"github.com/hazyhaar/domscope/domtree"
)

const chainFixture = `<html><body>
	<ui-container-root>
		<div id="view">
			<div id="form">
				<x-field id="field">
					<template shadowrootmode="open"><input id="input"></template>
				</x-field>
			</div>
		</div>
	</ui-container-root>
</body></html>`

func chainIDs(refs []Ref) []int {
	ids := make([]int, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.NodeID)
	}
	return ids
}

func TestOwningComponentsOutermostFirst(t *testing.T) {
	doc := parseFixture(t, chainFixture)

	h := newMapHandle(1)
	h.put(domtree.First(doc, "#view"), 1)
	h.put(domtree.First(doc, "#form"), 2)
	h.put(domtree.First(doc, "#field"), 3)

	r := NewResolver(NewEnvironment(h))
	refs := r.OwningComponents(domtree.First(doc, "#input"))

	if got, want := chainIDs(refs), []int{1, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("chain: got %v, want %v", got, want)
	}

	// Each subsequent element is a descendant of the previous one.
	for i := 1; i < len(refs); i++ {
		if !domtree.Contains(refs[i-1].Element, refs[i].Element) {
			t.Errorf("refs[%d] is not an ancestor of refs[%d]", i-1, i)
		}
	}
}

func TestOwningComponentsStopsAtBoundary(t *testing.T) {
	doc := parseFixture(t, chainFixture)
	boundary := domtree.First(doc, "ui-container-root")

	h := newMapHandle(1)
	h.put(domtree.First(doc, "#view"), 1)
	h.put(boundary, 99)

	r := NewResolver(NewEnvironment(h))
	refs := r.OwningComponents(domtree.First(doc, "#input"))

	for _, ref := range refs {
		if ref.Element == boundary {
			t.Error("boundary element must never appear in the chain")
		}
	}
	if got, want := chainIDs(refs), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("chain: got %v, want %v", got, want)
	}
}

// Registry maps X→3; X's parent Y is unrecognized; Y's parent Z is the
// container boundary. The chain is exactly [3] and Z stops traversal.
func TestOwningComponentsSkipsUnrecognizedAncestors(t *testing.T) {
	doc := parseFixture(t, `<html><body>
		<ui-container-root id="z"><div id="y"><div id="x"></div></div></ui-container-root>
	</body></html>`)

	h := newMapHandle(4)
	h.put(domtree.First(doc, "#x"), 3)
	h.put(domtree.First(doc, "#z"), 8)

	r := NewResolver(NewEnvironment(h))
	refs := r.OwningComponents(domtree.First(doc, "#x"))

	if got, want := chainIDs(refs), []int{3}; !reflect.DeepEqual(got, want) {
		t.Errorf("chain: got %v, want %v", got, want)
	}
	if refs[0].UIID != 4 {
		t.Errorf("UIID: got %d, want 4", refs[0].UIID)
	}
}

func TestOwningComponentsUnownedChainIsEmpty(t *testing.T) {
	doc := parseFixture(t, chainFixture)
	r := NewResolver(NewEnvironment(newMapHandle(1)))
	if refs := r.OwningComponents(domtree.First(doc, "#input")); len(refs) != 0 {
		t.Errorf("unowned chain: got %v, want empty", refs)
	}
}

func TestOwningComponentsBoundaryStartIsEmpty(t *testing.T) {
	doc := parseFixture(t, chainFixture)
	boundary := domtree.First(doc, "ui-container-root")

	h := newMapHandle(1)
	h.put(boundary, 5)

	r := NewResolver(NewEnvironment(h))
	if refs := r.OwningComponents(boundary); len(refs) != 0 {
		t.Errorf("boundary start: got %v, want empty", refs)
	}
}

func TestOwningComponentsCustomBoundary(t *testing.T) {
	doc := parseFixture(t, `<html><body>
		<my-shell><div id="inner"></div></my-shell>
	</body></html>`)

	h := newMapHandle(1)
	h.put(domtree.First(doc, "#inner"), 1)
	h.put(domtree.First(doc, "my-shell"), 2)

	r := NewResolver(NewEnvironment(h), WithBoundary(TagPrefixBoundary("my-shell")))
	refs := r.OwningComponents(domtree.First(doc, "#inner"))
	if got, want := chainIDs(refs), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("custom boundary chain: got %v, want %v", got, want)
	}
}

func TestOwningComponentsCrossesShadowBoundary(t *testing.T) {
	doc := parseFixture(t, chainFixture)

	h := newMapHandle(1)
	h.put(domtree.First(doc, "#field"), 3)

	r := NewResolver(NewEnvironment(h))
	refs := r.OwningComponents(domtree.First(doc, "#input"))
	if got, want := chainIDs(refs), []int{3}; !reflect.DeepEqual(got, want) {
		t.Errorf("shadow-crossing chain: got %v, want %v", got, want)
	}
}

func TestOwningComponentsIdempotent(t *testing.T) {
	doc := parseFixture(t, chainFixture)

	h := newMapHandle(1)
	h.put(domtree.First(doc, "#view"), 1)
	h.put(domtree.First(doc, "#form"), 2)

	r := NewResolver(NewEnvironment(h))
	start := domtree.First(doc, "#input")

	first := r.OwningComponents(start)
	second := r.OwningComponents(start)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat resolution differs: %v vs %v", first, second)
	}
}

func TestOwningComponentsMultipleRegistries(t *testing.T) {
	doc := parseFixture(t, chainFixture)

	outer := newMapHandle(1)
	outer.put(domtree.First(doc, "#view"), 1)
	inner := newMapHandle(2)
	inner.put(domtree.First(doc, "#form"), 6)

	r := NewResolver(NewEnvironment(outer, inner))
	refs := r.OwningComponents(domtree.First(doc, "#input"))

	if got, want := chainIDs(refs), []int{1, 6}; !reflect.DeepEqual(got, want) {
		t.Errorf("chain: got %v, want %v", got, want)
	}
	if refs[0].UIID != 1 || refs[1].UIID != 2 {
		t.Errorf("UIIDs: got %d,%d want 1,2", refs[0].UIID, refs[1].UIID)
	}
}
