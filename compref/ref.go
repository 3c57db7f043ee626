// Package compref resolves DOM elements to the server-managed components
// that own them. A hybrid page mixes subtrees controlled by server-resident
// component trees with plain client markup; overlays and inspectors use this
// package to answer which components own an element, outermost first.
//
// The package is a pure read layer: it walks an existing domtree snapshot
// and queries externally owned registry handles. It never mutates either,
// holds no cross-call state, and models every miss as a not-found value
// rather than an error.
package compref

import "github.com/hazyhaar/domscope/domtree"

// NotFoundID is the sentinel node and UI identifier for "no owning
// component".
const NotFoundID = -1

// Ref associates a DOM element with its owning server-side component.
//
// A Ref is a transient value: built fresh on every resolution, never cached,
// never mutated. HighlightElement is populated by callers that want a
// different element visually marked than the one that resolved; the resolver
// leaves it nil.
type Ref struct {
	// NodeID identifies the component within its owning runtime instance.
	// NotFoundID means no owning component was found.
	NodeID int
	// UIID identifies the runtime instance that owns the node.
	UIID int
	// Element is the DOM element that produced this reference.
	Element *domtree.Node
	// HighlightElement optionally overrides Element for visual highlighting.
	HighlightElement *domtree.Node
}

// Found reports whether the reference points at an owning component.
func (r Ref) Found() bool {
	return r.NodeID != NotFoundID
}

// notFound is the sentinel returned when no registry recognizes an element.
func notFound() Ref {
	return Ref{NodeID: NotFoundID, UIID: NotFoundID}
}
