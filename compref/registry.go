package compref

import "github.com/hazyhaar/domscope/domtree"

// Handle represents one independently operating client runtime instance.
// Handles are owned and populated entirely by the hosting runtime; this
// package only reads them.
type Handle interface {
	// UIID returns the runtime instance's own identifier.
	UIID() int
}

// NodeLookup is the optional lookup capability of a Handle. A handle that
// does not implement it is treated as non-participating, not as an error.
type NodeLookup interface {
	// NodeID maps an element to its component-local identifier, or
	// NotFoundID when the element is not managed by this instance.
	NodeID(el *domtree.Node) int
}

// Environment is an explicit, ordered collection of registry handles.
// Callers construct it from whatever runtimes are active; there is no
// ambient global table. The zero value is a valid empty environment.
type Environment struct {
	handles []Handle
}

// NewEnvironment builds an environment over the given handles. Order is
// significant: the first handle that maps an element wins.
func NewEnvironment(handles ...Handle) *Environment {
	return &Environment{handles: handles}
}

// Add appends a handle to the enumeration order.
func (e *Environment) Add(h Handle) {
	e.handles = append(e.handles, h)
}

// Handles returns the handles in enumeration order.
func (e *Environment) Handles() []Handle {
	return e.handles
}

// ResolveOwner consults every handle in order and returns, for the first
// one that recognizes el, the component-local identifier together with that
// handle's instance identifier and el itself.
//
// An empty environment, handles without the lookup capability, and elements
// no handle recognizes all degrade to the not-found sentinel. Pure read; no
// side effects.
func (e *Environment) ResolveOwner(el *domtree.Node) Ref {
	if e == nil || el == nil {
		return notFound()
	}
	for _, h := range e.handles {
		lookup, ok := h.(NodeLookup)
		if !ok {
			continue
		}
		if id := lookup.NodeID(el); id >= 0 {
			return Ref{NodeID: id, UIID: h.UIID(), Element: el}
		}
	}
	return notFound()
}
