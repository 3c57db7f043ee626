// Package domreg provides registry handles the inspector tooling can stand
// up on its own: map-backed static handles for tests and programmatic use,
// and a scanner that builds an environment from an annotated DOM snapshot.
//
// In a live system registries are owned by the client runtimes themselves;
// these adapters exist because snapshot tooling has no live runtime to ask.
package domreg

import (
	"github.com/hazyhaar/domscope/compref"
	"github.com/hazyhaar/domscope/domtree"
)

// Static is a map-backed registry handle for one runtime instance.
type Static struct {
	uiID  int
	nodes map[*domtree.Node]int
}

// NewStatic creates an empty handle for the given runtime instance ID.
func NewStatic(uiID int) *Static {
	return &Static{uiID: uiID, nodes: make(map[*domtree.Node]int)}
}

// Put registers an element with its component-local identifier.
func (s *Static) Put(el *domtree.Node, nodeID int) {
	s.nodes[el] = nodeID
}

// UIID returns the runtime instance identifier.
func (s *Static) UIID() int {
	return s.uiID
}

// NodeID implements compref.NodeLookup.
func (s *Static) NodeID(el *domtree.Node) int {
	if id, ok := s.nodes[el]; ok {
		return id
	}
	return compref.NotFoundID
}
