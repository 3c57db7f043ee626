package domreg

import (
	"strconv"

	"github.com/hazyhaar/domscope/compref"
	"github.com/hazyhaar/domscope/domtree"
)

// Default annotation attribute names for scanned snapshots.
const (
	DefaultNodeIDAttr = "data-node-id"
	DefaultUIIDAttr   = "data-ui-id"
)

// ScanOptions configures Scan. Zero values take the defaults above.
type ScanOptions struct {
	// NodeIDAttr holds the component-local identifier on managed elements.
	NodeIDAttr string
	// UIIDAttr holds the owning runtime instance identifier.
	UIIDAttr string
}

func (o *ScanOptions) defaults() {
	if o.NodeIDAttr == "" {
		o.NodeIDAttr = DefaultNodeIDAttr
	}
	if o.UIIDAttr == "" {
		o.UIIDAttr = DefaultUIIDAttr
	}
}

// Scan walks a snapshot (including shadow roots) and builds an environment
// with one Static handle per distinct runtime instance found, ordered by
// first appearance in document order.
//
// An element participates when both annotation attributes are present and
// parse as non-negative integers; anything else is ignored. This is a
// tooling convention for snapshots, not registry discovery: live systems
// hand the resolver their real handles directly.
func Scan(doc *domtree.Node, opts ScanOptions) *compref.Environment {
	opts.defaults()

	env := compref.NewEnvironment()
	byUI := make(map[int]*Static)

	doc.Walk(func(n *domtree.Node) bool {
		if !n.IsElement() {
			return true
		}
		nodeID, ok := intAttr(n, opts.NodeIDAttr)
		if !ok {
			return true
		}
		uiID, ok := intAttr(n, opts.UIIDAttr)
		if !ok {
			return true
		}
		h, exists := byUI[uiID]
		if !exists {
			h = NewStatic(uiID)
			byUI[uiID] = h
			env.Add(h)
		}
		h.Put(n, nodeID)
		return true
	})

	return env
}

func intAttr(n *domtree.Node, name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(v)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
