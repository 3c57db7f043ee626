package domtree

// maxWalkDepth bounds upward walks. A well-formed snapshot terminates long
// before this; the bound guards against a malformed graph looping forever.
const maxWalkDepth = 10000

// Contains reports whether node lies within ref's subtree, where "subtree"
// spans shadow-root boundaries.
//
// The ordinary parent-link relation is checked first. When that fails, the
// walk climbs from node one step at a time, hopping from each shadow root to
// its host element, until it reaches ref (contained), node's owning document
// (escaped), or runs out of ancestors.
func Contains(ref, node *Node) bool {
	if ref == nil || node == nil {
		return false
	}
	if containsPlain(ref, node) {
		return true
	}

	doc := node.Doc
	cur := node
	for i := 0; cur != nil && i < maxWalkDepth; i++ {
		if cur == ref {
			return true
		}
		if cur == doc {
			return false
		}
		cur = cur.ParentOrHost()
	}
	return false
}

// containsPlain is the fast path: ref is an ancestor-or-self of node through
// parent links only.
func containsPlain(ref, node *Node) bool {
	for cur, i := node, 0; cur != nil && i < maxWalkDepth; cur, i = cur.Parent, i+1 {
		if cur == ref {
			return true
		}
	}
	return false
}
