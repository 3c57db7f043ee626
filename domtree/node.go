// Package domtree models a DOM snapshot as a node graph that keeps the two
// links ordinary HTML parsers drop: an element's attached shadow root and a
// shadow root's host element. Everything that walks "upward through shadow
// boundaries" in this module walks these links.
//
// The graph is built once from an HTML snapshot (see Parse) and read-only
// afterwards. There is no live DOM: a tree is a snapshot valid at build time.
package domtree

import "strings"

// Kind discriminates node types in the graph.
type Kind int

const (
	KindDocument Kind = iota
	KindElement
	KindText
	KindComment
	KindShadowRoot
)

// Node is one node of a parsed DOM snapshot.
//
// For elements, Tag is lowercase and Shadow points at the attached shadow
// root when one exists. For shadow roots, Host points back at the owning
// element. Children of a shadow root have the shadow root as Parent and no
// parent element, matching browser semantics.
type Node struct {
	Kind     Kind
	Tag      string            // elements only, lowercase
	Attrs    map[string]string // elements only
	Text     string            // text and comment nodes
	Parent   *Node
	Children []*Node
	Shadow   *Node // element → attached shadow root
	Host     *Node // shadow root → host element
	Doc      *Node // owning document
}

// IsElement reports whether n is an element node.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == KindElement
}

// Attr returns the value of an attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

// ParentElement returns the nearest parent that is an element, without
// crossing shadow boundaries. A shadow root's children have none.
func (n *Node) ParentElement() *Node {
	if n == nil || n.Parent == nil {
		return nil
	}
	if n.Parent.Kind == KindElement {
		return n.Parent
	}
	return nil
}

// ParentOrHost performs one upward step: the parent node when there is one,
// otherwise the host element when n is a shadow root. Returns nil at the top
// of a document.
func (n *Node) ParentOrHost() *Node {
	if n == nil {
		return nil
	}
	if n.Parent != nil {
		return n.Parent
	}
	if n.Kind == KindShadowRoot {
		return n.Host
	}
	return nil
}

// Walk visits n and every node beneath it, including shadow roots and their
// contents, in document order. fn returning false prunes the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if n.Shadow != nil {
		n.Shadow.Walk(fn)
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// HasTagPrefix reports whether n is an element whose tag name starts with
// prefix, compared case-insensitively.
func (n *Node) HasTagPrefix(prefix string) bool {
	return n.IsElement() && strings.HasPrefix(n.Tag, strings.ToLower(prefix))
}
