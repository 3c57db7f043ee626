package compref

import "github.com/hazyhaar/domscope/domtree"

// DefaultContainerPrefix is the conventional tag-name prefix of top-level
// container elements. The prefix is a contract owned by the container
// implementation, so resolvers accept any boundary predicate; this is only
// the default.
const DefaultContainerPrefix = "ui-container"

// maxChainDepth bounds the upward traversal. Well-formed documents terminate
// far below this; the bound guards against a malformed snapshot.
const maxChainDepth = 10000

// BoundaryFunc decides whether an element is a container boundary at which
// upward traversal stops. The boundary element itself is never part of a
// resolved chain.
type BoundaryFunc func(el *domtree.Node) bool

// TagPrefixBoundary returns the conventional boundary predicate: elements
// whose tag name begins with prefix, case-insensitively.
func TagPrefixBoundary(prefix string) BoundaryFunc {
	return func(el *domtree.Node) bool {
		return el.HasTagPrefix(prefix)
	}
}

// Resolver walks upward from an element collecting the components that own
// it. It is stateless apart from its configuration and safe for concurrent
// use over unchanging snapshots.
type Resolver struct {
	env      *Environment
	boundary BoundaryFunc
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithBoundary replaces the container-boundary predicate.
func WithBoundary(b BoundaryFunc) ResolverOption {
	return func(r *Resolver) { r.boundary = b }
}

// NewResolver builds a Resolver over an environment of registry handles.
func NewResolver(env *Environment, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		env:      env,
		boundary: TagPrefixBoundary(DefaultContainerPrefix),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// OwningComponents resolves the chain of components owning start, ordered
// outermost first.
//
// The cursor begins at start and climbs one step per iteration: the parent
// when there is one, otherwise the shadow root's host. Every visited element
// is resolved against the environment; recognized elements are collected
// unless they match the boundary predicate, which ends traversal without
// including the boundary element. The walk ends when the cursor runs out of
// parents and hosts.
//
// An element owned by nothing anywhere in its ancestor chain yields an empty
// slice, as does a start element that is itself the boundary.
func (r *Resolver) OwningComponents(start *domtree.Node) []Ref {
	var chain []Ref

	cur := start
	for i := 0; i < maxChainDepth; i++ {
		if cur == nil || !cur.IsElement() || cur.ParentOrHost() == nil {
			break
		}

		if ref := r.env.ResolveOwner(cur); ref.Found() {
			if r.boundary != nil && r.boundary(ref.Element) {
				break
			}
			chain = append(chain, ref)
		}

		cur = nextAncestorElement(cur)
	}

	reverse(chain)
	return chain
}

// nextAncestorElement advances the cursor: the parent element when one
// exists, otherwise the host of the enclosing shadow root. Documents and
// detached tops yield nil.
func nextAncestorElement(el *domtree.Node) *domtree.Node {
	p := el.Parent
	if p == nil {
		return nil
	}
	switch p.Kind {
	case domtree.KindElement:
		return p
	case domtree.KindShadowRoot:
		return p.Host
	default:
		return nil
	}
}

// reverse flips leaf-to-root collection order into outermost-first.
func reverse(refs []Ref) {
	for i, j := 0, len(refs)-1; i < j; i, j = i+1, j-1 {
		refs[i], refs[j] = refs[j], refs[i]
	}
}
