package domtree

import (
	"fmt"
	"strings"
)

// Path returns a stable, human-readable location for a node, in the style of
// an XPath with 1-based sibling indexes: /html/body/div[2]. Crossing out of
// a shadow root is rendered as a ::shadow segment on the host:
// /html/body/x-card::shadow/span.
//
// Paths identify nodes in inspector output; they are not selectors and are
// not parsed back.
func Path(n *Node) string {
	if n == nil {
		return ""
	}
	var segs []string
	cur := n
	for i := 0; cur != nil && cur.Kind != KindDocument && i < maxWalkDepth; i++ {
		switch cur.Kind {
		case KindElement:
			segs = append(segs, elementSegment(cur))
			cur = cur.Parent
		case KindShadowRoot:
			// Rendered as part of the host's segment below.
			host := cur.Host
			if host == nil {
				return "/" + joinReversed(segs)
			}
			segs = append(segs, elementSegment(host)+"::shadow")
			cur = host.Parent
		default:
			cur = cur.Parent
		}
	}
	return "/" + joinReversed(segs)
}

func elementSegment(el *Node) string {
	idx := siblingIndex(el)
	if idx <= 1 {
		return el.Tag
	}
	return fmt.Sprintf("%s[%d]", el.Tag, idx)
}

// siblingIndex is the 1-based position among same-tag element siblings.
func siblingIndex(el *Node) int {
	parent := el.Parent
	if parent == nil {
		return 1
	}
	idx := 0
	for _, sib := range parent.Children {
		if sib.Kind == KindElement && sib.Tag == el.Tag {
			idx++
			if sib == el {
				return idx
			}
		}
	}
	return 1
}

func joinReversed(segs []string) string {
	var b strings.Builder
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteString(segs[i])
		if i > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
