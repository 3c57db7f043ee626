package domtree

import "strings"

// Query returns all elements under root matching a simple CSS selector.
// Matching descends into shadow roots, so a selector addresses elements a
// page author would consider "on the page" regardless of encapsulation.
//
// Supported selector subset:
//   - tag: "div", "main"
//   - .class, #id
//   - tag.class, tag#id
//   - tag[attr], tag[attr=val]
//   - parts separated by space (descendant combinator, shadow-crossing)
func Query(root *Node, selector string) []*Node {
	parts := strings.Fields(selector)
	if len(parts) == 0 || root == nil {
		return nil
	}

	matches := matchSimple(root, parts[0])
	for i := 1; i < len(parts); i++ {
		var next []*Node
		for _, parent := range matches {
			next = append(next, matchSimple(parent, parts[i])...)
		}
		matches = next
	}
	return matches
}

// First returns the first element matching selector, or nil.
func First(root *Node, selector string) *Node {
	m := Query(root, selector)
	if len(m) == 0 {
		return nil
	}
	return m[0]
}

func matchSimple(root *Node, sel string) []*Node {
	m := parseSimpleSelector(sel)
	var results []*Node
	root.Walk(func(n *Node) bool {
		if n != root && matchesSelector(n, m) {
			results = append(results, n)
		}
		return true
	})
	return results
}

type simpleSelector struct {
	tag     string
	id      string
	class   string
	attrKey string
	attrVal string
}

func parseSimpleSelector(sel string) simpleSelector {
	var s simpleSelector

	if idx := strings.IndexByte(sel, '['); idx >= 0 {
		attrPart := strings.TrimRight(sel[idx+1:], "]")
		sel = sel[:idx]
		if eq := strings.IndexByte(attrPart, '='); eq >= 0 {
			s.attrKey = attrPart[:eq]
			s.attrVal = strings.Trim(attrPart[eq+1:], `"'`)
		} else {
			s.attrKey = attrPart
		}
	}

	if idx := strings.IndexByte(sel, '#'); idx >= 0 {
		s.id = sel[idx+1:]
		sel = sel[:idx]
	}

	if idx := strings.IndexByte(sel, '.'); idx >= 0 {
		s.class = sel[idx+1:]
		sel = sel[:idx]
	}

	s.tag = strings.ToLower(sel)
	return s
}

func matchesSelector(n *Node, m simpleSelector) bool {
	if !n.IsElement() {
		return false
	}
	if m.tag != "" && n.Tag != m.tag {
		return false
	}
	if m.id != "" {
		if id, _ := n.Attr("id"); id != m.id {
			return false
		}
	}
	if m.class != "" && !hasClass(n, m.class) {
		return false
	}
	if m.attrKey != "" {
		v, ok := n.Attr(m.attrKey)
		if !ok {
			return false
		}
		if m.attrVal != "" && v != m.attrVal {
			return false
		}
	}
	return true
}

func hasClass(n *Node, class string) bool {
	v, _ := n.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
