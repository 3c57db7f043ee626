package domtree

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// shadowModeAttr marks a template element as declarative shadow DOM.
// Browsers serialize attached shadow roots this way, so snapshots captured
// from a rendered page round-trip through Parse with their shadow trees
// intact.
const shadowModeAttr = "shadowrootmode"

// Parse reads an HTML document and builds its node graph.
//
// A <template shadowrootmode="open|closed"> child becomes the parent
// element's shadow root rather than an ordinary child. Only the first such
// template per element attaches; later ones are kept as plain templates,
// which is what browsers do with repeated declarations.
func Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("domtree: parse: %w", err)
	}

	doc := &Node{Kind: KindDocument}
	doc.Doc = doc
	convertChildren(root, doc, doc)
	return doc, nil
}

// ParseString is Parse over an in-memory snapshot.
func ParseString(s string) (*Node, error) {
	return Parse(strings.NewReader(s))
}

func convertChildren(src *html.Node, dst, doc *Node) {
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		n := convert(c, doc)
		if n == nil {
			continue
		}
		if n.Kind == KindShadowRoot {
			if dst.Kind == KindElement && dst.Shadow == nil {
				n.Host = dst
				dst.Shadow = n
				continue
			}
			// No element to host it: demote to a plain template.
			n.Kind = KindElement
			n.Tag = "template"
		}
		n.Parent = dst
		dst.Children = append(dst.Children, n)
	}
}

func convert(src *html.Node, doc *Node) *Node {
	switch src.Type {
	case html.ElementNode:
		n := &Node{Kind: KindElement, Tag: strings.ToLower(src.Data), Doc: doc}
		if len(src.Attr) > 0 {
			n.Attrs = make(map[string]string, len(src.Attr))
			for _, a := range src.Attr {
				n.Attrs[a.Key] = a.Val
			}
		}
		if n.Tag == "template" {
			if mode, ok := n.Attr(shadowModeAttr); ok && (mode == "open" || mode == "closed") {
				n.Kind = KindShadowRoot
				n.Tag = ""
			}
		}
		convertChildren(src, n, doc)
		return n
	case html.TextNode:
		return &Node{Kind: KindText, Text: src.Data, Doc: doc}
	case html.CommentNode:
		return &Node{Kind: KindComment, Text: src.Data, Doc: doc}
	default:
		// Doctype and error nodes carry nothing the inspector reads.
		return nil
	}
}
