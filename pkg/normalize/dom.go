package normalize

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// textContent returns the concatenated text of n and its descendants.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(cur *html.Node) {
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// newHeading builds an <h2> holding a single text node. Runs of whitespace
// left over from indented source markup collapse to one space.
func newHeading(text string) *html.Node {
	h := &html.Node{
		Type:     html.ElementNode,
		Data:     "h2",
		DataAtom: atom.H2,
	}
	h.AppendChild(&html.Node{Type: html.TextNode, Data: strings.Join(strings.Fields(text), " ")})
	return h
}

// replaceNode puts repl where old was. The replacement is attached before the
// old node is removed. Detached nodes are left alone.
func replaceNode(old, repl *html.Node) bool {
	parent := old.Parent
	if parent == nil {
		return false
	}
	parent.InsertBefore(repl, old)
	parent.RemoveChild(old)
	return true
}

// unwrapNode moves the children of n into its parent at n's position, in
// order, then removes n.
func unwrapNode(n *html.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
		c = next
	}
	parent.RemoveChild(n)
	return true
}

// attached reports whether n is still reachable from a document root.
func attached(n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.Type == html.DocumentNode {
			return true
		}
	}
	return false
}

// Unwrap replaces n with its children. It reports false when n is detached.
func Unwrap(n *html.Node) bool {
	return unwrapNode(n)
}
