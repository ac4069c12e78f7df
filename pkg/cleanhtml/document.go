package cleanhtml

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// blockElements are the elements kept at the top level of the body and the
// ones that end an implied paragraph.
var blockElements = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Blockquote: true,
	atom.Caption:    true,
	atom.Center:     true,
	atom.Dd:         true,
	atom.Details:    true,
	atom.Dialog:     true,
	atom.Dir:        true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Header:     true,
	atom.Hgroup:     true,
	atom.Hr:         true,
	atom.Li:         true,
	atom.Listing:    true,
	atom.Main:       true,
	atom.Menu:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Section:    true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Tr:         true,
	atom.Ul:         true,
	atom.Xmp:        true,
}

// parseDocument parses a complete document produced by preClean or built
// from documentShell.
func parseDocument(markup string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return doc, nil
}

// bodyNode returns the <body> element of doc, or nil.
func bodyNode(doc *goquery.Document) *html.Node {
	if doc == nil {
		return nil
	}
	body := doc.Find("body")
	if body.Length() == 0 {
		return nil
	}
	return body.Nodes[0]
}

// isBlockLevel reports whether n is a block element or an inline wrapper
// around one.
func isBlockLevel(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if blockElements[n.DataAtom] {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isBlockLevel(c) {
			return true
		}
	}
	return false
}

// impliedParagraph wraps loose text at the start of the body in a <p>. The
// run starts at the first non-blank text node and extends over the
// following inline siblings up to the first block element. It reports
// whether a paragraph was added.
func impliedParagraph(doc *goquery.Document) bool {
	body := bodyNode(doc)
	if body == nil {
		return false
	}

	start := body.FirstChild
	for start != nil {
		if start.Type == html.TextNode && strings.TrimSpace(start.Data) != "" {
			break
		}
		if start.Type == html.ElementNode {
			return false
		}
		start = start.NextSibling
	}
	if start == nil {
		return false
	}

	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	body.InsertBefore(p, start)
	for c := start; c != nil && !isBlockLevel(c); {
		next := c.NextSibling
		body.RemoveChild(c)
		p.AppendChild(c)
		c = next
	}
	return true
}
