// Package normalize rewrites editor-generated cruft in a parsed HTML
// document into canonical structure.
//
// Each rule is a stateless function over a goquery document. Rules are
// applied in a fixed order by Apply, once per pipeline pass; every rule is
// idempotent on its own.
package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Pass identifies which pipeline pass a rule runs in.
type Pass int

const (
	// FirstPass runs over the caller's markup before sanitization.
	FirstPass Pass = iota + 1
	// SecondPass runs over the sanitizer's output.
	SecondPass
)

// String returns the pass name for logging.
func (p Pass) String() string {
	switch p {
	case FirstPass:
		return "first"
	case SecondPass:
		return "second"
	default:
		return "unknown"
	}
}

// maxHeadingWords is the longest bold paragraph promoted to a heading.
const maxHeadingWords = 8

// Rule rewrites doc in place and returns the number of nodes it changed.
type Rule struct {
	Name  string
	Apply func(doc *goquery.Document, pass Pass) int
}

// Rules returns the normalization rules in the order they are applied.
// Script removal is not part of the list; the pipeline runs it once before
// the first pass.
func Rules() []Rule {
	return []Rule{
		{Name: "promote_h1", Apply: PromoteH1},
		{Name: "promote_short_bold", Apply: PromoteShortBold},
		{Name: "collapse_bold_heading", Apply: CollapseBoldHeading},
		{Name: "unwrap_spans", Apply: UnwrapSpans},
		{Name: "unwrap_list_paragraphs", Apply: UnwrapListParagraphs},
	}
}

// Report counts the rewrites made by each rule during one Apply call.
type Report map[string]int

// Total returns the sum of all rewrites.
func (r Report) Total() int {
	total := 0
	for _, n := range r {
		total += n
	}
	return total
}

// Apply runs every rule in Rules over doc for the given pass.
func Apply(doc *goquery.Document, pass Pass) Report {
	report := make(Report)
	for _, rule := range Rules() {
		if n := rule.Apply(doc, pass); n > 0 {
			report[rule.Name] += n
		}
	}
	return report
}

// RemoveScripts deletes every <script> element and its content.
func RemoveScripts(doc *goquery.Document, _ Pass) int {
	scripts := doc.Find("script")
	n := scripts.Length()
	scripts.Remove()
	return n
}

// PromoteH1 replaces each <h1> with an <h2> holding only its text.
func PromoteH1(doc *goquery.Document, _ Pass) int {
	changed := 0
	for _, n := range doc.Find("h1").Nodes {
		if !attached(n) {
			continue
		}
		if replaceNode(n, newHeading(textContent(n))) {
			changed++
		}
	}
	return changed
}

// PromoteShortBold turns a paragraph that is nothing but a short run of bold
// text into an <h2>.
func PromoteShortBold(doc *goquery.Document, _ Pass) int {
	changed := 0
	for _, strong := range doc.Find("p > strong").Nodes {
		if !attached(strong) {
			continue
		}
		text, ok := soleBoldText(strong)
		if !ok || len(strings.Fields(text)) > maxHeadingWords {
			continue
		}
		if replaceNode(strong.Parent, newHeading(text)) {
			changed++
		}
	}
	return changed
}

// CollapseBoldHeading drops a <strong> that makes up the whole of an <h2>.
func CollapseBoldHeading(doc *goquery.Document, _ Pass) int {
	changed := 0
	for _, strong := range doc.Find("h2 > strong").Nodes {
		if !attached(strong) {
			continue
		}
		text, ok := soleBoldText(strong)
		if !ok {
			continue
		}
		if replaceNode(strong.Parent, newHeading(text)) {
			changed++
		}
	}
	return changed
}

// soleBoldText reports the text of strong when it carries all of its
// parent's text and starts with a plain text node.
func soleBoldText(strong *html.Node) (string, bool) {
	first := strong.FirstChild
	if first == nil || first.Type != html.TextNode {
		return "", false
	}
	text := textContent(strong)
	if textContent(strong.Parent) != text {
		return "", false
	}
	return text, true
}

// UnwrapSpans replaces each <span> directly inside a <p> with its children.
// One nesting level is removed per call.
func UnwrapSpans(doc *goquery.Document, _ Pass) int {
	changed := 0
	for _, span := range doc.Find("p > span").Nodes {
		if !attached(span) {
			continue
		}
		if unwrapNode(span) {
			changed++
		}
	}
	return changed
}

// UnwrapListParagraphs replaces paragraphs inside list items with their
// children.
//
// The first pass only evaluates the paths li//p and li/p relative to the
// document root, which match list items at the top of the tree. The second
// pass adds the absolute //li/p, matching li > p anywhere.
func UnwrapListParagraphs(doc *goquery.Document, pass Pass) int {
	root := doc.Selection
	paths := []*goquery.Selection{
		root.ChildrenFiltered("li").Find("p"),
		root.ChildrenFiltered("li").ChildrenFiltered("p"),
	}
	if pass != FirstPass {
		paths = append(paths, root.Find("li > p"))
	}

	changed := 0
	for _, sel := range paths {
		for _, p := range sel.Nodes {
			if !attached(p) {
				continue
			}
			if unwrapNode(p) {
				changed++
			}
		}
	}
	return changed
}
