package cleanhtml

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Sanitizer filters markup down to an allow-list.
//
// allowedTags is a comma separated list of element names, each optionally
// followed by bracketed, pipe separated attribute names, for example
// "p,strong,a[href|target]". An empty list allows no tags, leaving only
// text. Implementations must also drop elements left empty by filtering.
type Sanitizer interface {
	Sanitize(markup, allowedTags string) (string, error)
}

// PolicySanitizer is the default Sanitizer, backed by bluemonday. Policies
// are built once per allow-list and reused. It is safe for concurrent use.
type PolicySanitizer struct {
	mu       sync.Mutex
	policies map[string]*bluemonday.Policy
}

// NewPolicySanitizer creates a PolicySanitizer with an empty policy cache.
func NewPolicySanitizer() *PolicySanitizer {
	return &PolicySanitizer{
		policies: make(map[string]*bluemonday.Policy),
	}
}

// Sanitize implements Sanitizer.
func (s *PolicySanitizer) Sanitize(markup, allowedTags string) (string, error) {
	out := s.policy(allowedTags).Sanitize(markup)
	return removeEmptyElements(out)
}

func (s *PolicySanitizer) policy(allowedTags string) *bluemonday.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.policies[allowedTags]; ok {
		return p
	}
	p := buildPolicy(allowedTags)
	s.policies[allowedTags] = p
	return p
}

// tagRule is one parsed entry of an allow-list.
type tagRule struct {
	Element string
	Attrs   []string
}

// parseAllowedTags splits an allow-list into rules. Blank entries are
// skipped.
func parseAllowedTags(spec string) []tagRule {
	var rules []tagRule
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}

		rule := tagRule{Element: entry}
		if i := strings.IndexByte(entry, '['); i >= 0 {
			rule.Element = strings.TrimSpace(entry[:i])
			for _, attr := range strings.Split(strings.TrimSuffix(entry[i+1:], "]"), "|") {
				if attr = strings.TrimSpace(attr); attr != "" {
					rule.Attrs = append(rule.Attrs, attr)
				}
			}
		}
		if rule.Element != "" {
			rules = append(rules, rule)
		}
	}
	return rules
}

// buildPolicy turns an allow-list into a bluemonday policy. URL-bearing
// attributes are limited to the standard schemes. No rel attribute is
// added to links, so allowed attributes pass through unchanged.
func buildPolicy(spec string) *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	withAttrs := false
	for _, rule := range parseAllowedTags(spec) {
		p.AllowElements(rule.Element)
		if len(rule.Attrs) > 0 {
			p.AllowAttrs(rule.Attrs...).OnElements(rule.Element)
			withAttrs = true
		}
	}
	if withAttrs {
		p.RequireParseableURLs(true)
		p.AllowRelativeURLs(true)
		p.AllowURLSchemes("mailto", "http", "https")
	}
	return p
}

// voidElements never have content and are never considered empty.
var voidElements = map[atom.Atom]bool{
	atom.Area:   true,
	atom.Base:   true,
	atom.Br:     true,
	atom.Col:    true,
	atom.Embed:  true,
	atom.Hr:     true,
	atom.Img:    true,
	atom.Input:  true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Param:  true,
	atom.Source: true,
	atom.Track:  true,
	atom.Wbr:    true,
}

// keepEmpty are content elements that may legitimately be empty.
var keepEmpty = map[atom.Atom]bool{
	atom.Td: true,
	atom.Th: true,
}

// removeEmptyElements drops elements whose content is only whitespace,
// innermost first, so parents emptied by the removal go too.
func removeEmptyElements(fragment string) (string, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", fmt.Errorf("parsing sanitized markup: %w", err)
	}

	root := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	pruneEmpty(root)

	var buf bytes.Buffer
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering sanitized markup: %w", err)
		}
	}
	return buf.String(), nil
}

// pruneEmpty removes empty descendants of n and returns how many it removed.
func pruneEmpty(n *html.Node) int {
	removed := 0
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.ElementNode {
			removed += pruneEmpty(c)
			if isEmptyElement(c) {
				n.RemoveChild(c)
				removed++
			}
		}
		c = next
	}
	return removed
}

func isEmptyElement(n *html.Node) bool {
	if voidElements[n.DataAtom] || keepEmpty[n.DataAtom] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimFunc(c.Data, unicode.IsSpace) != "" {
				return false
			}
		}
	}
	return true
}
