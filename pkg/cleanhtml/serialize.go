package cleanhtml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/cleanhtml/pkg/normalize"
)

var (
	blankLinesRegex    = regexp.MustCompile(`(\n\s*){2,}`)
	trailingSpaceRegex = regexp.MustCompile(`\s\s+$`)
)

// Serialize renders the block-level children of the document body, one per
// line. Parser-inserted <tbody> wrappers and inline elements wrapping blocks
// (e.g. <b><p> from Google Docs) are unwrapped first. Quotes in text are
// written literally. Non-breaking spaces become plain spaces and blank lines
// are collapsed. A document without a body serializes to "".
func Serialize(doc *goquery.Document) (string, error) {
	body := bodyNode(doc)
	if body == nil {
		return "", nil
	}

	for _, tbody := range doc.Find("body tbody").Nodes {
		normalize.Unwrap(tbody)
	}
	unwrapInlineWrappers(body)

	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || !blockElements[c.DataAtom] {
			continue
		}
		if err := html.Render(&sb, c); err != nil {
			return "", fmt.Errorf("rendering <%s>: %w", c.Data, err)
		}
		sb.WriteByte('\n')
	}

	out := unescapeQuotes(sb.String())
	out = strings.ReplaceAll(out, "\u00a0", " ")
	out = blankLinesRegex.ReplaceAllString(out, "\n")
	out = trailingSpaceRegex.ReplaceAllString(out, "")
	return out, nil
}

// unwrapInlineWrappers replaces inline children of body that contain block
// elements with their children, until only blocks and plain inline content
// remain at the top level.
func unwrapInlineWrappers(body *html.Node) int {
	unwrapped := 0
	for c := body.FirstChild; c != nil; {
		if c.Type == html.ElementNode && !blockElements[c.DataAtom] && isBlockLevel(c) {
			first := c.FirstChild
			normalize.Unwrap(c)
			unwrapped++
			c = first
			continue
		}
		c = c.NextSibling
	}
	return unwrapped
}

// unescapeQuotes turns the &#39; and &#34; entities html.Render writes for
// quote characters back into literal quotes, outside of tags only.
func unescapeQuotes(s string) string {
	if !strings.Contains(s, "&#") {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	inTag := false
	for i := 0; i < len(s); {
		switch {
		case s[i] == '<':
			inTag = true
		case s[i] == '>':
			inTag = false
		case !inTag && strings.HasPrefix(s[i:], "&#39;"):
			sb.WriteByte('\'')
			i += len("&#39;")
			continue
		case !inTag && strings.HasPrefix(s[i:], "&#34;"):
			sb.WriteByte('"')
			i += len("&#34;")
			continue
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
