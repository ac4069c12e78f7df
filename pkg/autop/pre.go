package autop

import (
	"strconv"
	"strings"
)

// prePlaceholders maps placeholder tags to the verbatim <pre> blocks they
// stand in for. It lives for a single Autop call.
type prePlaceholders struct {
	names  []string
	blocks []string
}

// extractPre swaps every <pre>...</pre> block for a placeholder tag so the
// paragraph rules cannot alter its content.
func extractPre(text string) (string, *prePlaceholders) {
	pres := &prePlaceholders{}
	if !strings.Contains(text, "<pre") {
		return text, pres
	}

	parts := strings.Split(text, "</pre>")
	last := parts[len(parts)-1]
	parts = parts[:len(parts)-1]

	var sb strings.Builder
	for _, part := range parts {
		start := strings.Index(part, "<pre")
		if start < 0 {
			// Stray closing tag with no opening: keep it as written.
			sb.WriteString(part)
			sb.WriteString("</pre>")
			continue
		}

		name := "<pre autop-pre-tag-" + strconv.Itoa(len(pres.names)) + "></pre>"
		pres.names = append(pres.names, name)
		pres.blocks = append(pres.blocks, part[start:]+"</pre>")

		sb.WriteString(part[:start])
		sb.WriteString(name)
	}
	sb.WriteString(last)

	return sb.String(), pres
}

// restore puts the original <pre> blocks back in place of their placeholders.
func (p *prePlaceholders) restore(text string) string {
	if len(p.names) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(p.names))
	for i, name := range p.names {
		pairs = append(pairs, name, p.blocks[i])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}
