package cleanhtml

import (
	"regexp"
	"strings"
)

// documentShell is prepended to every fragment so the parser treats it as
// UTF-8 body content.
const documentShell = `<!DOCTYPE html><meta charset="utf-8">` +
	`<meta http-equiv="Content-Type" content="text/html; charset=utf-8">`

var (
	// Two or more whitespace characters or &nbsp; entities.
	spaceRunRegex = regexp.MustCompile(`(?:\s|&nbsp;){2,}`)

	// Whitespace directly after a bare opening tag.
	openTagSpaceRegex = regexp.MustCompile(`<(\w*)>(?:\s|&nbsp;)`)

	// Two consecutive line breaks, with any surrounding whitespace.
	doubleBreakRegex = regexp.MustCompile(`(?i)\s*<br\s*/?>\s*<br\s*/?>`)

	// An opening tag followed only by blank content and a closing tag. The
	// tag names are compared by removeEmptyPairs.
	emptyPairRegex = regexp.MustCompile(`<(\w*)[^>]*>(?:\s|&nbsp;|\x{00A0})*</(\w*)>`)
)

// preClean applies the textual clean-up that runs before parsing and returns
// the fragment wrapped in documentShell.
func preClean(fragment string) string {
	out := spaceRunRegex.ReplaceAllString(fragment, " ")
	out = openTagSpaceRegex.ReplaceAllString(out, "<${1}>")
	out = doubleBreakRegex.ReplaceAllString(out, "<p>")
	return removeEmptyPairs(documentShell + out)
}

// removeEmptyPairs deletes each open/close tag pair with the same name that
// encloses only whitespace. A single left-to-right pass is made, so pairs
// that only become empty after an inner removal are kept.
func removeEmptyPairs(s string) string {
	var sb strings.Builder
	pos := 0
	for pos < len(s) {
		loc := emptyPairRegex.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		open := s[pos+loc[2] : pos+loc[3]]
		closing := s[pos+loc[4] : pos+loc[5]]
		if strings.EqualFold(open, closing) {
			sb.WriteString(s[pos : pos+loc[0]])
			pos += loc[1]
			continue
		}
		// Names differ; retry from the next byte so a nested pair can match.
		sb.WriteString(s[pos : pos+loc[0]+1])
		pos += loc[0] + 1
	}
	sb.WriteString(s[pos:])
	return sb.String()
}
